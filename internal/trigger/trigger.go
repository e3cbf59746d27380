// Package trigger replays a tone sequence each time input arrives on stdin.
package trigger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tphakala/go-beep/internal/cli"
	"github.com/tphakala/go-beep/internal/engine"
)

// ErrMode is returned when Run is given a mode that does not read stdin.
var ErrMode = errors.New("trigger: stdin mode not enabled")

// Interrupt bytes that end char mode once the terminal is raw and no longer
// turns them into signals.
const (
	ctrlC = 0x03
	ctrlD = 0x04
)

// Player plays one engine to completion.
type Player interface {
	Play(ctx context.Context, e *engine.Engine) error
}

// Loop echoes input to Out and plays a fresh sequence per trigger.
type Loop struct {
	Mode      cli.StdinMode
	In        io.Reader
	Out       io.Writer
	NewEngine func() (*engine.Engine, error)
	Player    Player
	Logger    *zap.Logger

	// Raw reports that In is a terminal in raw mode.
	Raw bool
}

// Run reads until EOF. A playback error ends the loop and is returned.
func (l *Loop) Run(ctx context.Context) error {
	if l.Logger == nil {
		l.Logger = zap.NewNop()
	}
	in := bufio.NewReader(l.In)

	switch l.Mode {
	case cli.StdinLine:
		return l.lines(ctx, in)
	case cli.StdinChar:
		return l.chars(ctx, in)
	default:
		return fmt.Errorf("%w: mode %d", ErrMode, l.Mode)
	}
}

func (l *Loop) lines(ctx context.Context, in *bufio.Reader) error {
	for {
		line, err := in.ReadString('\n')
		if line != "" {
			if perr := l.fire(ctx, line); perr != nil {
				return perr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}
}

func (l *Loop) chars(ctx context.Context, in *bufio.Reader) error {
	for {
		c, err := in.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		if l.Raw && (c == ctrlC || c == ctrlD) {
			return nil
		}
		if err := l.fire(ctx, string(c)); err != nil {
			return err
		}
	}
}

// fire echoes text and then plays the whole sequence once.
func (l *Loop) fire(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Echo failures are not fatal; the beep still plays.
	_, _ = io.WriteString(l.Out, text)

	e, err := l.NewEngine()
	if err != nil {
		return err
	}
	l.Logger.Debug("trigger", zap.Int("bytes", len(text)))
	return l.Player.Play(ctx, e)
}

// MakeRaw puts f into raw mode when it is a terminal. The returned function
// restores the previous state; it is a no-op when f is not a terminal.
func MakeRaw(f *os.File) (restore func() error, raw bool, err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() error { return nil }, false, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, false, fmt.Errorf("setting raw mode: %w", err)
	}
	return func() error { return term.Restore(fd, state) }, true, nil
}
