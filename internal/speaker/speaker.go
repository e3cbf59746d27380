//go:build !headless

package speaker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/tphakala/go-beep/internal/engine"
)

// Options configures the output device.
type Options struct {
	SampleRate int
	Channels   int
	Buffer     time.Duration
}

var _ outputPlayer = (*oto.Player)(nil)

// oto allows a single context per process.
var (
	contextOnce sync.Once
	sharedCtx   *oto.Context
	sharedOpts  Options
	contextErr  error
)

// Speaker plays engines on the default output device.
type Speaker struct {
	ctx  *oto.Context
	opts Options
}

// Open initializes the audio device. Later calls return a Speaker on the same
// device and fail if they ask for a different stream layout.
func Open(opts Options) (*Speaker, error) {
	contextOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   opts.SampleRate,
			ChannelCount: opts.Channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   opts.Buffer,
		})
		if err != nil {
			contextErr = fmt.Errorf("%w: %w", ErrDevice, err)
			return
		}
		<-ready
		sharedCtx = ctx
		sharedOpts = opts
	})
	if contextErr != nil {
		return nil, contextErr
	}
	if opts.SampleRate != sharedOpts.SampleRate || opts.Channels != sharedOpts.Channels {
		return nil, fmt.Errorf("%w: device opened at %d Hz x %d", ErrLayout, sharedOpts.SampleRate, sharedOpts.Channels)
	}
	return &Speaker{ctx: sharedCtx, opts: sharedOpts}, nil
}

// Layout returns the stream layout the device was opened with.
func (s *Speaker) Layout() engine.Layout {
	return engine.Layout{SampleRate: s.opts.SampleRate, Channels: s.opts.Channels}
}

// Play renders e until it drains or ctx is cancelled, and returns once the
// device has had one buffer duration to play the end of the decay tail. The
// engine is driven by oto's reader goroutine; this goroutine only watches
// the player.
func (s *Speaker) Play(ctx context.Context, e *engine.Engine) error {
	if e.Layout() != s.Layout() {
		return fmt.Errorf("%w: engine %+v, device %+v", ErrLayout, e.Layout(), s.Layout())
	}
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}

	player := s.ctx.NewPlayer(NewSource(e))
	defer player.Close()

	return drive(ctx, player, pollInterval, s.opts.Buffer)
}
