package main

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tphakala/go-beep/internal/cli"
	"github.com/tphakala/go-beep/internal/config"
	"github.com/tphakala/go-beep/internal/engine"
	"github.com/tphakala/go-beep/internal/logging"
	"github.com/tphakala/go-beep/internal/speaker"
	"github.com/tphakala/go-beep/internal/trigger"
	"github.com/tphakala/go-beep/internal/wavfile"
)

// session holds what one invocation needs to build and play engines.
type session struct {
	opts     *cli.Options
	cfg      *config.Config
	logger   *zap.Logger
	reporter *logging.Reporter
	stdin    *os.File
	stdout   io.Writer
}

func (s *session) layout() engine.Layout {
	return engine.Layout{SampleRate: s.cfg.SampleRate, Channels: s.cfg.Channels}
}

// newEngine builds an engine over a fresh copy of the parsed sequence.
func (s *session) newEngine() (*engine.Engine, error) {
	return engine.New(s.opts.Queue(), s.layout(), engine.WithCompletions(s.reporter.C))
}

func (s *session) openSpeaker() (*speaker.Speaker, error) {
	return speaker.Open(speaker.Options{
		SampleRate: s.cfg.SampleRate,
		Channels:   s.cfg.Channels,
		Buffer:     time.Duration(s.cfg.BufferMs) * time.Millisecond,
	})
}

// logSequence writes the parsed sequence at debug level.
func (s *session) logSequence() {
	s.logger.Debug("sequence",
		zap.Int("tones", len(s.opts.Groups)),
		zap.Int("sample_rate", s.cfg.SampleRate),
		zap.Int("channels", s.cfg.Channels),
	)
	for i := range s.opts.Groups {
		s.logger.Debug("tone", zap.Int("index", i), zap.Stringer("request", &s.opts.Groups[i]))
	}
}

func (s *session) renderWAV() error {
	s.logSequence()
	e, err := s.newEngine()
	if err != nil {
		return err
	}
	stats, err := wavfile.Create(s.cfg.Output, e, wavfile.Options{})
	if err != nil {
		return err
	}
	s.logger.Debug("wrote wav",
		zap.String("path", s.cfg.Output),
		zap.Int("sample_rate", stats.SampleRate),
		zap.Int("channels", stats.Channels),
		zap.Duration("duration", stats.Duration()),
	)
	return nil
}

func (s *session) playOnce(ctx context.Context) error {
	spk, err := s.openSpeaker()
	if err != nil {
		return err
	}
	e, err := s.newEngine()
	if err != nil {
		return err
	}
	s.logSequence()
	return s.play(ctx, spk, e)
}

func (s *session) play(ctx context.Context, p trigger.Player, e *engine.Engine) error {
	err := p.Play(ctx, e)
	if n := e.DroppedCompletions(); n > 0 {
		s.logger.Warn("completion events dropped", zap.Uint64("count", n))
	}
	return err
}

func (s *session) triggered(ctx context.Context) error {
	spk, err := s.openSpeaker()
	if err != nil {
		return err
	}
	s.logSequence()
	return s.runTrigger(ctx, spk)
}

func (s *session) runTrigger(ctx context.Context, p trigger.Player) error {
	raw := false
	if s.opts.Stdin == cli.StdinChar {
		restore, isRaw, err := trigger.MakeRaw(s.stdin)
		if err != nil {
			return err
		}
		defer func() {
			if err := restore(); err != nil {
				s.logger.Warn("restoring terminal", zap.Error(err))
			}
		}()
		raw = isRaw
	}

	loop := &trigger.Loop{
		Mode:      s.opts.Stdin,
		In:        s.stdin,
		Out:       s.stdout,
		NewEngine: s.newEngine,
		Player:    playerFunc(func(ctx context.Context, e *engine.Engine) error { return s.play(ctx, p, e) }),
		Logger:    s.logger,
		Raw:       raw,
	}
	return loop.Run(ctx)
}

// playerFunc adapts a function to trigger.Player.
type playerFunc func(ctx context.Context, e *engine.Engine) error

func (f playerFunc) Play(ctx context.Context, e *engine.Engine) error {
	return f(ctx, e)
}
