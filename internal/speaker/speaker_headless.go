//go:build headless

package speaker

import (
	"context"
	"time"

	"github.com/tphakala/go-beep/internal/engine"
)

// Options configures the output device.
type Options struct {
	SampleRate int
	Channels   int
	Buffer     time.Duration
}

// Speaker is unavailable in headless builds.
type Speaker struct{}

// Open always fails in headless builds.
func Open(Options) (*Speaker, error) {
	return nil, ErrUnavailable
}

// Layout returns the zero layout.
func (s *Speaker) Layout() engine.Layout {
	return engine.Layout{}
}

// Play always fails in headless builds.
func (s *Speaker) Play(context.Context, *engine.Engine) error {
	return ErrUnavailable
}
