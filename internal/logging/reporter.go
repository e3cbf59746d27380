package logging

import (
	"go.uber.org/zap"

	"github.com/tphakala/go-beep/internal/engine"
)

// completionBuffer bounds how many completions may be pending before the
// engine starts dropping them.
const completionBuffer = 64

// Reporter logs tone completions outside the audio callback. The engine
// sends on C without blocking; Reporter drains it on its own goroutine.
type Reporter struct {
	C chan engine.Completion

	logger *zap.Logger
	done   chan struct{}
}

// NewReporter starts a reporter that logs to logger.
func NewReporter(logger *zap.Logger) *Reporter {
	r := &Reporter{
		C:      make(chan engine.Completion, completionBuffer),
		logger: logger,
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Reporter) run() {
	defer close(r.done)
	for c := range r.C {
		r.logger.Info("tone complete",
			zap.Float64("freq", c.Frequency),
			zap.Int("length", c.Length),
			zap.Int("delay", c.Delay),
		)
	}
}

// Close stops accepting completions and waits for pending ones to be logged.
// The engine using C must no longer be rendering.
func (r *Reporter) Close() {
	close(r.C)
	<-r.done
}
