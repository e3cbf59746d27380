// Package engine implements the tone synthesis engine: a per-frame state
// machine that walks a tone queue and produces a phase-continuous sine
// waveform for a pull-based audio callback.
package engine

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/tphakala/go-beep/internal/simdops"
	"github.com/tphakala/go-beep/internal/tone"
)

// Common errors returned by the engine.
var (
	ErrBadLayout   = errors.New("engine: invalid stream layout")
	ErrNilQueue    = errors.New("engine: nil tone queue")
	ErrShortBuffer = errors.New("engine: destination buffer too small")
	ErrFrameRange  = errors.New("engine: invalid frame range")
)

// Layout describes the negotiated output stream.
type Layout struct {
	SampleRate int
	Channels   int
}

// Validate checks the layout against the engine limits.
func (l Layout) Validate() error {
	if l.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrBadLayout, l.SampleRate)
	}
	if l.Channels < 1 || l.Channels > maxChannels {
		return fmt.Errorf("%w: %d channels (want 1-%d)", ErrBadLayout, l.Channels, maxChannels)
	}
	return nil
}

// Oscillator is the running state carried from frame to frame. It is never
// reset between tones so that the waveform stays continuous.
type Oscillator struct {
	ElapsedMs  float64 // time into the current tone+delay cycle
	PhaseRad   float64 // carrier phase offset, in [0, 2π)
	LastSample float64 // most recently emitted amplitude
}

// Completion describes a verbose request that finished its last repetition.
type Completion struct {
	Frequency float64
	Length    int
	Delay     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithCompletions delivers completion events on ch. Sends never block: when
// ch is full the event is dropped and counted.
func WithCompletions(ch chan<- Completion) Option {
	return func(e *Engine) {
		e.completions = ch
	}
}

// WithScratchFrames sets how many frames are generated per fan-out pass.
func WithScratchFrames(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.mono = make([]float32, n)
		}
	}
}

// Engine fills audio buffers from a tone queue. An Engine is not safe for
// concurrent use; exactly one goroutine (the audio callback) drives it.
type Engine struct {
	queue      *tone.Queue
	layout     Layout
	msPerFrame float64
	osc        Oscillator
	frames     uint64

	mono []float32
	ops  *simdops.Ops

	completions chan<- Completion
	dropped     atomic.Uint64
}

// New returns an engine that consumes q at the given layout. The engine takes
// ownership of q; the caller must not touch it afterwards.
func New(q *tone.Queue, layout Layout, opts ...Option) (*Engine, error) {
	if q == nil {
		return nil, ErrNilQueue
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		queue:      q,
		layout:     layout,
		msPerFrame: msPerSecond / float64(layout.SampleRate),
		ops:        simdops.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.mono == nil {
		e.mono = make([]float32, defaultScratchFrames)
	}
	return e, nil
}

// Next advances the state machine by one frame and returns its sample.
func (e *Engine) Next() float64 {
	t := e.head()
	if t != nil {
		e.osc.ElapsedMs += e.msPerFrame

		cycle := cycleLength(t)
		if e.osc.ElapsedMs > cycle {
			e.crossBoundary(t, cycle)
			t = e.head()
		}
	}

	var sample float64
	if t != nil && e.osc.ElapsedMs < float64(t.Length) {
		sample = math.Sin(e.osc.PhaseRad + e.osc.ElapsedMs*radiansPerMs(t.Frequency))
	} else {
		sample = e.osc.LastSample * decayFactor
	}

	e.osc.LastSample = sample
	e.frames++
	return sample
}

// head returns the active request, retiring any whose repeat count is
// already zero. Those never play and never report completion.
func (e *Engine) head() *tone.Request {
	t := e.queue.Peek()
	for t != nil && t.Repeats <= 0 {
		e.queue.Pop()
		t = e.queue.Peek()
	}
	return t
}

// crossBoundary closes one repetition of t.
func (e *Engine) crossBoundary(t *tone.Request, cycle float64) {
	if math.Abs(e.osc.LastSample) < snapThreshold {
		e.osc.PhaseRad = wrapPhase(e.osc.LastSample)
	} else {
		e.osc.PhaseRad = wrapPhase(e.osc.PhaseRad + cycle*radiansPerMs(t.Frequency))
	}

	// Carry the remainder so frame rounding does not accumulate.
	e.osc.ElapsedMs -= cycle

	t.Repeats--
	if t.Repeats > 0 {
		return
	}
	if t.Verbose {
		e.notify(Completion{Frequency: t.Frequency, Length: t.Length, Delay: t.Delay})
	}
	e.queue.Pop()
}

func (e *Engine) notify(c Completion) {
	if e.completions == nil {
		return
	}
	select {
	case e.completions <- c:
	default:
		e.dropped.Add(1)
	}
}

// cycleLength is the time one repetition of t occupies. The delay follows
// every repetition except the last, unless DelayAfterLast is set.
func cycleLength(t *tone.Request) float64 {
	cycle := float64(t.Length)
	if t.DelayAfterLast || t.Repeats > 1 {
		cycle += float64(t.Delay)
	}
	return cycle
}

func radiansPerMs(freq float64) float64 {
	return freq * twoPi / msPerSecond
}

// wrapPhase maps p into [0, 2π).
func wrapPhase(p float64) float64 {
	p = math.Mod(p, twoPi)
	if p < 0 {
		p += twoPi
	}
	if p >= twoPi {
		p = 0
	}
	return p
}

// Drained reports whether the queue is empty and the decay tail has reached
// silence. A drained engine needs no further buffers.
func (e *Engine) Drained() bool {
	return e.queue.Empty() && math.Abs(e.osc.LastSample) < silenceThreshold
}

// Active returns the request currently being played, or nil.
func (e *Engine) Active() *tone.Request {
	return e.queue.Peek()
}

// State returns a copy of the oscillator state.
func (e *Engine) State() Oscillator {
	return e.osc
}

// Layout returns the stream layout the engine renders for.
func (e *Engine) Layout() Layout {
	return e.layout
}

// Frames returns the number of frames generated so far.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// DroppedCompletions returns how many completion events found the channel full.
func (e *Engine) DroppedCompletions() uint64 {
	return e.dropped.Load()
}
