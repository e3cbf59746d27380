package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-beep/internal/tone"
)

const (
	testSampleRate = 48000
	testMsPerFrame = 1000.0 / testSampleRate

	// Upper bound on frames any single test may generate.
	maxTestFrames = 10 * testSampleRate
)

func newRequest(freq float64, length, repeats, delay int, afterLast bool) *tone.Request {
	return &tone.Request{
		Frequency:      freq,
		Length:         length,
		Repeats:        repeats,
		Delay:          delay,
		DelayAfterLast: afterLast,
	}
}

func newTestEngine(t *testing.T, channels int, reqs ...*tone.Request) *Engine {
	t.Helper()
	e, err := New(tone.NewQueue(reqs...), Layout{SampleRate: testSampleRate, Channels: channels})
	require.NoError(t, err)
	return e
}

// frame is one observed step of the state machine.
type frame struct {
	sample  float64
	elapsed float64
	active  *tone.Request
}

// runWhileQueued steps e until its queue empties and returns every frame.
func runWhileQueued(t *testing.T, e *Engine) []frame {
	t.Helper()
	var frames []frame
	for e.Active() != nil {
		require.Less(t, len(frames), maxTestFrames, "queue never drained")
		s := e.Next()
		frames = append(frames, frame{sample: s, elapsed: e.State().ElapsedMs, active: e.Active()})
	}
	return frames
}

func samplesOf(frames []frame) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = f.sample
	}
	return out
}
