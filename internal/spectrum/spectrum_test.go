package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	const sampleRate = 48000.0

	for _, freq := range []float64{100, 440, 1000, 3520, 12345} {
		got, err := DominantFrequency(sine(freq, sampleRate, 8192), sampleRate)
		require.NoError(t, err)
		assert.InDelta(t, freq, got, 2.0, "freq=%g", freq)
	}
}

func TestDominantFrequency_TooShort(t *testing.T) {
	_, err := DominantFrequency(make([]float64, 4), 48000)
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestMaxStep(t *testing.T) {
	step, idx := MaxStep([]float64{0, 0.1, 0.5, 0.4})
	assert.InDelta(t, 0.4, step, 1e-12)
	assert.Equal(t, 2, idx)

	step, idx = MaxStep(nil)
	assert.Zero(t, step)
	assert.Zero(t, idx)
}

func TestMaxSineStep_BoundsRealSine(t *testing.T) {
	const sampleRate = 44100.0
	s := sine(440, sampleRate, 4096)
	step, _ := MaxStep(s)
	assert.LessOrEqual(t, step, MaxSineStep(440, sampleRate)+1e-12)
}

func TestActiveDuration(t *testing.T) {
	s := make([]float64, 1000)
	for i := 100; i < 300; i++ {
		s[i] = 0.5
	}
	assert.InDelta(t, 0.2, ActiveDuration(s, 1000, 0.01), 1e-12)
	assert.Zero(t, ActiveDuration(make([]float64, 10), 1000, 0.01))
}

func TestPeak(t *testing.T) {
	assert.InDelta(t, 0.9, Peak([]float64{0.2, -0.9, 0.5}), 0)
	assert.Zero(t, Peak(nil))
}
