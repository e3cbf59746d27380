// Package testutil provides reusable assertions for rendered sample streams.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertDecaying verifies |s[i]| <= factor*|s[i-1]| for every i > 0.
func AssertDecaying(t *testing.T, s []float64, factor, tolerance float64) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if math.Abs(s[i]) > factor*math.Abs(s[i-1])+tolerance {
			return assert.Fail(t, "not decaying",
				"|s[%d]|=%g > %g*|s[%d]|=%g", i, math.Abs(s[i]), factor, i-1, factor*math.Abs(s[i-1]))
		}
	}
	return true
}

// AssertFramesUniform verifies that every frame of an interleaved buffer
// carries the same value in all channels.
func AssertFramesUniform(t *testing.T, interleaved []float32, channels int) bool {
	t.Helper()
	for f := 0; f+channels <= len(interleaved); f += channels {
		for ch := 1; ch < channels; ch++ {
			if interleaved[f+ch] != interleaved[f] {
				return assert.Fail(t, "channels differ",
					"frame %d: ch0=%f ch%d=%f", f/channels, interleaved[f], ch, interleaved[f+ch])
			}
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// Channel extracts one channel from an interleaved buffer as float64.
func Channel(interleaved []float32, channels, ch int) []float64 {
	out := make([]float64, 0, len(interleaved)/channels)
	for i := ch; i < len(interleaved); i += channels {
		out = append(out, float64(interleaved[i]))
	}
	return out
}
