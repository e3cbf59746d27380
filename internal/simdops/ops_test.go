package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOut(t *testing.T) {
	mono := []float32{0.1, -0.2, 0.3, -0.4, 0.5}

	for _, channels := range []int{1, 2, 3, 6, 8} {
		dst := make([]float32, len(mono)*channels)
		FanOut(dst, mono, channels)

		for i, s := range mono {
			for ch := range channels {
				require.InDelta(t, s, dst[i*channels+ch], 0,
					"channels=%d frame=%d ch=%d", channels, i, ch)
			}
		}
	}
}

func TestFanOut_LeavesTailUntouched(t *testing.T) {
	mono := []float32{1, 1}
	dst := []float32{0, 0, 0, 0, 9, 9}
	FanOut(dst, mono, 2)
	assert.Equal(t, []float32{1, 1, 1, 1, 9, 9}, dst)
}

func TestScale(t *testing.T) {
	a := []float32{1, -0.5, 0.25}
	dst := make([]float32, len(a))
	Scale(dst, a, 4)
	assert.Equal(t, []float32{4, -2, 1}, dst)
}

func BenchmarkFanOutStereo(b *testing.B) {
	mono := make([]float32, 1024)
	for i := range mono {
		mono[i] = float32(i) * 0.001
	}
	dst := make([]float32, len(mono)*2)

	b.ReportAllocs()
	for b.Loop() {
		FanOut(dst, mono, 2)
	}
}

func BenchmarkFanOutSurround(b *testing.B) {
	mono := make([]float32, 1024)
	dst := make([]float32, len(mono)*6)

	b.ReportAllocs()
	for b.Loop() {
		FanOut(dst, mono, 6)
	}
}
