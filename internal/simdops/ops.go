// Package simdops provides the float32 vector operations used to move
// generated mono frames into interleaved device buffers.
package simdops

import (
	"github.com/tphakala/simd/f32"
)

const stereoChannels = 2

// Ops bundles the accelerated kernels. Function fields keep call sites
// independent of the backing implementation, which tests swap out.
type Ops struct {
	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []float32)

	// Scale multiplies each element by s: dst[i] = a[i] * s
	Scale func(dst, a []float32, s float32)
}

var ops = Ops{
	Interleave2: f32.Interleave2,
	Scale:       f32.Scale,
}

// Default returns the accelerated operations.
func Default() *Ops {
	return &ops
}

// FanOut writes every mono sample into all channels of the interleaved dst.
// dst must hold len(mono)*channels samples.
func (o *Ops) FanOut(dst, mono []float32, channels int) {
	n := len(mono)
	switch channels {
	case 1:
		copy(dst[:n], mono)
	case stereoChannels:
		o.Interleave2(dst[:n*stereoChannels], mono, mono)
	default:
		for i, s := range mono {
			frame := dst[i*channels : (i+1)*channels]
			for ch := range frame {
				frame[ch] = s
			}
		}
	}
}

// FanOut is the package-level form of Default().FanOut.
func FanOut(dst, mono []float32, channels int) {
	ops.FanOut(dst, mono, channels)
}

// Scale multiplies a by s into dst.
func Scale(dst, a []float32, s float32) {
	ops.Scale(dst, a, s)
}
