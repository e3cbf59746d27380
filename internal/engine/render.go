package engine

import "fmt"

// Render writes between minFrames and maxFrames interleaved frames into dst
// and returns the number written. Generation stops early once the engine is
// drained; the remainder up to minFrames is filled with silence. dst must
// hold maxFrames*Channels samples.
//
// Render does not allocate on the success path.
func (e *Engine) Render(dst []float32, minFrames, maxFrames int) (int, error) {
	if minFrames < 0 || maxFrames < minFrames {
		return 0, fmt.Errorf("%w: min %d max %d", ErrFrameRange, minFrames, maxFrames)
	}
	channels := e.layout.Channels
	if len(dst) < maxFrames*channels {
		return 0, fmt.Errorf("%w: have %d samples, need %d", ErrShortBuffer, len(dst), maxFrames*channels)
	}

	written := 0
	for written < maxFrames && !e.Drained() {
		chunk := e.mono[:min(maxFrames-written, len(e.mono))]

		n := 0
		for n < len(chunk) && !e.Drained() {
			chunk[n] = float32(e.Next())
			n++
		}

		e.ops.FanOut(dst[written*channels:], chunk[:n], channels)
		written += n
	}

	if written < minFrames {
		clear(dst[written*channels : minFrames*channels])
		written = minFrames
	}
	return written, nil
}
