// Package speaker plays tone sequences on the default audio device through
// oto. The device-independent part, Source, adapts an engine to the
// io.Reader that oto pulls from.
package speaker

import (
	"errors"
	"fmt"
	"io"
	"unsafe"

	"github.com/tphakala/go-beep/internal/engine"
)

// Common errors returned by the speaker backend.
var (
	ErrDevice      = errors.New("speaker: audio device failure")
	ErrUnavailable = errors.New("speaker: audio output not built into this binary")
	ErrLayout      = errors.New("speaker: engine layout does not match device")
)

const bytesPerSample = 4 // float32 little-endian

// Source exposes an engine as a stream of interleaved float32 little-endian
// frames. Read is called from the audio goroutine only.
type Source struct {
	engine     *engine.Engine
	frameBytes int
	scratch    []float32
}

// NewSource wraps e. The scratch buffer grows to the largest request seen.
func NewSource(e *engine.Engine) *Source {
	return &Source{
		engine:     e,
		frameBytes: e.Layout().Channels * bytesPerSample,
	}
}

// Read fills p with whole frames. It returns io.EOF once the engine has
// drained; the read that reaches the end is padded with silence.
func (s *Source) Read(p []byte) (int, error) {
	if s.engine.Drained() {
		return 0, io.EOF
	}
	frames := len(p) / s.frameBytes
	if frames == 0 {
		return 0, fmt.Errorf("%w: %d byte read, frame is %d bytes", io.ErrShortBuffer, len(p), s.frameBytes)
	}

	samples := frames * s.frameBytes / bytesPerSample
	if len(s.scratch) < samples {
		s.scratch = make([]float32, samples)
	}
	buf := s.scratch[:samples]

	n, err := s.engine.Render(buf, frames, frames)
	if err != nil {
		return 0, err
	}

	nbytes := n * s.frameBytes
	copy(p, unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), nbytes))
	return nbytes, nil
}
