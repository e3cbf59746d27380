// Package wavfile renders a tone sequence into a PCM WAV file and reads WAV
// files back for analysis.
package wavfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-beep/internal/engine"
	"github.com/tphakala/go-beep/internal/simdops"
)

// Common errors.
var (
	ErrWrite      = errors.New("wavfile: write failed")
	ErrInvalidWAV = errors.New("wavfile: invalid WAV file")
	ErrBitDepth   = errors.New("wavfile: unsupported bit depth")
)

// WAV format constants
const (
	pcmFormat = 1 // WAVE_FORMAT_PCM

	bitsPerSample16 = 16
	bitsPerSample24 = 24

	maxInt16 = 32767.0
	maxInt24 = 8388607.0

	defaultChunkFrames = 4096
)

// Options configures Write.
type Options struct {
	BitDepth    int // 16 or 24; 0 means 16
	ChunkFrames int // frames rendered per encoder write; 0 means 4096
}

// Stats summarizes a rendered file.
type Stats struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int64
}

// Duration returns the rendered audio length.
func (s Stats) Duration() time.Duration {
	if s.SampleRate == 0 {
		return 0
	}
	return time.Duration(s.Frames) * time.Second / time.Duration(s.SampleRate)
}

func maxValue(bitDepth int) (float32, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
}

// Write renders e until it drains and encodes the result to w. Any encoder
// or I/O failure is returned wrapped in ErrWrite; rendering is not resumed.
func Write(w io.WriteSeeker, e *engine.Engine, opts Options) (Stats, error) {
	if opts.BitDepth == 0 {
		opts.BitDepth = bitsPerSample16
	}
	if opts.ChunkFrames <= 0 {
		opts.ChunkFrames = defaultChunkFrames
	}
	maxVal, err := maxValue(opts.BitDepth)
	if err != nil {
		return Stats{}, err
	}

	layout := e.Layout()
	stats := Stats{SampleRate: layout.SampleRate, Channels: layout.Channels, BitDepth: opts.BitDepth}

	enc := wav.NewEncoder(w, layout.SampleRate, opts.BitDepth, layout.Channels, pcmFormat)

	samples := make([]float32, opts.ChunkFrames*layout.Channels)
	scaled := make([]float32, len(samples))
	ints := make([]int, len(samples))
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: layout.Channels, SampleRate: layout.SampleRate},
		SourceBitDepth: opts.BitDepth,
	}

	for {
		n, err := e.Render(samples, 0, opts.ChunkFrames)
		if err != nil {
			return stats, err
		}
		if n == 0 {
			break
		}

		count := n * layout.Channels
		simdops.Scale(scaled[:count], samples[:count], maxVal)
		for i, s := range scaled[:count] {
			ints[i] = int(max(-maxVal, min(maxVal, s)))
		}

		buf.Data = ints[:count]
		if err := enc.Write(buf); err != nil {
			return stats, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		stats.Frames += int64(n)
	}

	// An empty sequence still gets a header and an empty data chunk.
	if stats.Frames == 0 {
		buf.Data = ints[:0]
		if err := enc.Write(buf); err != nil {
			return stats, fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	if err := enc.Close(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return stats, nil
}

// Create renders e into a new WAV file at path.
func Create(path string, e *engine.Engine, opts Options) (stats Stats, err error) {
	f, err := os.Create(path)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: failed to create output file: %w", ErrWrite, err)
	}
	// Close errors matter here: a failed close can lose the header update.
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("%w: %w", ErrWrite, closeErr)
		}
	}()

	return Write(f, e, opts)
}

// Clip is the first channel of a decoded WAV file, normalized to [-1, 1].
type Clip struct {
	Samples    []float64
	SampleRate int
	Channels   int
	BitDepth   int
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// Read decodes the WAV file at path.
func Read(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	maxVal, err := maxValue(bitDepth)
	if err != nil {
		return nil, err
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidWAV, channels)
	}
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	inv := 1.0 / float64(maxVal)
	for i := range frames {
		samples[i] = float64(buf.Data[i*channels]) * inv
	}

	return &Clip{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
	}, nil
}
