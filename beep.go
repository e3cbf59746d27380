package beep

import (
	"context"
	"fmt"
	"time"

	"github.com/tphakala/go-beep/internal/engine"
	"github.com/tphakala/go-beep/internal/speaker"
	"github.com/tphakala/go-beep/internal/tone"
	"github.com/tphakala/go-beep/internal/wavfile"
)

// ErrInvalidTone is returned for a tone outside the playable range.
var ErrInvalidTone = tone.ErrInvalid

// Tone is one entry of a sequence. Length and Delay are truncated to whole
// milliseconds.
type Tone struct {
	Frequency float64
	Length    time.Duration
	Repeats   int
	Delay     time.Duration

	// DelayAfterLast also waits Delay after the final repetition.
	DelayAfterLast bool
}

// NewTone returns a tone at freq with the default length, repeats and delay.
func NewTone(freq float64) Tone {
	return Tone{
		Frequency: freq,
		Length:    DefaultLength,
		Repeats:   DefaultRepeats,
		Delay:     DefaultDelay,
	}
}

func (t Tone) request() (*tone.Request, error) {
	r := &tone.Request{
		Frequency:      t.Frequency,
		Length:         int(t.Length.Milliseconds()),
		Repeats:        t.Repeats,
		Delay:          int(t.Delay.Milliseconds()),
		DelayAfterLast: t.DelayAfterLast,
	}
	if err := tone.Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Config is the output stream layout.
type Config struct {
	SampleRate int
	Channels   int
}

// DefaultConfig returns 48 kHz stereo.
func DefaultConfig() Config {
	return Config{SampleRate: RateDAT, Channels: 2}
}

func newEngine(tones []Tone, cfg Config) (*engine.Engine, error) {
	q := tone.NewQueue()
	for i, t := range tones {
		r, err := t.request()
		if err != nil {
			return nil, fmt.Errorf("tone %d: %w", i, err)
		}
		q.Append(r)
	}
	return engine.New(q, engine.Layout{SampleRate: cfg.SampleRate, Channels: cfg.Channels})
}

// Render synthesizes the whole sequence, including the decay tail, and
// returns interleaved samples.
func Render(tones []Tone, cfg Config) ([]float32, error) {
	e, err := newEngine(tones, cfg)
	if err != nil {
		return nil, err
	}

	chunk := make([]float32, renderChunkFrames*cfg.Channels)
	var out []float32
	for !e.Drained() {
		n, err := e.Render(chunk, 0, renderChunkFrames)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk[:n*cfg.Channels]...)
	}
	return out, nil
}

// WriteWAV renders the sequence to a 16-bit PCM WAV file at path and returns
// its duration.
func WriteWAV(path string, tones []Tone, cfg Config) (time.Duration, error) {
	e, err := newEngine(tones, cfg)
	if err != nil {
		return 0, err
	}
	stats, err := wavfile.Create(path, e, wavfile.Options{})
	if err != nil {
		return 0, err
	}
	return stats.Duration(), nil
}

// Play sounds the sequence on the default output device and returns when it
// has finished or ctx is cancelled.
func Play(ctx context.Context, tones []Tone, cfg Config) error {
	e, err := newEngine(tones, cfg)
	if err != nil {
		return err
	}
	spk, err := speaker.Open(speaker.Options{
		SampleRate: cfg.SampleRate,
		Channels:   cfg.Channels,
		Buffer:     playBuffer,
	})
	if err != nil {
		return err
	}
	return spk.Play(ctx, e)
}

// Duration is the scheduled length of the sequence, excluding the decay tail.
func Duration(tones []Tone) time.Duration {
	var total time.Duration
	for _, t := range tones {
		if t.Repeats <= 0 {
			continue
		}
		l := time.Duration(t.Length.Milliseconds()) * time.Millisecond
		d := time.Duration(t.Delay.Milliseconds()) * time.Millisecond
		total += time.Duration(t.Repeats) * l
		gaps := t.Repeats - 1
		if t.DelayAfterLast {
			gaps++
		}
		total += time.Duration(gaps) * d
	}
	return total
}
