package speaker

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-beep/internal/engine"
	"github.com/tphakala/go-beep/internal/tone"
)

func newEngine(t *testing.T, channels int) *engine.Engine {
	t.Helper()
	q := tone.NewQueue(
		&tone.Request{Frequency: 440, Length: 20, Repeats: 2, Delay: 5},
		&tone.Request{Frequency: 880, Length: 10, Repeats: 1},
	)
	e, err := engine.New(q, engine.Layout{SampleRate: 8000, Channels: channels})
	require.NoError(t, err)
	return e
}

func decodeFloats(p []byte) []float32 {
	out := make([]float32, len(p)/bytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerSample:]))
	}
	return out
}

func TestSource_MatchesRender(t *testing.T) {
	for _, channels := range []int{1, 2, 6} {
		src := NewSource(newEngine(t, channels))
		ref := newEngine(t, channels)

		var got []float32
		p := make([]byte, 333*channels*bytesPerSample)
		for range 1000 {
			n, err := src.Read(p)
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)
			require.Zero(t, n%(channels*bytesPerSample), "partial frame")
			got = append(got, decodeFloats(p[:n])...)
		}

		want := make([]float32, len(got))
		n, err := ref.Render(want, 0, len(got)/channels)
		require.NoError(t, err)

		// The last read pads with silence past the drain point.
		assert.Equal(t, want[:n*channels], got[:n*channels], "channels=%d", channels)
		for _, s := range got[n*channels:] {
			assert.Zero(t, s)
		}
	}
}

func TestSource_EOFAfterDrain(t *testing.T) {
	e := newEngine(t, 2)
	src := NewSource(e)

	p := make([]byte, 4096)
	for !e.Drained() {
		_, err := src.Read(p)
		require.NoError(t, err)
	}

	n, err := src.Read(p)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_RoundsDownToWholeFrames(t *testing.T) {
	src := NewSource(newEngine(t, 2))

	p := make([]byte, 8*3+5)
	n, err := src.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 8*3, n)
}

func TestSource_ShortRead(t *testing.T) {
	src := NewSource(newEngine(t, 2))

	_, err := src.Read(make([]byte, 7))
	assert.ErrorIs(t, err, io.ErrShortBuffer)
}
