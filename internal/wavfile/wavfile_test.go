package wavfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-beep/internal/engine"
	"github.com/tphakala/go-beep/internal/spectrum"
	"github.com/tphakala/go-beep/internal/tone"
)

func newEngine(t *testing.T, sampleRate, channels int, reqs ...*tone.Request) *engine.Engine {
	t.Helper()
	e, err := engine.New(tone.NewQueue(reqs...), engine.Layout{SampleRate: sampleRate, Channels: channels})
	require.NoError(t, err)
	return e
}

func request(freq float64, length, repeats, delay int) *tone.Request {
	return &tone.Request{Frequency: freq, Length: length, Repeats: repeats, Delay: delay}
}

func TestCreate_RoundTrip(t *testing.T) {
	for _, bitDepth := range []int{16, 24} {
		path := filepath.Join(t.TempDir(), "tone.wav")
		e := newEngine(t, 44100, 2, request(1000, 300, 1, 0))

		stats, err := Create(path, e, Options{BitDepth: bitDepth})
		require.NoError(t, err)
		assert.Equal(t, int64(e.Frames()), stats.Frames)
		assert.Equal(t, 2, stats.Channels)
		assert.Equal(t, bitDepth, stats.BitDepth)

		clip, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, 44100, clip.SampleRate)
		assert.Equal(t, 2, clip.Channels)
		assert.Equal(t, bitDepth, clip.BitDepth)
		assert.Len(t, clip.Samples, int(stats.Frames))
		assert.Equal(t, stats.Duration(), clip.Duration())

		active := spectrum.ActiveDuration(clip.Samples, 44100, 0.01)
		assert.InDelta(t, 0.3, active, 0.005)

		freq, err := spectrum.DominantFrequency(clip.Samples[:8192], 44100)
		require.NoError(t, err)
		assert.InDelta(t, 1000.0, freq, 2.0)

		assert.LessOrEqual(t, spectrum.Peak(clip.Samples), 1.0)
	}
}

func TestCreate_SequenceLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.wav")
	// 2*(100+50) - 50 trailing + 100 = 350 ms of scheduled time
	e := newEngine(t, 16000, 1, request(440, 100, 2, 50), request(660, 100, 1, 0))

	stats, err := Create(path, e, Options{ChunkFrames: 333})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, stats.Duration(), 350*time.Millisecond)
	assert.Less(t, stats.Duration(), 400*time.Millisecond, "decay tail is short")
}

func TestCreate_EmptySequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	e := newEngine(t, 16000, 2)

	stats, err := Create(path, e, Options{})
	require.NoError(t, err)
	assert.Zero(t, stats.Frames)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, wav.NewDecoder(f).IsValidFile())
}

func TestCreate_BadPath(t *testing.T) {
	e := newEngine(t, 16000, 1, request(440, 10, 1, 0))
	_, err := Create("/nonexistent/dir/out.wav", e, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestWrite_UnsupportedBitDepth(t *testing.T) {
	e := newEngine(t, 16000, 1, request(440, 10, 1, 0))
	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = Write(f, e, Options{BitDepth: 12})
	assert.ErrorIs(t, err, ErrBitDepth)
}

// failingWriter accepts seeks but rejects every write, like a full disk.
type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error)        { return 0, errDiskFull }
func (failingWriter) Seek(int64, int) (int64, error) { return 0, nil }

var _ io.WriteSeeker = failingWriter{}

func TestWrite_PropagatesWriteFailure(t *testing.T) {
	e := newEngine(t, 16000, 1, request(440, 100, 1, 0))

	_, err := Write(failingWriter{}, e, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.Contains(t, err.Error(), errDiskFull.Error())
}

func TestRead_Errors(t *testing.T) {
	_, err := Read("/nonexistent/file.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")

	invalid := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(invalid, []byte("not a wav file"), 0o644))
	_, err = Read(invalid)
	assert.ErrorIs(t, err, ErrInvalidWAV)
}
