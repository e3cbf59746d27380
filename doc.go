// Package beep synthesizes sequences of sine tones.
//
// A sequence is a list of [Tone] values played back to back. Each tone sounds
// for its Length, repeats Repeats times, and waits Delay between repetitions.
// The waveform stays phase-continuous across boundaries and decays smoothly
// to silence when the sequence ends, so there are no clicks between tones.
//
// # Quick Start
//
// Render a sequence into memory:
//
//	samples, err := beep.Render([]beep.Tone{
//	    {Frequency: 440, Length: 200 * time.Millisecond, Repeats: 1},
//	    {Frequency: 660, Length: 200 * time.Millisecond, Repeats: 1},
//	}, beep.DefaultConfig())
//
// Write it to a WAV file:
//
//	_, err := beep.WriteWAV("melody.wav", tones, beep.DefaultConfig())
//
// Or play it on the default output device:
//
//	err := beep.Play(ctx, tones, beep.DefaultConfig())
//
// # Output Format
//
// Rendered audio is interleaved float32 in [-1, 1], one sample per channel
// per frame, with every channel carrying the same signal. WAV files are
// written as 16-bit PCM.
//
// # Build Tags
//
// Building with the headless tag removes the audio device backend; [Play]
// then returns an error and rendering to memory or WAV still works.
package beep
