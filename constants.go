package beep

import (
	"time"

	"github.com/tphakala/go-beep/internal/tone"
)

// Common sample rates.
const (
	// RateCD is the CD quality sample rate.
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000
)

// Tone defaults, matching the beep command.
const (
	DefaultFrequency = tone.DefaultFrequency
	DefaultLength    = time.Duration(tone.DefaultLength) * time.Millisecond
	DefaultRepeats   = tone.DefaultRepeats
	DefaultDelay     = time.Duration(tone.DefaultDelay) * time.Millisecond
)

// playBuffer is the device buffer duration used by Play.
const playBuffer = 50 * time.Millisecond

// renderChunkFrames is the number of frames rendered per engine call.
const renderChunkFrames = 4096
