package engine

import "math"

// Oscillator constants
const (
	msPerSecond = 1000.0
	twoPi       = 2 * math.Pi

	// Below this magnitude the last sample is treated as a zero crossing and
	// becomes the new phase offset (sin(x) ~ x).
	snapThreshold = 0.1

	// Per-frame multiplier applied to the previous sample outside the
	// tone-on window.
	decayFactor = 0.95

	// Decay below this magnitude counts as silence.
	silenceThreshold = 1e-4
)

// Layout limits
const (
	maxChannels = 256 // Maximum supported channel count

	// Frames generated per fan-out pass. Render splits larger requests.
	defaultScratchFrames = 1024
)
