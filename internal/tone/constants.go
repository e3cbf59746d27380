package tone

// Request defaults, applied to every group that does not override them.
const (
	DefaultFrequency = 440.0 // Middle A
	DefaultLength    = 200   // milliseconds
	DefaultRepeats   = 1
	DefaultDelay     = 100 // milliseconds
)

// MaxFrequency is the exclusive upper bound for a tone frequency in Hz.
const MaxFrequency = 20000.0
