// Package tone holds the queue of pending tone requests consumed by the
// synthesis engine.
package tone

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate for a request the engine cannot play.
var ErrInvalid = errors.New("invalid tone request")

// Request is a single configured beep. Every field except Repeats is fixed
// once the request is queued; Repeats counts down as repetitions complete.
type Request struct {
	Frequency      float64 // Hz, 0 < f < MaxFrequency
	Length         int     // tone-on time in milliseconds
	Repeats        int     // remaining repetitions
	Delay          int     // silence after each repetition in milliseconds
	DelayAfterLast bool    // charge Delay after the final repetition too
	Verbose        bool    // report completion of the final repetition

	next *Request
}

// NewRequest returns a request populated with the package defaults.
func NewRequest() *Request {
	return &Request{
		Frequency: DefaultFrequency,
		Length:    DefaultLength,
		Repeats:   DefaultRepeats,
		Delay:     DefaultDelay,
	}
}

// Validate reports whether r satisfies the ranges the engine relies on.
func Validate(r *Request) error {
	switch {
	case r == nil:
		return fmt.Errorf("%w: nil request", ErrInvalid)
	case !(r.Frequency > 0 && r.Frequency < MaxFrequency):
		return fmt.Errorf("%w: frequency %g Hz outside (0, %g)", ErrInvalid, r.Frequency, MaxFrequency)
	case r.Length < 0:
		return fmt.Errorf("%w: negative length %d", ErrInvalid, r.Length)
	case r.Repeats < 0:
		return fmt.Errorf("%w: negative repeats %d", ErrInvalid, r.Repeats)
	case r.Delay < 0:
		return fmt.Errorf("%w: negative delay %d", ErrInvalid, r.Delay)
	}
	return nil
}

// Clone returns a detached copy of r.
func (r *Request) Clone() *Request {
	c := *r
	c.next = nil
	return &c
}

// String formats the request for diagnostics.
func (r *Request) String() string {
	return fmt.Sprintf("freq %g length %d reps %d delay %d end-delay %t",
		r.Frequency, r.Length, r.Repeats, r.Delay, r.DelayAfterLast)
}
