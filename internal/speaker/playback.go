package speaker

import (
	"context"
	"fmt"
	"time"
)

// pollInterval is how often playback checks the player state.
const pollInterval = 10 * time.Millisecond

// outputPlayer is the part of an oto player that playback drives.
type outputPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	Err() error
}

// drive starts p and waits until it stops, then waits tail more so the
// device can play out what it still holds. A player error is returned
// wrapped in ErrDevice; cancelling ctx pauses p and returns ctx.Err().
func drive(ctx context.Context, p outputPlayer, poll, tail time.Duration) error {
	p.Play()

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			p.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
		if err := p.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrDevice, err)
		}
	}
	if err := p.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}

	// The player is idle once its own buffer is empty; the device buffer
	// behind it is not.
	if tail <= 0 {
		return nil
	}
	timer := time.NewTimer(tail)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
