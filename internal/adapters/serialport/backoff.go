package serialport

import (
	"math/rand"
	"time"
)

// Default reconnect backoff bounds.
const (
	defaultBackoffInitial = 250 * time.Millisecond
	defaultBackoffMax     = 5 * time.Second
)

// backoff implements exponential backoff with jitter for link reopening.
// Unlike a sleeping backoff it is deadline-based: the tick loop must never
// block, so Ready is polled instead of slept on.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
	next    time.Time
}

func newBackoff(initial, max time.Duration) *backoff {
	return &backoff{
		initial: initial,
		max:     max,
		current: initial,
	}
}

// Ready reports whether enough time has passed to attempt a reopen.
func (b *backoff) Ready() bool {
	return !time.Now().Before(b.next)
}

// Bump schedules the next attempt and doubles the interval, with ±20% jitter.
func (b *backoff) Bump() {
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	b.next = time.Now().Add(time.Duration(float64(b.current) + jitter))

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
}

// Reset restores the initial interval after a successful reopen.
func (b *backoff) Reset() {
	b.current = b.initial
	b.next = time.Time{}
}
