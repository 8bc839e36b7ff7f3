package outbound

import (
	"context"
	"time"
)

// Limiter keeps a minimum interval between two marked instants.
// It is not safe for concurrent use; Sender only touches it while holding its gate.
type Limiter struct {
	interval time.Duration
	clock    Clock
	last     time.Time
}

// NewLimiter creates a Limiter. A negative interval is treated as zero.
func NewLimiter(interval time.Duration, clock Clock) *Limiter {
	if interval < 0 {
		interval = 0
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Limiter{
		interval: interval,
		clock:    clock,
	}
}

// Wait blocks until the interval since the last Mark has elapsed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.last.IsZero() || l.interval == 0 {
		return nil
	}

	wait := l.last.Add(l.interval).Sub(l.clock.Now())
	if wait <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.clock.After(wait):
		return nil
	}
}

// Mark records the current instant as the last send.
func (l *Limiter) Mark() time.Time {
	l.last = l.clock.Now()
	return l.last
}

// Last returns the instant recorded by the latest Mark.
func (l *Limiter) Last() time.Time {
	return l.last
}
