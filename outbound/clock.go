package outbound

import "time"

// Clock is the time source used for rate limiting.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock is a Clock backed by the time package.
type SystemClock struct{}

var _ Clock = SystemClock{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// After waits for the duration to elapse and then sends the current time on the returned channel.
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
