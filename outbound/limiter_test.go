package outbound

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock advances its own time when waited on, so waits are instant and exact.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waits = append(c.waits, d)
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

// stalledClock never fires and reports each wait on waiting.
type stalledClock struct {
	now     time.Time
	waiting chan time.Duration
}

func newStalledClock() *stalledClock {
	return &stalledClock{now: time.Now(), waiting: make(chan time.Duration, 8)}
}

func (c *stalledClock) Now() time.Time {
	return c.now
}

func (c *stalledClock) After(d time.Duration) <-chan time.Time {
	c.waiting <- d
	return make(chan time.Time)
}

func TestLimiter_FirstWaitDoesNotBlock(t *testing.T) {
	req := require.New(t)
	clock := newFakeClock()
	limiter := NewLimiter(time.Second, clock)

	req.NoError(limiter.Wait(context.Background()))
	req.Empty(clock.Waits())
	req.True(limiter.Last().IsZero())
}

func TestLimiter_WaitsRemainingInterval(t *testing.T) {
	req := require.New(t)
	clock := newFakeClock()
	limiter := NewLimiter(time.Second, clock)

	first := limiter.Mark()
	clock.Advance(300 * time.Millisecond)

	req.NoError(limiter.Wait(context.Background()))
	req.Equal([]time.Duration{700 * time.Millisecond}, clock.Waits())
	req.Equal(first.Add(time.Second), clock.Now())
}

func TestLimiter_NoWaitAfterInterval(t *testing.T) {
	req := require.New(t)
	clock := newFakeClock()
	limiter := NewLimiter(time.Second, clock)

	limiter.Mark()
	clock.Advance(2 * time.Second)

	req.NoError(limiter.Wait(context.Background()))
	req.Empty(clock.Waits())
}

func TestLimiter_NegativeIntervalIsZero(t *testing.T) {
	req := require.New(t)
	clock := newFakeClock()
	limiter := NewLimiter(-time.Second, clock)

	limiter.Mark()
	req.NoError(limiter.Wait(context.Background()))
	req.Empty(clock.Waits())
}

func TestLimiter_WaitCanceled(t *testing.T) {
	req := require.New(t)
	clock := newStalledClock()
	limiter := NewLimiter(time.Hour, clock)
	limiter.Mark()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- limiter.Wait(ctx)
	}()

	req.Equal(time.Hour, <-clock.waiting)
	cancel()
	req.ErrorIs(<-errCh, context.Canceled)
}
