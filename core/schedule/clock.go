package schedule

import (
	"context"
	"sync"
	"time"
)

// Clock keeps track of the period currently in progress, re-evaluating on a
// fixed tick. Its goroutine exits when the context passed to Start is
// cancelled; Stopped can be used to wait for the teardown.
type Clock struct {
	svc      *Service
	interval time.Duration

	mu      sync.RWMutex
	current Period
	running bool

	stopped chan struct{}
}

func NewClock(svc *Service, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Clock{
		svc:      svc,
		interval: interval,
		stopped:  make(chan struct{}),
	}
}

// Start launches the ticking goroutine. It evaluates once immediately so
// Current is usable right away.
func (c *Clock) Start(ctx context.Context) {
	c.evaluate(time.Now())

	go func() {
		defer close(c.stopped)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				c.evaluate(t)
			}
		}
	}()
}

// Current returns the period in progress, if any.
func (c *Clock) Current() (Period, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current, c.running
}

// Stopped is closed once the ticking goroutine has exited.
func (c *Clock) Stopped() <-chan struct{} { return c.stopped }

func (c *Clock) evaluate(t time.Time) {
	p, ok, err := c.svc.Current(t)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.current, c.running = p, ok
	c.mu.Unlock()
}
