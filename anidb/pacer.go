package anidb

import (
	"context"
	"time"
)

// pacer enforces the minimum wall-clock interval the server requires
// between two datagrams from the same client. The server rate-limits by
// interval, not by request count; violating it risks a ban.
type pacer struct {
	interval time.Duration
	last     time.Time

	// injectable for tests
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until the interval since the last marked send has passed.
// It is a no-op before the first send and after idle periods longer than
// the interval.
func (p *pacer) Wait(ctx context.Context) error {
	if p.last.IsZero() {
		return nil
	}
	remaining := p.interval - p.now().Sub(p.last)
	if remaining <= 0 {
		return nil
	}
	return p.sleep(ctx, remaining)
}

// Mark records the timestamp of a send. Must be called for every
// datagram that goes out.
func (p *pacer) Mark() {
	p.last = p.now()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
