package anidb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives a pacer deterministically: sleeps advance the clock
// instead of blocking.
type fakeClock struct {
	current time.Time
	slept   []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Unix(1000, 0)}
}

func (f *fakeClock) install(p *pacer) {
	p.now = func() time.Time { return f.current }
	p.sleep = func(_ context.Context, d time.Duration) error {
		f.slept = append(f.slept, d)
		f.current = f.current.Add(d)
		return nil
	}
}

func TestPacerFirstSendDoesNotWait(t *testing.T) {
	clock := newFakeClock()
	p := newPacer(3 * time.Second)
	clock.install(p)

	require.NoError(t, p.Wait(context.Background()))
	assert.Empty(t, clock.slept)
}

func TestPacerWaitsOutTheRemainder(t *testing.T) {
	clock := newFakeClock()
	p := newPacer(3 * time.Second)
	clock.install(p)

	p.Mark()
	clock.current = clock.current.Add(time.Second)
	require.NoError(t, p.Wait(context.Background()))
	assert.Equal(t, []time.Duration{2 * time.Second}, clock.slept)
}

func TestPacerNoWaitAfterLongIdle(t *testing.T) {
	clock := newFakeClock()
	p := newPacer(3 * time.Second)
	clock.install(p)

	p.Mark()
	clock.current = clock.current.Add(time.Minute)
	require.NoError(t, p.Wait(context.Background()))
	assert.Empty(t, clock.slept)
}

func TestPacerNeverPermitsCloseSends(t *testing.T) {
	const interval = 3 * time.Second

	clock := newFakeClock()
	p := newPacer(interval)
	clock.install(p)

	var sends []time.Time
	for range 5 {
		require.NoError(t, p.Wait(context.Background()))
		p.Mark()
		sends = append(sends, clock.current)
		// a little work between back-to-back sends
		clock.current = clock.current.Add(50 * time.Millisecond)
	}

	for i := 1; i < len(sends); i++ {
		assert.GreaterOrEqual(t, sends[i].Sub(sends[i-1]), interval)
	}
}

func TestSleepContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepContext(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
