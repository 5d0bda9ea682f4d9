package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when work or sleep tells it to.
type fakeClock struct {
	t      time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(_ context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
	return nil
}

// workload spends the listed durations on successive ticks and cancels the
// context after the last one.
func workload(clock *fakeClock, cancel context.CancelFunc, work ...time.Duration) (Ticker, *[]time.Time) {
	var starts []time.Time
	i := 0
	return TickerFunc(func(context.Context) {
		starts = append(starts, clock.t)
		clock.t = clock.t.Add(work[i])
		i++
		if i == len(work) {
			cancel()
		}
	}), &starts
}

func TestNewRejectsNonPositiveInterval(t *testing.T) {
	noop := TickerFunc(func(context.Context) {})
	_, err := New(0, noop)
	assert.Error(t, err)
	_, err = New(-time.Second, noop)
	assert.Error(t, err)
	_, err = New(time.Second, nil)
	assert.Error(t, err)

	s, err := New(time.Second, noop)
	require.NoError(t, err)
	assert.Equal(t, time.Second, s.Interval())
}

func TestRunSleepsRemainderOfInterval(t *testing.T) {
	clock := newFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	target, starts := workload(clock, cancel, 200*time.Millisecond, 50*time.Millisecond, 0, 10*time.Millisecond)

	s, err := New(time.Second, target, WithClock(clock.now), WithSleep(clock.sleep))
	require.NoError(t, err)

	err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	// The last sleep happens after the workload cancelled; the fake returns nil
	// and Run notices the cancellation on the next loop check.
	assert.Equal(t, []time.Duration{800 * time.Millisecond, 950 * time.Millisecond, time.Second, 990 * time.Millisecond}, clock.sleeps)

	for i := 1; i < len(*starts); i++ {
		assert.Equal(t, time.Second, (*starts)[i].Sub((*starts)[i-1]), "tick %d should start one interval after the previous", i)
	}
}

func TestRunSlowTickStartsNextImmediately(t *testing.T) {
	clock := newFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	target, starts := workload(clock, cancel, 2500*time.Millisecond, time.Second, 100*time.Millisecond, 0)

	s, err := New(time.Second, target, WithClock(clock.now), WithSleep(clock.sleep))
	require.NoError(t, err)
	require.ErrorIs(t, s.Run(ctx), context.Canceled)

	// Overrunning ticks (2.5s and exactly 1s) get no sleep and no catch-up.
	assert.Equal(t, []time.Duration{900 * time.Millisecond, time.Second}, clock.sleeps)
	st := *starts
	assert.Equal(t, 2500*time.Millisecond, st[1].Sub(st[0]))
	assert.Equal(t, time.Second, st[2].Sub(st[1]))
	assert.Equal(t, time.Second, st[3].Sub(st[2]))

	stats := s.Stats()
	assert.Equal(t, 4, stats.Samples)
	assert.Equal(t, 2, stats.Overruns)
	assert.Equal(t, 2500*time.Millisecond, stats.Max)
	assert.Equal(t, time.Duration(0), stats.Last)
	assert.Equal(t, 900*time.Millisecond, stats.Average())
}

func TestRunOnceNeverNegative(t *testing.T) {
	clock := newFakeClock()
	target := TickerFunc(func(context.Context) { clock.t = clock.t.Add(3 * time.Second) })
	s, err := New(time.Second, target, WithClock(clock.now))
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), s.RunOnce(context.Background()))
}

func TestRunStopsWhenSleepInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	target := TickerFunc(func(context.Context) { ticks++ })
	sleep := func(context.Context, time.Duration) error {
		cancel()
		return context.Canceled
	}
	s, err := New(time.Second, target, WithSleep(sleep))
	require.NoError(t, err)

	assert.True(t, errors.Is(s.Run(ctx), context.Canceled))
	assert.Equal(t, 1, ticks)
}

func TestRunRealTimeCadence(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 175*time.Millisecond)
	defer cancel()
	ticks := 0
	s, err := New(50*time.Millisecond, TickerFunc(func(context.Context) { ticks++ }))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Run(ctx), context.DeadlineExceeded)
	assert.GreaterOrEqual(t, ticks, 3)
	assert.LessOrEqual(t, ticks, 5)
}

func TestRunAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ticks := 0
	s, err := New(time.Second, TickerFunc(func(context.Context) { ticks++ }))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Zero(t, ticks)
}
