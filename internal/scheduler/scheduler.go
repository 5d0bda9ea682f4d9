// Package scheduler runs a tick function at a fixed target interval.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Ticker is the work done once per tick.
type Ticker interface {
	Tick(ctx context.Context)
}

// TickerFunc adapts a function to Ticker.
type TickerFunc func(ctx context.Context)

func (f TickerFunc) Tick(ctx context.Context) { f(ctx) }

// Scheduler measures how long each tick's work takes and sleeps only the
// remainder of the interval. A tick that overruns is followed immediately by
// the next one; lost time is never made up.
type Scheduler struct {
	interval time.Duration
	target   Ticker
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	log      zerolog.Logger
	stats    Stats
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the wall clock used to measure tick work.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithSleep overrides how the scheduler waits out the rest of an interval.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Scheduler) { s.sleep = sleep }
}

// WithLogger sets the scheduler's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

func New(interval time.Duration, target Ticker, opts ...Option) (*Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("scheduler: interval must be positive")
	}
	if target == nil {
		return nil, errors.New("scheduler: nil target")
	}
	s := &Scheduler{
		interval: interval,
		target:   target,
		now:      time.Now,
		sleep:    sleepContext,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "scheduler").Logger()
	return s, nil
}

// Interval returns the target tick interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Run ticks until ctx is done and returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Debug().Dur("interval", s.interval).Msg("scheduler started")
	for {
		if err := ctx.Err(); err != nil {
			s.log.Debug().Int("ticks", s.stats.Samples).Msg("scheduler stopped")
			return err
		}
		idle := s.RunOnce(ctx)
		if idle <= 0 {
			continue
		}
		if err := s.sleep(ctx, idle); err != nil {
			s.log.Debug().Int("ticks", s.stats.Samples).Msg("scheduler stopped")
			return err
		}
	}
}

// RunOnce executes a single tick and returns how long the loop should idle
// before the next one. It never returns a negative duration.
func (s *Scheduler) RunOnce(ctx context.Context) time.Duration {
	start := s.now()
	s.target.Tick(ctx)
	elapsed := s.now().Sub(start)

	overran := elapsed >= s.interval
	s.stats.observe(elapsed, overran)
	if overran {
		s.log.Debug().Dur("elapsed", elapsed).Dur("interval", s.interval).Msg("tick overran interval")
		return 0
	}
	return s.interval - elapsed
}

// Stats returns the accumulated tick timings. Call it from the goroutine
// running the scheduler or after Run has returned.
func (s *Scheduler) Stats() Stats { return s.stats }

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
