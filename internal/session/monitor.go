// Package session tracks whether the player is in a live match and drives
// the player tracker while they are.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/glory-app/glory/internal/event"
)

// ErrProbeUnavailable marks a probe that could not determine the match state.
// The monitor treats it exactly like "no active match".
var ErrProbeUnavailable = errors.New("session probe unavailable")

// Probe reports whether a match is currently active.
type Probe interface {
	Active(ctx context.Context) (bool, error)
}

// Tracker is the part of player.Tracker the monitor drives.
type Tracker interface {
	Tick(ctx context.Context) ([]event.Name, error)
	Refresh(ctx context.Context) error
	Reset()
}

// DefaultFailureThreshold is the consecutive failure count at which a source
// is logged as failing.
const DefaultFailureThreshold = 3

// Monitor is the two-state session lifecycle detector. It is not safe for
// concurrent use; one goroutine owns it and calls Observe once, then Tick.
type Monitor struct {
	probe     Probe
	tracker   Tracker
	bus       *event.Bus
	state     State
	primed    bool
	threshold int
	now       func() time.Time
	log       zerolog.Logger

	probeHealth *sourceHealth
	statsHealth *sourceHealth
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithFailureThreshold sets how many consecutive failures mark a source as failing.
func WithFailureThreshold(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.threshold = n
		}
	}
}

// WithLogger sets the monitor's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

// WithClock overrides the time source used for health timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

func NewMonitor(probe Probe, tracker Tracker, bus *event.Bus, opts ...Option) *Monitor {
	m := &Monitor{
		probe:     probe,
		tracker:   tracker,
		bus:       bus,
		state:     NotInGame,
		threshold: DefaultFailureThreshold,
		now:       time.Now,
		log:       zerolog.Nop(),
		// "No game running" is the common probe failure, so it stays at debug.
		probeHealth: newSourceHealth("probe", zerolog.DebugLevel),
		statsHealth: newSourceHealth("stats", zerolog.WarnLevel),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With().Str("component", "session").Logger()
	return m
}

// State returns the current session state.
func (m *Monitor) State() State { return m.state }

// Health returns the failure streaks of the probe and the stats source.
func (m *Monitor) Health() Health {
	return Health{Probe: m.probeHealth.status(), Stats: m.statsHealth.status()}
}

// Observe takes the first observation. A match already in progress puts the
// monitor straight into InGame without a join event, and the tracker is
// primed with the live stats so polling does not replay them as events.
// Until priming succeeds, Tick keeps refreshing instead of diffing.
func (m *Monitor) Observe(ctx context.Context) {
	if !m.active(ctx) {
		m.state = NotInGame
		return
	}
	m.state = InGame
	m.log.Info().Msg("player already in game")
	m.prime(ctx)
}

func (m *Monitor) prime(ctx context.Context) {
	if err := m.tracker.Refresh(ctx); err != nil {
		m.statsHealth.recordFailure(err, m.threshold, m.now(), m.log)
		m.log.Debug().Err(err).Msg("stats refresh failed, tracker not primed")
		return
	}
	m.statsHealth.recordSuccess(m.log)
	m.primed = true
}

// Tick runs one lifecycle step: probe, transition, and while in game a
// tracker tick whose events are published in order.
func (m *Monitor) Tick(ctx context.Context) {
	if !m.active(ctx) {
		if m.state == InGame {
			m.tracker.Reset()
			m.state = NotInGame
			m.primed = false
			m.log.Info().Msg("player left the game")
			m.bus.Publish(event.GameLeave)
		}
		return
	}

	if m.state == NotInGame {
		// A fresh match starts from zero, so the reset cache is already right.
		m.state = InGame
		m.primed = true
		m.log.Info().Msg("player joined game")
		m.bus.Publish(event.GameJoin)
	}

	if !m.primed {
		m.prime(ctx)
		return
	}

	fired, err := m.tracker.Tick(ctx)
	if err != nil {
		m.statsHealth.recordFailure(err, m.threshold, m.now(), m.log)
		return
	}
	m.statsHealth.recordSuccess(m.log)
	for _, n := range fired {
		m.bus.Publish(n)
	}
}

func (m *Monitor) active(ctx context.Context) bool {
	ok, err := m.probe.Active(ctx)
	if err != nil {
		m.probeHealth.recordFailure(err, m.threshold, m.now(), m.log)
		return false
	}
	m.probeHealth.recordSuccess(m.log)
	return ok
}
