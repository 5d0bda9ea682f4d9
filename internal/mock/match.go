// Package mock simulates the game's live-client API: a scripted match that
// loops lobby, loading, playing and post-game, with counters that grow at
// random while playing.
package mock

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/glory-app/glory/internal/player"
)

// Phase is where the simulated match currently is.
type Phase int

const (
	Lobby Phase = iota
	Loading
	Playing
	PostGame
)

var phaseNames = map[Phase]string{
	Lobby:    "lobby",
	Loading:  "loading",
	Playing:  "playing",
	PostGame: "post_game",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// Script sets how many probe steps each phase lasts.
type Script struct {
	Lobby    int
	Loading  int
	Playing  int
	PostGame int
}

// DefaultScript gives a short match that is easy to watch at a one-second
// poll interval.
var DefaultScript = Script{Lobby: 5, Loading: 3, Playing: 90, PostGame: 4}

func (s Script) length(p Phase) int {
	switch p {
	case Lobby:
		return s.Lobby
	case Loading:
		return s.Loading
	case Playing:
		return s.Playing
	default:
		return s.PostGame
	}
}

// Odds are per-step probabilities of each counter moving while playing.
type Odds struct {
	Kill   float64
	Death  float64
	Assist float64
	Creep  float64
}

var DefaultOdds = Odds{Kill: 0.06, Death: 0.04, Assist: 0.08, Creep: 0.55}

// Match is a simulated game session. It implements session.Probe and
// player.Source and is safe for concurrent use, since the HTTP fake serves
// it from many goroutines.
type Match struct {
	mu       sync.Mutex
	rng      *rand.Rand
	script   Script
	odds     Odds
	failRate float64

	phase   Phase
	step    int
	time    float64
	snap    player.Snapshot
	matches int
}

// Option configures a Match.
type Option func(*Match)

func WithScript(s Script) Option { return func(m *Match) { m.script = s } }

func WithOdds(o Odds) Option { return func(m *Match) { m.odds = o } }

// WithFailureRate makes Fetch fail with the given probability.
func WithFailureRate(p float64) Option { return func(m *Match) { m.failRate = p } }

func NewMatch(seed int64, opts ...Option) *Match {
	m := &Match{
		rng:    rand.New(rand.NewSource(seed)),
		script: DefaultScript,
		odds:   DefaultOdds,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Active advances the script one step and reports whether a game is running.
func (m *Match) Active(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advanceLocked()
	return m.phase == Playing, nil
}

// Fetch returns the simulated counters. Outside the playing phase the API
// does not exist, so the fetch is unavailable.
func (m *Match) Fetch(_ context.Context, playerName string) (player.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != Playing && m.phase != Loading {
		return player.Snapshot{}, fmt.Errorf("no game for %q: %w", playerName, player.ErrUnavailable)
	}
	if m.failRate > 0 && m.rng.Float64() < m.failRate {
		return player.Snapshot{}, fmt.Errorf("simulated outage: %w", player.ErrUnavailable)
	}
	return m.snap, nil
}

// Phase returns the current phase.
func (m *Match) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Snapshot returns the current simulated counters.
func (m *Match) Snapshot() player.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Matches returns how many matches have finished.
func (m *Match) Matches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matches
}

func (m *Match) advanceLocked() {
	m.step++
	if m.step > m.script.length(m.phase) {
		m.step = 1
		m.phase = m.next()
		if m.phase == Loading {
			m.snap = player.Snapshot{}
			m.time = 0
		}
		if m.phase == Lobby {
			m.matches++
		}
	}
	if m.phase == Playing {
		m.time++
		m.playLocked()
	}
}

func (m *Match) next() Phase {
	switch m.phase {
	case Lobby:
		return Loading
	case Loading:
		return Playing
	case Playing:
		return PostGame
	default:
		return Lobby
	}
}

func (m *Match) playLocked() {
	if m.rng.Float64() < m.odds.Creep {
		m.snap.CreepScore += 1 + m.rng.Intn(2)
	}
	if m.rng.Float64() < m.odds.Kill {
		m.snap.Kills++
	}
	if m.rng.Float64() < m.odds.Death {
		m.snap.Deaths++
	}
	if m.rng.Float64() < m.odds.Assist {
		m.snap.Assists++
	}
}
