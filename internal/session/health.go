package session

import (
	"time"

	"github.com/rs/zerolog"
)

// sourceHealth counts consecutive failures for one collaborator (the session
// probe or the stats source). It is purely observational: the monitor's
// control flow never depends on it.
type sourceHealth struct {
	name      string
	failures  int
	lastErr   string
	lastFail  time.Time
	failing   bool
	failLevel zerolog.Level
}

func newSourceHealth(name string, failLevel zerolog.Level) *sourceHealth {
	return &sourceHealth{name: name, failLevel: failLevel}
}

// recordSuccess clears the failure streak, logging once if the source had
// been marked failing.
func (h *sourceHealth) recordSuccess(log zerolog.Logger) {
	if h.failing {
		log.Info().Str("source", h.name).Int("failures", h.failures).Msg("source recovered")
	}
	h.failures = 0
	h.lastErr = ""
	h.failing = false
}

// recordFailure extends the streak and logs once when it reaches threshold.
func (h *sourceHealth) recordFailure(err error, threshold int, now time.Time, log zerolog.Logger) {
	h.failures++
	h.lastErr = err.Error()
	h.lastFail = now
	if !h.failing && h.failures >= threshold {
		h.failing = true
		log.WithLevel(h.failLevel).Str("source", h.name).Int("failures", h.failures).Err(err).Msg("source failing")
	}
}

// SourceStatus is a point-in-time copy of a collaborator's health.
type SourceStatus struct {
	Failures int       `json:"failures"`
	Failing  bool      `json:"failing"`
	LastErr  string    `json:"lastError,omitempty"`
	LastFail time.Time `json:"lastFailure,omitempty"`
}

func (h *sourceHealth) status() SourceStatus {
	return SourceStatus{
		Failures: h.failures,
		Failing:  h.failing,
		LastErr:  h.lastErr,
		LastFail: h.lastFail,
	}
}

// Health summarises both collaborators.
type Health struct {
	Probe SourceStatus `json:"probe"`
	Stats SourceStatus `json:"stats"`
}
