package scheduler

import (
	"time"

	"github.com/rs/zerolog"
)

// Stats summarises observed tick work durations.
type Stats struct {
	Samples  int
	Overruns int
	Total    time.Duration
	Max      time.Duration
	Last     time.Duration
}

func (s *Stats) observe(d time.Duration, overran bool) {
	s.Samples++
	s.Total += d
	if d > s.Max {
		s.Max = d
	}
	s.Last = d
	if overran {
		s.Overruns++
	}
}

// Average is the mean work duration per tick.
func (s Stats) Average() time.Duration {
	if s.Samples == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Samples)
}

// MarshalZerologObject lets Stats be logged with Event.Object.
func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("ticks", s.Samples).
		Int("overruns", s.Overruns).
		Dur("avg", s.Average()).
		Dur("max", s.Max)
}
