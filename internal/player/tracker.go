package player

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/glory-app/glory/internal/event"
)

// Tracker owns the last known snapshot for one player.
type Tracker struct {
	name   string
	source Source
	cached Snapshot
	log    zerolog.Logger
}

func NewTracker(name string, source Source, logger zerolog.Logger) *Tracker {
	return &Tracker{
		name:   name,
		source: source,
		log:    logger.With().Str("component", "tracker").Str("player", name).Logger(),
	}
}

// Player returns the identifier the tracker fetches for.
func (t *Tracker) Player() string { return t.name }

// Snapshot returns the cached counters.
func (t *Tracker) Snapshot() Snapshot { return t.cached }

// Tick fetches a fresh snapshot and returns the events for every counter that
// changed, then replaces the cache. When the fetch fails the cache is
// left alone and no events are returned; the error is only for accounting.
func (t *Tracker) Tick(ctx context.Context) ([]event.Name, error) {
	next, err := t.fetch(ctx)
	if err != nil {
		return nil, err
	}

	fired := Diff(t.cached, next)
	t.cached = next
	if len(fired) > 0 {
		t.log.Debug().Str("kda", t.cached.KDA()).Int("cs", t.cached.CreepScore).Msg("stats changed")
	}
	return fired, nil
}

// Refresh replaces the cache with the live snapshot without raising events.
// Used when monitoring starts in the middle of a match.
func (t *Tracker) Refresh(ctx context.Context) error {
	next, err := t.fetch(ctx)
	if err != nil {
		return err
	}
	t.cached = next
	return nil
}

// Reset zeroes the cache without raising events.
func (t *Tracker) Reset() {
	t.cached = Snapshot{}
}

func (t *Tracker) fetch(ctx context.Context) (Snapshot, error) {
	next, err := t.source.Fetch(ctx, t.name)
	if err != nil {
		return Snapshot{}, err
	}
	if !next.Valid() {
		return Snapshot{}, fmt.Errorf("negative counter in %+v: %w", next, ErrUnavailable)
	}
	return next, nil
}
