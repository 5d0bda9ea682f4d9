// Package player caches one player's scoreboard counters and turns changes
// between polls into events.
package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/glory-app/glory/internal/event"
)

// ErrUnavailable marks any failure to obtain a fresh snapshot: transport
// error, malformed payload, or a missing field.
var ErrUnavailable = errors.New("stats unavailable")

// Snapshot holds the tracked counters for one player at one instant.
type Snapshot struct {
	Kills      int `json:"kills"`
	Deaths     int `json:"deaths"`
	Assists    int `json:"assists"`
	CreepScore int `json:"creepScore"`
}

// Valid reports whether every counter is non-negative.
func (s Snapshot) Valid() bool {
	return s.Kills >= 0 && s.Deaths >= 0 && s.Assists >= 0 && s.CreepScore >= 0
}

// KDA renders the usual kills/deaths/assists triple.
func (s Snapshot) KDA() string {
	return fmt.Sprintf("%d/%d/%d", s.Kills, s.Deaths, s.Assists)
}

// Source fetches the live snapshot for a player. Implementations wrap every
// failure in ErrUnavailable.
type Source interface {
	Fetch(ctx context.Context, playerName string) (Snapshot, error)
}

// counter binds a snapshot field to the event raised when it changes. The
// slice order is the emission order: death and kill first so audio
// subscribers hear the important cue.
type counter struct {
	name  event.Name
	field func(*Snapshot) *int
}

var counters = []counter{
	{event.Death, func(s *Snapshot) *int { return &s.Deaths }},
	{event.Kill, func(s *Snapshot) *int { return &s.Kills }},
	{event.Assist, func(s *Snapshot) *int { return &s.Assists }},
	{event.CreepKilled, func(s *Snapshot) *int { return &s.CreepScore }},
}

// Diff lists the events for every counter that differs between prev and next.
func Diff(prev, next Snapshot) []event.Name {
	var out []event.Name
	for _, c := range counters {
		if *c.field(&prev) != *c.field(&next) {
			out = append(out, c.name)
		}
	}
	return out
}
