// Package notify carries tournament change events to viewers and to other
// services.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type names an event kind.
type Type string

// Event kinds.
const (
	GameUpdated      Type = "game_updated"
	StandingsUpdated Type = "standings_updated"
	ChampionDeclared Type = "champion_declared"
	SaveFailed       Type = "save_failed"
	TournamentReset  Type = "tournament_reset"
	RosterUpdated    Type = "roster_updated"
	// SnapshotSent carries the full state to a newly connected viewer.
	SnapshotSent Type = "snapshot"
)

// Event is one change notification. Version is the tournament state
// version the event was produced at.
type Event struct {
	ID      string      `json:"id"`
	Type    Type        `json:"type"`
	Version uint64      `json:"version"`
	GameID  int64       `json:"game_id,omitempty"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload,omitempty"`
}

// NewEvent stamps a new event with a random id and the current time.
func NewEvent(t Type, version uint64, payload interface{}) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    t,
		Version: version,
		At:      time.Now().UTC(),
		Payload: payload,
	}
}

// WithGame sets the game the event is about.
func (e Event) WithGame(id int64) Event {
	e.GameID = id
	return e
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Multi publishes to every publisher, even after one of them fails.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Func adapts a function to Publisher.
type Func func(ctx context.Context, e Event) error

// Publish implements Publisher.
func (f Func) Publish(ctx context.Context, e Event) error { return f(ctx, e) }
