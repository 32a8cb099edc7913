// Package eventstore persists event configurations as flat blobs. The store
// is deliberately dumb: save, load, list, delete — no schema migration
// beyond tolerating additive fields in the JSON.
package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/snapbooth/snapbooth/pkg/filter"
	"github.com/snapbooth/snapbooth/pkg/layout"
)

// ErrNotFound is returned when no event exists for an ID.
var ErrNotFound = errors.New("eventstore: event not found")

// EventConfig is everything an event author configures: the print layout,
// the theme and overlay selection, and the default filter. It round-trips
// through JSON as an opaque blob.
type EventConfig struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Layout      layout.PrintLayoutConfig `json:"layout"`
	ThemeID     string                   `json:"themeId"`
	OverlayIDs  []string                 `json:"overlayIds,omitempty"`
	CustomTexts map[string]string        `json:"customTexts,omitempty"`
	Filter      filter.ID                `json:"filterId,omitempty"`
	Elements    []layout.Element         `json:"launchElements,omitempty"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// Store saves and loads event configurations.
type Store interface {
	// Save persists cfg and returns its ID, assigning a new one when empty.
	Save(ctx context.Context, cfg *EventConfig) (string, error)
	// Load returns the event for id, or ErrNotFound.
	Load(ctx context.Context, id string) (*EventConfig, error)
	// List returns all stored events, newest first.
	List(ctx context.Context) ([]*EventConfig, error)
	// Delete removes the event for id; deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}
