// Package memory provides an in-memory event store, used by tests and by
// kiosks that keep events only for the session.
package memory

import (
	"context"
	"crypto/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/snapbooth/snapbooth/pkg/eventstore"
)

// Store is a thread-safe in-memory eventstore.Store.
type Store struct {
	mu     sync.RWMutex
	events map[string]eventstore.EventConfig
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{events: make(map[string]eventstore.EventConfig)}
}

// Save stores a copy of cfg, assigning a ULID when cfg.ID is empty.
func (s *Store) Save(_ context.Context, cfg *eventstore.EventConfig) (string, error) {
	if cfg.ID == "" {
		id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
		if err != nil {
			return "", err
		}
		cfg.ID = id.String()
	}
	cfg.UpdatedAt = time.Now()

	s.mu.Lock()
	s.events[cfg.ID] = *cfg
	s.mu.Unlock()
	return cfg.ID, nil
}

// Load returns the event for id.
func (s *Store) Load(_ context.Context, id string) (*eventstore.EventConfig, error) {
	s.mu.RLock()
	cfg, ok := s.events[id]
	s.mu.RUnlock()
	if !ok {
		return nil, eventstore.ErrNotFound
	}
	return &cfg, nil
}

// List returns all events, newest first.
func (s *Store) List(_ context.Context) ([]*eventstore.EventConfig, error) {
	s.mu.RLock()
	out := make([]*eventstore.EventConfig, 0, len(s.events))
	for _, cfg := range s.events {
		c := cfg
		out = append(out, &c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes the event for id.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.events, id)
	s.mu.Unlock()
	return nil
}
