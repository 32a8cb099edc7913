// Package filesystem persists event configurations as one JSON file per
// event under a base directory.
package filesystem

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/snapbooth/snapbooth/pkg/eventstore"
)

// Store writes each event to <baseDir>/<id>.json.
type Store struct {
	baseDir string
}

// NewStore creates the base directory if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create event dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Save writes cfg as JSON, assigning a ULID when cfg.ID is empty.
func (s *Store) Save(_ context.Context, cfg *eventstore.EventConfig) (string, error) {
	if cfg.ID == "" {
		id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
		if err != nil {
			return "", err
		}
		cfg.ID = id.String()
	}
	if strings.ContainsAny(cfg.ID, `/\`) {
		return "", fmt.Errorf("invalid event id %q", cfg.ID)
	}
	cfg.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}
	if err := os.WriteFile(s.path(cfg.ID), data, 0644); err != nil {
		return "", fmt.Errorf("write event: %w", err)
	}
	return cfg.ID, nil
}

// Load reads the event for id.
func (s *Store) Load(_ context.Context, id string) (*eventstore.EventConfig, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eventstore.ErrNotFound
		}
		return nil, fmt.Errorf("read event: %w", err)
	}

	var cfg eventstore.EventConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse event %s: %w", id, err)
	}
	return &cfg, nil
}

// List reads every event file, newest first. Unparseable files are skipped.
func (s *Store) List(ctx context.Context) ([]*eventstore.EventConfig, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	var out []*eventstore.EventConfig
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		cfg, err := s.Load(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, cfg)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes the event file; a missing file is not an error.
func (s *Store) Delete(_ context.Context, id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
