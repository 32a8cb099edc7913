package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/snapbooth/snapbooth/pkg/eventstore"
	"github.com/snapbooth/snapbooth/pkg/layout"
)

func TestSaveAssignsULID(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, err := store.Save(ctx, &eventstore.EventConfig{Name: "Wedding"})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if len(id) != 26 {
		t.Errorf("Save() returned invalid ULID length: got %d, want 26", len(id))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	cfg := &eventstore.EventConfig{
		Name:    "Birthday",
		ThemeID: "festival",
		Layout: layout.PrintLayoutConfig{
			Format:       layout.FormatStrip2x6,
			LayoutPreset: layout.PresetGrid,
			PhotoCount:   4,
		},
	}
	id, err := store.Save(ctx, cfg)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.Name != "Birthday" || got.ThemeID != "festival" {
		t.Errorf("Load() returned wrong event: %+v", got)
	}
	if got.Layout.PhotoCount != 4 {
		t.Errorf("Load() lost layout data: %+v", got.Layout)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("Save() did not stamp UpdatedAt")
	}
}

func TestLoadMissing(t *testing.T) {
	store := NewStore()
	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, eventstore.ErrNotFound) {
		t.Errorf("Load() missing: got %v, want ErrNotFound", err)
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, _ := store.Save(ctx, &eventstore.EventConfig{Name: "Original"})
	got, _ := store.Load(ctx, id)
	got.Name = "Mutated"

	again, _ := store.Load(ctx, id)
	if again.Name != "Original" {
		t.Error("Load() leaked internal state to callers")
	}
}

func TestListAndDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	a, _ := store.Save(ctx, &eventstore.EventConfig{Name: "A"})
	if _, err := store.Save(ctx, &eventstore.EventConfig{Name: "B"}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	events, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("List() returned %d events, want 2", len(events))
	}

	if err := store.Delete(ctx, a); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := store.Delete(ctx, a); err != nil {
		t.Errorf("Delete() of missing id should be a no-op, got %v", err)
	}

	events, _ = store.List(ctx)
	if len(events) != 1 || events[0].Name != "B" {
		t.Errorf("List() after delete: %+v", events)
	}
}
