package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/blink-new/listalia/internal/blob"
	"github.com/blink-new/listalia/internal/models"
)

// memBlobs is a minimal in-memory blob.Store.
type memBlobs struct {
	data map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: make(map[string][]byte)}
}

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m.data[key]
	if !ok {
		return nil, blob.ErrNoSuchKey
	}
	return append([]byte(nil), data...), nil
}

func (m *memBlobs) Put(_ context.Context, key string, data []byte) error {
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestDetachedStoreHoldsDefaults(t *testing.T) {
	s := New(newMemBlobs(), zap.NewNop())
	if got := s.Current(); got != Defaults() {
		t.Errorf("Current = %+v; want defaults", got)
	}
}

func TestAttach_MergesStoredOverDefaults(t *testing.T) {
	blobs := newMemBlobs()
	blobs.data[blob.PreferencesKey("u1")] = []byte(`{"viewMode":"row","showCompleted":false}`)

	s := New(blobs, zap.NewNop())
	s.Attach(context.Background(), "u1")

	got := s.Current()
	if got.ViewMode != "row" {
		t.Errorf("ViewMode = %q; want row", got.ViewMode)
	}
	if got.ShowCompleted {
		t.Error("ShowCompleted should be overridden to false")
	}
	// Fields absent from the stored blob keep their defaults.
	if got.ProgressBarStyle != "minimal" || !got.ShowNotes {
		t.Errorf("defaults not preserved: %+v", got)
	}
}

func TestAttach_CorruptBlobYieldsDefaults(t *testing.T) {
	blobs := newMemBlobs()
	blobs.data[blob.PreferencesKey("u1")] = []byte("{broken")

	s := New(blobs, zap.NewNop())
	s.Attach(context.Background(), "u1")

	if got := s.Current(); got != Defaults() {
		t.Errorf("Current = %+v; want defaults", got)
	}
}

func TestUpdate_WritesThrough(t *testing.T) {
	blobs := newMemBlobs()
	s := New(blobs, zap.NewNop())
	s.Attach(context.Background(), "u1")

	mode := "compact"
	contrast := true
	got, err := s.Update(context.Background(), Patch{ViewMode: &mode, HighContrast: &contrast})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ViewMode != "compact" || !got.HighContrast {
		t.Errorf("unexpected preferences: %+v", got)
	}

	var persisted models.Preferences
	if err := json.Unmarshal(blobs.data[blob.PreferencesKey("u1")], &persisted); err != nil {
		t.Fatalf("unmarshal persisted preferences: %v", err)
	}
	if persisted != got {
		t.Errorf("persisted = %+v; want %+v", persisted, got)
	}
}

func TestUpdate_RequiresAttachedUser(t *testing.T) {
	s := New(newMemBlobs(), zap.NewNop())
	if _, err := s.Update(context.Background(), Patch{}); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("Update = %v; want ErrNotAttached", err)
	}
	if _, err := s.Reset(context.Background()); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("Reset = %v; want ErrNotAttached", err)
	}
}

func TestReset(t *testing.T) {
	blobs := newMemBlobs()
	s := New(blobs, zap.NewNop())
	s.Attach(context.Background(), "u1")

	mode := "folders"
	if _, err := s.Update(context.Background(), Patch{ViewMode: &mode}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Reset(context.Background())
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got != Defaults() {
		t.Errorf("Reset = %+v; want defaults", got)
	}

	var persisted models.Preferences
	if err := json.Unmarshal(blobs.data[blob.PreferencesKey("u1")], &persisted); err != nil {
		t.Fatalf("unmarshal persisted preferences: %v", err)
	}
	if persisted != Defaults() {
		t.Errorf("persisted = %+v; want defaults", persisted)
	}
}

func TestDetachRevertsToDefaults(t *testing.T) {
	blobs := newMemBlobs()
	blobs.data[blob.PreferencesKey("u1")] = []byte(`{"viewMode":"row"}`)

	s := New(blobs, zap.NewNop())
	s.Attach(context.Background(), "u1")
	s.Detach()

	if got := s.Current(); got != Defaults() {
		t.Errorf("Current after detach = %+v; want defaults", got)
	}
}
