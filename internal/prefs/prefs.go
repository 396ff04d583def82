// Package prefs implements the per-user preferences cache: a trivial
// settings sibling of the entity store, persisted under
// preferences:<userId> with stored values merged over defaults.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/blink-new/listalia/internal/blob"
	"github.com/blink-new/listalia/internal/models"
)

// ErrNotAttached is returned by mutations while no user is attached.
var ErrNotAttached = errors.New("preferences: no user attached")

// Defaults returns the out-of-the-box preferences.
func Defaults() models.Preferences {
	return models.Preferences{
		ViewMode:           "grid",
		ShowCompleted:      true,
		ShowNotes:          true,
		ShowImages:         true,
		ShowProgressBars:   true,
		ProgressBarStyle:   "minimal",
		CompletionMode:     "tap",
		ShowEditButtons:    true,
		EnableSwipeActions: true,
	}
}

// Patch is a partial preferences update. Nil fields are left untouched.
type Patch struct {
	ViewMode           *string `json:"viewMode"`
	ShowCompleted      *bool   `json:"showCompleted"`
	ShowNotes          *bool   `json:"showNotes"`
	ShowImages         *bool   `json:"showImages"`
	HighContrast       *bool   `json:"highContrast"`
	ShowProgressBars   *bool   `json:"showProgressBars"`
	ProgressBarStyle   *string `json:"progressBarStyle"`
	CompletionMode     *string `json:"completionMode"`
	ShowEditButtons    *bool   `json:"showEditButtons"`
	EnableSwipeActions *bool   `json:"enableSwipeActions"`
}

// Store caches the attached user's preferences with write-through.
type Store struct {
	mu    sync.Mutex
	blobs blob.Store
	log   *zap.Logger

	userID string
	prefs  models.Preferences
}

// New constructs a detached preferences store holding the defaults.
func New(blobs blob.Store, log *zap.Logger) *Store {
	return &Store{blobs: blobs, log: log, prefs: Defaults()}
}

// Attach loads the preferences of userID, merging stored values over
// the defaults. A missing or corrupt blob yields the defaults; corrupt
// blobs are logged.
func (s *Store) Attach(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = userID
	s.prefs = Defaults()

	raw, err := s.blobs.Get(ctx, blob.PreferencesKey(userID))
	if err != nil {
		if err != blob.ErrNoSuchKey {
			s.log.Error("load preferences", zap.String("user", userID), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(raw, &s.prefs); err != nil {
		s.prefs = Defaults()
		s.log.Error("parse preferences", zap.String("user", userID), zap.Error(err))
	}
}

// Detach reverts to the defaults.
func (s *Store) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = ""
	s.prefs = Defaults()
}

// Current returns the effective preferences.
func (s *Store) Current() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Update merges patch over the current preferences and writes through.
func (s *Store) Update(ctx context.Context, patch Patch) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.Preferences{}, ErrNotAttached
	}

	if patch.ViewMode != nil {
		s.prefs.ViewMode = *patch.ViewMode
	}
	if patch.ShowCompleted != nil {
		s.prefs.ShowCompleted = *patch.ShowCompleted
	}
	if patch.ShowNotes != nil {
		s.prefs.ShowNotes = *patch.ShowNotes
	}
	if patch.ShowImages != nil {
		s.prefs.ShowImages = *patch.ShowImages
	}
	if patch.HighContrast != nil {
		s.prefs.HighContrast = *patch.HighContrast
	}
	if patch.ShowProgressBars != nil {
		s.prefs.ShowProgressBars = *patch.ShowProgressBars
	}
	if patch.ProgressBarStyle != nil {
		s.prefs.ProgressBarStyle = *patch.ProgressBarStyle
	}
	if patch.CompletionMode != nil {
		s.prefs.CompletionMode = *patch.CompletionMode
	}
	if patch.ShowEditButtons != nil {
		s.prefs.ShowEditButtons = *patch.ShowEditButtons
	}
	if patch.EnableSwipeActions != nil {
		s.prefs.EnableSwipeActions = *patch.EnableSwipeActions
	}

	return s.prefs, s.persist(ctx)
}

// Reset restores the defaults and writes through.
func (s *Store) Reset(ctx context.Context) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.Preferences{}, ErrNotAttached
	}

	s.prefs = Defaults()
	return s.prefs, s.persist(ctx)
}

// persist mirrors the preferences to storage. Callers must hold mu.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.prefs)
	if err == nil {
		err = s.blobs.Put(ctx, blob.PreferencesKey(s.userID), data)
	}
	if err != nil {
		s.log.Error("persist preferences", zap.String("user", s.userID), zap.Error(err))
		return err
	}
	return nil
}
