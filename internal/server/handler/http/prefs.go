package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blink-new/listalia/internal/models"
	"github.com/blink-new/listalia/internal/prefs"
)

// PreferencesService defines the preferences operations required by
// the HTTP handlers.
type PreferencesService interface {
	Current() models.Preferences
	Update(ctx context.Context, patch prefs.Patch) (models.Preferences, error)
	Reset(ctx context.Context) (models.Preferences, error)
}

// PreferencesHandler handles HTTP requests for per-user preferences.
type PreferencesHandler struct {
	Prefs PreferencesService
}

// Get handles GET /api/preferences.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Prefs.Current())
}

// Update handles PATCH /api/preferences.
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch prefs.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	p, err := h.Prefs.Update(r.Context(), patch)
	if err != nil {
		writePrefsError(w, err)
		return
	}
	writeJSON(w, p)
}

// Reset handles POST /api/preferences/reset.
func (h *PreferencesHandler) Reset(w http.ResponseWriter, r *http.Request) {
	p, err := h.Prefs.Reset(r.Context())
	if err != nil {
		writePrefsError(w, err)
		return
	}
	writeJSON(w, p)
}

func writePrefsError(w http.ResponseWriter, err error) {
	if errors.Is(err, prefs.ErrNotAttached) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
