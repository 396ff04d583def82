// Package http exposes the store operations and mock authentication as
// the JSON API consumed by the presentation layer.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blink-new/listalia/internal/auth"
	"github.com/blink-new/listalia/internal/models"
)

// AuthService defines the identity operations required by the HTTP
// handlers.
type AuthService interface {
	// Login signs in the demo account and returns it with a session token.
	Login(ctx context.Context, email, password string) (models.User, string, error)
	// Signup creates and signs in a new user, returning it with a session token.
	Signup(ctx context.Context, email, password, name string) (models.User, string, error)
	// Logout clears the current session.
	Logout(ctx context.Context) error
	// UpdateProfile merges a partial update over the current user.
	UpdateProfile(ctx context.Context, patch auth.UserPatch) (models.User, error)
	// Current returns the signed-in user, if any.
	Current() (models.User, bool)
}

// AuthHandler handles HTTP requests for session management and the
// user profile.
type AuthHandler struct {
	// AuthService performs the underlying identity operations.
	AuthService AuthService
}

// credentialsRequest represents the JSON payload for login and signup.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// sessionResponse is returned by login and signup.
type sessionResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, sessionResponse{User: user, Token: token})
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, sessionResponse{User: user, Token: token})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.AuthService.Current()
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, user)
}

// UpdateProfile handles PATCH /api/auth/me.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch auth.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.UpdateProfile(r.Context(), patch)
	if err != nil {
		if errors.Is(err, auth.ErrNotSignedIn) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, user)
}

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
