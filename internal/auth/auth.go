// Package auth implements the mock identity provider: demo-account
// login, signup, logout, and profile updates with simulated latency,
// plus session persistence and change notification for the stores that
// scope their data by the current user.
//
// One user is signed in at a time. Signing in a different user replaces
// the previous session entirely.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blink-new/listalia/internal/blob"
	"github.com/blink-new/listalia/internal/models"
)

// ErrInvalidCredentials is returned by Login for anything but the demo
// account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotSignedIn is returned by operations that need a current user.
var ErrNotSignedIn = errors.New("not signed in")

// demoUser is the fixed account the mock login accepts.
var demoUser = models.User{
	ID:     "1",
	Email:  "demo@example.com",
	Name:   "Demo User",
	Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Felix",
}

// ChangeFunc is called after every identity change with the new current
// user id and authentication status. An empty id means signed out.
type ChangeFunc func(userID string, authenticated bool)

// UserPatch is a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Email  *string `json:"email"`
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// Service holds the current session and notifies subscribers on change.
type Service struct {
	mu    sync.Mutex
	blobs blob.Store
	log   *zap.Logger
	delay time.Duration
	newID func() string

	user      *models.User
	token     string
	listeners []ChangeFunc
}

// New constructs the identity provider. delay is the simulated latency
// of login and signup (logout takes half of it); pass 0 in tests.
func New(blobs blob.Store, log *zap.Logger, delay time.Duration) *Service {
	return &Service{
		blobs: blobs,
		log:   log,
		delay: delay,
		newID: uuid.NewString,
	}
}

// OnChange registers fn to be called after every identity change.
// Subscribers are invoked outside the service's lock, in registration
// order.
func (s *Service) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Restore reloads a persisted session, if any, and notifies
// subscribers. A corrupt session blob is logged and treated as signed
// out.
func (s *Service) Restore(ctx context.Context) {
	raw, err := s.blobs.Get(ctx, blob.SessionKey)
	if err != nil {
		if err != blob.ErrNoSuchKey {
			s.log.Error("restore session", zap.Error(err))
		}
		return
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Error("parse session", zap.Error(err))
		return
	}

	s.signIn(ctx, u, false)
}

// Login signs in the demo account after the simulated latency. Any
// other email fails with ErrInvalidCredentials; the password is not
// checked (mock authentication). Returns the user and a session token.
func (s *Service) Login(ctx context.Context, email, _ string) (models.User, string, error) {
	if err := s.pause(ctx, s.delay); err != nil {
		return models.User{}, "", err
	}

	if email != demoUser.Email {
		return models.User{}, "", ErrInvalidCredentials
	}

	token := s.signIn(ctx, demoUser, true)
	return demoUser, token, nil
}

// Signup creates a new user after the simulated latency, signs them in,
// and returns the user and a session token.
func (s *Service) Signup(ctx context.Context, email, _, name string) (models.User, string, error) {
	if err := s.pause(ctx, s.delay); err != nil {
		return models.User{}, "", err
	}

	u := models.User{
		ID:     s.newID(),
		Email:  email,
		Name:   name,
		Avatar: fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", name),
	}

	token := s.signIn(ctx, u, true)
	return u, token, nil
}

// Logout clears the session after half the simulated latency and
// notifies subscribers.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.pause(ctx, s.delay/2); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, blob.SessionKey); err != nil {
		s.log.Error("clear session", zap.Error(err))
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	listeners := append([]ChangeFunc(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn("", false)
	}
	return nil
}

// UpdateProfile merges patch over the current user and persists the
// session.
func (s *Service) UpdateProfile(ctx context.Context, patch UserPatch) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.User{}, ErrNotSignedIn
	}

	if patch.Email != nil {
		s.user.Email = *patch.Email
	}
	if patch.Name != nil {
		s.user.Name = *patch.Name
	}
	if patch.Avatar != nil {
		s.user.Avatar = *patch.Avatar
	}

	s.persistSession(ctx, *s.user)
	return *s.user, nil
}

// Current returns the signed-in user, if any.
func (s *Service) Current() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// ValidateToken resolves a session token to the current user id.
func (s *Service) ValidateToken(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil || token == "" || token != s.token {
		return "", false
	}
	return s.user.ID, true
}

// signIn installs u as the current user, optionally persists the
// session, notifies subscribers, and returns the new session token.
func (s *Service) signIn(ctx context.Context, u models.User, persist bool) string {
	if persist {
		s.persistSession(ctx, u)
	}

	s.mu.Lock()
	s.user = &u
	s.token = s.newID()
	token := s.token
	listeners := append([]ChangeFunc(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(u.ID, true)
	}
	return token
}

// persistSession mirrors the session user to storage. A failed write is
// logged; the session then simply does not survive a restart.
func (s *Service) persistSession(ctx context.Context, u models.User) {
	data, err := json.Marshal(u)
	if err == nil {
		err = s.blobs.Put(ctx, blob.SessionKey, data)
	}
	if err != nil {
		s.log.Error("persist session", zap.Error(err))
	}
}

// pause sleeps for the simulated latency, honoring ctx cancellation.
func (s *Service) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
