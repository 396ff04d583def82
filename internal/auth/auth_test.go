package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

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

func newTestService() (*Service, *memBlobs) {
	blobs := newMemBlobs()
	return New(blobs, zap.NewNop(), 0), blobs
}

func TestLogin_DemoAccount(t *testing.T) {
	svc, blobs := newTestService()

	user, token, err := svc.Login(context.Background(), "demo@example.com", "whatever")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != "1" || user.Name != "Demo User" {
		t.Errorf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}

	userID, ok := svc.ValidateToken(token)
	if !ok || userID != "1" {
		t.Errorf("ValidateToken = %q, %v; want \"1\", true", userID, ok)
	}

	if _, ok := blobs.data[blob.SessionKey]; !ok {
		t.Error("expected session to be persisted")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Login(context.Background(), "someone@else.com", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v; want ErrInvalidCredentials", err)
	}
	if _, ok := svc.Current(); ok {
		t.Error("expected no current user after failed login")
	}
}

func TestLogin_ContextCanceled(t *testing.T) {
	blobs := newMemBlobs()
	svc := New(blobs, zap.NewNop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.Login(ctx, "demo@example.com", "pw")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Login error = %v; want context.Canceled", err)
	}
}

func TestSignup_CreatesAndSignsIn(t *testing.T) {
	svc, _ := newTestService()

	user, token, err := svc.Signup(context.Background(), "new@example.com", "pw", "Newbie")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.ID == "" || user.Email != "new@example.com" || user.Name != "Newbie" {
		t.Errorf("unexpected user: %+v", user)
	}
	if !strings.Contains(user.Avatar, "Newbie") {
		t.Errorf("avatar should be seeded from the name, got %q", user.Avatar)
	}

	if userID, ok := svc.ValidateToken(token); !ok || userID != user.ID {
		t.Errorf("ValidateToken = %q, %v; want %q, true", userID, ok, user.ID)
	}
}

func TestLogout(t *testing.T) {
	svc, blobs := newTestService()

	var gotID string
	var gotAuth = true
	svc.OnChange(func(userID string, authenticated bool) {
		gotID = userID
		gotAuth = authenticated
	})

	_, token, err := svc.Login(context.Background(), "demo@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotID != "1" || !gotAuth {
		t.Fatalf("OnChange after login = %q, %v; want \"1\", true", gotID, gotAuth)
	}

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if gotID != "" || gotAuth {
		t.Errorf("OnChange after logout = %q, %v; want \"\", false", gotID, gotAuth)
	}
	if _, ok := svc.Current(); ok {
		t.Error("expected no current user after logout")
	}
	if _, ok := svc.ValidateToken(token); ok {
		t.Error("expected token to be invalid after logout")
	}
	if _, ok := blobs.data[blob.SessionKey]; ok {
		t.Error("expected persisted session to be cleared")
	}
}

func TestRestore_PersistedSession(t *testing.T) {
	svc, blobs := newTestService()

	stored := models.User{ID: "u9", Email: "kept@example.com", Name: "Kept"}
	raw, _ := json.Marshal(stored)
	blobs.data[blob.SessionKey] = raw

	notified := false
	svc.OnChange(func(userID string, authenticated bool) {
		notified = userID == "u9" && authenticated
	})

	svc.Restore(context.Background())

	user, ok := svc.Current()
	if !ok || user.ID != "u9" {
		t.Fatalf("Current after restore = %+v, %v; want u9", user, ok)
	}
	if !notified {
		t.Error("expected subscribers to be notified on restore")
	}
}

func TestRestore_CorruptSession(t *testing.T) {
	svc, blobs := newTestService()
	blobs.data[blob.SessionKey] = []byte("{broken")

	svc.Restore(context.Background())

	if _, ok := svc.Current(); ok {
		t.Error("expected signed-out state for a corrupt session blob")
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, blobs := newTestService()

	_, err := svc.UpdateProfile(context.Background(), UserPatch{})
	if !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("UpdateProfile while signed out = %v; want ErrNotSignedIn", err)
	}

	if _, _, err := svc.Login(context.Background(), "demo@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	name := "Renamed"
	user, err := svc.UpdateProfile(context.Background(), UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.Name != "Renamed" {
		t.Errorf("Name = %q; want Renamed", user.Name)
	}
	if user.Email != "demo@example.com" {
		t.Errorf("Email changed unexpectedly: %q", user.Email)
	}

	var persisted models.User
	if err := json.Unmarshal(blobs.data[blob.SessionKey], &persisted); err != nil {
		t.Fatalf("unmarshal persisted session: %v", err)
	}
	if persisted.Name != "Renamed" {
		t.Errorf("persisted Name = %q; want Renamed", persisted.Name)
	}
}

func TestSwitchingUsersReplacesSession(t *testing.T) {
	svc, _ := newTestService()

	var changes []string
	svc.OnChange(func(userID string, authenticated bool) {
		changes = append(changes, userID)
	})

	if _, _, err := svc.Login(context.Background(), "demo@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	other, _, err := svc.Signup(context.Background(), "b@example.com", "pw", "B")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	user, ok := svc.Current()
	if !ok || user.ID != other.ID {
		t.Fatalf("Current = %+v; want the signed-up user", user)
	}
	if len(changes) != 2 || changes[0] != "1" || changes[1] != other.ID {
		t.Errorf("change sequence = %v; want [1 %s]", changes, other.ID)
	}
}
