// Package blob provides the persistence adapter: a durable key to
// JSON-blob mapping, scoped per user through the key namespace.
package blob

import (
	"context"
	"errors"
)

// ErrNoSuchKey is returned by Get when the key has never been written.
var ErrNoSuchKey = errors.New("blob: no such key")

// Store defines the persistence operations needed by the entity,
// preferences, and session stores. One JSON document per key.
type Store interface {
	// Get returns the blob stored under key, or ErrNoSuchKey.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put durably stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// SessionKey stores the persisted signed-in user, if any.
const SessionKey = "user"

// ListsKey returns the key holding all lists owned by userID.
func ListsKey(userID string) string { return "lists:" + userID }

// FoldersKey returns the key holding all folders owned by userID.
func FoldersKey(userID string) string { return "folders:" + userID }

// PreferencesKey returns the key holding the preferences of userID.
func PreferencesKey(userID string) string { return "preferences:" + userID }
