package store

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned by every mutating operation invoked
// while no user is attached.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrNotFound is returned when a referenced list, item, or folder does
// not exist in the current snapshot.
var ErrNotFound = errors.New("not found")

// ErrInvalidReorder is returned by ReorderItems when the supplied id
// sequence is not exactly the list's current item id set.
var ErrInvalidReorder = errors.New("reorder ids must cover the list exactly once")

// PersistenceError reports a failed write-through to the persistence
// adapter. The in-memory mutation has already been applied and is not
// rolled back; only its durability is in doubt.
type PersistenceError struct {
	// Key is the blob key whose write failed.
	Key string
	// Err is the underlying storage error.
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
