// Package store implements the entity store: the authoritative in-memory
// copy of one user's lists, items, and folders, with synchronous
// write-through to a persistence adapter.
//
// The store is single-tenant. Attach binds it to a user and loads (or
// seeds) that user's working set; Detach makes it inert. Every mutation
// computes its full next state under one mutex from the current snapshot
// and commits it as one visible step, then mirrors it to storage. A
// failed mirror write surfaces as *PersistenceError while the in-memory
// state stays advanced.
package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blink-new/listalia/internal/blob"
	"github.com/blink-new/listalia/internal/models"
)

// Store holds the working set of the currently attached user.
type Store struct {
	mu    sync.Mutex
	blobs blob.Store
	log   *zap.Logger

	// now and newID are swapped out in tests.
	now   func() time.Time
	newID func() string

	userID  string
	loading bool
	lists   []models.List
	folders []models.Folder
}

// Snapshot is the read-only view handed to consumers. Slices are deep
// copies; mutating them never affects the store.
type Snapshot struct {
	Lists     []models.List   `json:"lists"`
	Folders   []models.Folder `json:"folders"`
	IsLoading bool            `json:"isLoading"`
}

// New constructs a Store over the given persistence adapter.
// The store starts detached: reads are empty, mutations fail with
// ErrUnauthenticated until Attach.
func New(blobs blob.Store, log *zap.Logger) *Store {
	return &Store{
		blobs: blobs,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Attach binds the store to userID, discarding any previous working set,
// and loads that user's lists and folders from storage. A user with no
// stored lists gets the seed set, written through once. Load failures
// are logged and leave the store attached but empty; repeated loads for
// the same user without intervening mutation do not alter the stored
// blobs.
func (s *Store) Attach(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = userID
	s.loading = true
	s.lists = nil
	s.folders = nil

	s.load(ctx, userID)
	s.loading = false
}

// Detach clears the working set; the store becomes inert until the next
// Attach.
func (s *Store) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = ""
	s.loading = false
	s.lists = nil
	s.folders = nil
}

// Snapshot returns a deep-copied view of the current working set.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Lists:     copyLists(s.lists),
		Folders:   copyFolders(s.folders),
		IsLoading: s.loading,
	}
}

// load resolves the working set for userID. Callers must hold mu.
func (s *Store) load(ctx context.Context, userID string) {
	listsRaw, err := s.blobs.Get(ctx, blob.ListsKey(userID))
	switch {
	case err == blob.ErrNoSuchKey:
		s.seed(ctx, userID)
		return
	case err != nil:
		s.log.Error("load lists", zap.String("user", userID), zap.Error(err))
		return
	}

	var lists []models.List
	if err := json.Unmarshal(listsRaw, &lists); err != nil {
		s.log.Error("parse lists", zap.String("user", userID), zap.Error(err))
		return
	}

	var folders []models.Folder
	foldersRaw, err := s.blobs.Get(ctx, blob.FoldersKey(userID))
	if err != nil && err != blob.ErrNoSuchKey {
		s.log.Error("load folders", zap.String("user", userID), zap.Error(err))
		return
	}
	if err == nil {
		if err := json.Unmarshal(foldersRaw, &folders); err != nil {
			s.log.Error("parse folders", zap.String("user", userID), zap.Error(err))
			return
		}
	}

	s.lists = ownedLists(lists, userID)
	s.folders = ownedFolders(folders, userID)
	for i := range s.lists {
		sortItems(s.lists[i].Items)
	}
}

// seed installs the first-run demonstration data and writes it through.
// Callers must hold mu.
func (s *Store) seed(ctx context.Context, userID string) {
	s.lists, s.folders = seedData(userID, s.timestamp(), s.newID)

	if err := s.persistLists(ctx); err != nil {
		s.log.Error("persist seed lists", zap.Error(err))
	}
	if err := s.persistFolders(ctx); err != nil {
		s.log.Error("persist seed folders", zap.Error(err))
	}
}

// timestamp returns the current time in the stored RFC 3339 form.
func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// persistLists mirrors the in-memory lists to storage.
// Callers must hold mu.
func (s *Store) persistLists(ctx context.Context) error {
	return s.persist(ctx, blob.ListsKey(s.userID), s.lists)
}

// persistFolders mirrors the in-memory folders to storage.
// Callers must hold mu.
func (s *Store) persistFolders(ctx context.Context) error {
	return s.persist(ctx, blob.FoldersKey(s.userID), s.folders)
}

func (s *Store) persist(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err == nil {
		err = s.blobs.Put(ctx, key, data)
	}
	if err != nil {
		perr := &PersistenceError{Key: key, Err: err}
		s.log.Error("write-through failed", zap.String("key", key), zap.Error(err))
		return perr
	}
	return nil
}

// ownedLists drops entries not owned by userID.
func ownedLists(lists []models.List, userID string) []models.List {
	owned := make([]models.List, 0, len(lists))
	for _, l := range lists {
		if l.UserID == userID {
			owned = append(owned, l)
		}
	}
	return owned
}

// ownedFolders drops entries not owned by userID.
func ownedFolders(folders []models.Folder, userID string) []models.Folder {
	owned := make([]models.Folder, 0, len(folders))
	for _, f := range folders {
		if f.UserID == userID {
			owned = append(owned, f)
		}
	}
	return owned
}

func sortItems(items []models.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
}

func copyList(l models.List) models.List {
	l.Items = append([]models.Item(nil), l.Items...)
	l.Collaborators = append([]string(nil), l.Collaborators...)
	return l
}

func copyLists(lists []models.List) []models.List {
	out := make([]models.List, len(lists))
	for i, l := range lists {
		out[i] = copyList(l)
	}
	return out
}

func copyFolders(folders []models.Folder) []models.Folder {
	return append([]models.Folder(nil), folders...)
}
