package store

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/blink-new/listalia/internal/models"
)

// FolderPatch is a partial update of a folder. Nil fields are left
// untouched.
type FolderPatch struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// CreateFolder appends a new folder owned by the attached user and
// writes through.
func (s *Store) CreateFolder(ctx context.Context, name, color string) (models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.Folder{}, ErrUnauthenticated
	}

	f := models.Folder{
		ID:        s.newID(),
		Name:      name,
		Color:     color,
		CreatedAt: s.timestamp(),
		UserID:    s.userID,
	}

	s.folders = append(s.folders, f)
	if err := s.persistFolders(ctx); err != nil {
		return f, err
	}
	return f, nil
}

// UpdateFolder merges patch over the folder with the given id and
// writes through. Returns ErrNotFound if no such folder exists.
func (s *Store) UpdateFolder(ctx context.Context, id string, patch FolderPatch) (models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.Folder{}, ErrUnauthenticated
	}

	i := s.folderIndex(id)
	if i < 0 {
		return models.Folder{}, fmt.Errorf("folder %s: %w", id, ErrNotFound)
	}

	f := &s.folders[i]
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Color != nil {
		f.Color = *patch.Color
	}

	if err := s.persistFolders(ctx); err != nil {
		return *f, err
	}
	return *f, nil
}

// DeleteFolder removes the folder and, in the same visible step, clears
// FolderID on every list that referenced it. The lists themselves are
// never deleted. Deleting an absent id is a no-op. Both affected blobs
// are written through; their errors are combined.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return ErrUnauthenticated
	}

	listsTouched := false
	for i := range s.lists {
		if s.lists[i].FolderID == id {
			s.lists[i].FolderID = ""
			s.lists[i].UpdatedAt = s.timestamp()
			listsTouched = true
		}
	}

	kept := s.folders[:0:0]
	for _, f := range s.folders {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.folders = kept

	err := s.persistFolders(ctx)
	if listsTouched {
		err = multierr.Combine(err, s.persistLists(ctx))
	}
	return err
}

// folderIndex returns the index of the folder with the given id, or -1.
// Callers must hold mu.
func (s *Store) folderIndex(id string) int {
	for i, f := range s.folders {
		if f.ID == id {
			return i
		}
	}
	return -1
}
