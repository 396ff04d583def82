package store

import (
	"context"
	"fmt"

	"github.com/blink-new/listalia/internal/models"
)

// CreateListParams carries the caller-supplied fields of a new list.
// ID, timestamps, owner, and collaborators are store-assigned.
type CreateListParams struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        models.ListType `json:"type"`
	Color       string          `json:"color"`
	Icon        string          `json:"icon"`
	Items       []models.Item   `json:"items"`
	FolderID    string          `json:"folderId"`
}

// ListPatch is a partial update of a list. Nil fields are left
// untouched. ID, owner, and creation time can never be patched; items
// are mutated only through the item operations.
type ListPatch struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Type          *models.ListType `json:"type"`
	Color         *string          `json:"color"`
	Icon          *string          `json:"icon"`
	FolderID      *string          `json:"folderId"`
	Collaborators *[]string        `json:"collaborators"`
}

// CreateList appends a new list owned by the attached user and writes
// through. The created list is returned.
func (s *Store) CreateList(ctx context.Context, p CreateListParams) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.List{}, ErrUnauthenticated
	}

	now := s.timestamp()
	l := models.List{
		ID:            s.newID(),
		Title:         p.Title,
		Description:   p.Description,
		Type:          p.Type,
		Color:         p.Color,
		Icon:          p.Icon,
		Items:         append([]models.Item{}, p.Items...),
		FolderID:      p.FolderID,
		Collaborators: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
		UserID:        s.userID,
	}

	s.lists = append(s.lists, l)
	if err := s.persistLists(ctx); err != nil {
		return copyList(l), err
	}
	return copyList(l), nil
}

// UpdateList merges patch over the list with the given id, refreshes
// UpdatedAt, and writes through. Returns ErrNotFound if no such list
// exists.
func (s *Store) UpdateList(ctx context.Context, id string, patch ListPatch) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.List{}, ErrUnauthenticated
	}

	i := s.listIndex(id)
	if i < 0 {
		return models.List{}, fmt.Errorf("list %s: %w", id, ErrNotFound)
	}

	l := &s.lists[i]
	if patch.Title != nil {
		l.Title = *patch.Title
	}
	if patch.Description != nil {
		l.Description = *patch.Description
	}
	if patch.Type != nil {
		l.Type = *patch.Type
	}
	if patch.Color != nil {
		l.Color = *patch.Color
	}
	if patch.Icon != nil {
		l.Icon = *patch.Icon
	}
	if patch.FolderID != nil {
		l.FolderID = *patch.FolderID
	}
	if patch.Collaborators != nil {
		l.Collaborators = append([]string{}, *patch.Collaborators...)
	}
	l.UpdatedAt = s.timestamp()

	if err := s.persistLists(ctx); err != nil {
		return copyList(*l), err
	}
	return copyList(*l), nil
}

// DeleteList removes the list and all of its items as a unit and writes
// through. Deleting an absent id is a no-op.
func (s *Store) DeleteList(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return ErrUnauthenticated
	}

	kept := s.lists[:0:0]
	for _, l := range s.lists {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.lists = kept

	return s.persistLists(ctx)
}

// GetList looks up a list in the current snapshot. The second return
// value reports whether it was found.
func (s *Store) GetList(id string) (models.List, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listIndex(id)
	if i < 0 {
		return models.List{}, false
	}
	return copyList(s.lists[i]), true
}

// listIndex returns the index of the list with the given id, or -1.
// Callers must hold mu.
func (s *Store) listIndex(id string) int {
	for i, l := range s.lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}
