package store

import (
	"context"
	"fmt"

	"github.com/blink-new/listalia/internal/models"
)

// AddItemParams carries the caller-supplied fields of a new item.
// ID, CreatedAt, and Order are store-assigned.
type AddItemParams struct {
	Text       string `json:"text"`
	Completed  bool   `json:"completed"`
	Notes      string `json:"notes"`
	Image      string `json:"image"`
	AssignedTo string `json:"assignedTo"`
}

// ItemPatch is a partial update of an item. Nil fields are left
// untouched. Order is accepted as supplied; density is only re-derived
// by DeleteItem and ReorderItems.
type ItemPatch struct {
	Text       *string `json:"text"`
	Completed  *bool   `json:"completed"`
	Notes      *string `json:"notes"`
	Image      *string `json:"image"`
	AssignedTo *string `json:"assignedTo"`
	Order      *int    `json:"order"`
}

// AddItem appends a new item to the end of the list (Order = current
// item count), refreshes the list's UpdatedAt, and writes through.
// Returns ErrNotFound if the list does not exist.
func (s *Store) AddItem(ctx context.Context, listID string, p AddItemParams) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.Item{}, ErrUnauthenticated
	}

	i := s.listIndex(listID)
	if i < 0 {
		return models.Item{}, fmt.Errorf("list %s: %w", listID, ErrNotFound)
	}

	l := &s.lists[i]
	item := models.Item{
		ID:         s.newID(),
		Text:       p.Text,
		Completed:  p.Completed,
		Notes:      p.Notes,
		Image:      p.Image,
		AssignedTo: p.AssignedTo,
		CreatedAt:  s.timestamp(),
		Order:      len(l.Items),
	}

	l.Items = append(l.Items, item)
	l.UpdatedAt = s.timestamp()

	if err := s.persistLists(ctx); err != nil {
		return item, err
	}
	return item, nil
}

// UpdateItem merges patch over the item, refreshes the list's
// UpdatedAt, and writes through. Returns ErrNotFound if either the list
// or the item within it is missing.
func (s *Store) UpdateItem(ctx context.Context, listID, itemID string, patch ItemPatch) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.Item{}, ErrUnauthenticated
	}

	li := s.listIndex(listID)
	if li < 0 {
		return models.Item{}, fmt.Errorf("list %s: %w", listID, ErrNotFound)
	}
	l := &s.lists[li]

	ii := itemIndex(l.Items, itemID)
	if ii < 0 {
		return models.Item{}, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}

	item := &l.Items[ii]
	if patch.Text != nil {
		item.Text = *patch.Text
	}
	if patch.Completed != nil {
		item.Completed = *patch.Completed
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	if patch.AssignedTo != nil {
		item.AssignedTo = *patch.AssignedTo
	}
	if patch.Order != nil {
		item.Order = *patch.Order
	}
	l.UpdatedAt = s.timestamp()

	if err := s.persistLists(ctx); err != nil {
		return *item, err
	}
	return *item, nil
}

// DeleteItem removes the item and reindexes the survivors to a dense
// 0..n-1 sequence preserving their relative order, refreshes the list's
// UpdatedAt, and writes through. Returns ErrNotFound if the list is
// missing; an absent item id is a no-op.
func (s *Store) DeleteItem(ctx context.Context, listID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return ErrUnauthenticated
	}

	li := s.listIndex(listID)
	if li < 0 {
		return fmt.Errorf("list %s: %w", listID, ErrNotFound)
	}
	l := &s.lists[li]

	if itemIndex(l.Items, itemID) < 0 {
		return nil
	}

	kept := make([]models.Item, 0, len(l.Items)-1)
	for _, it := range l.Items {
		if it.ID != itemID {
			it.Order = len(kept)
			kept = append(kept, it)
		}
	}
	l.Items = kept
	l.UpdatedAt = s.timestamp()

	return s.persistLists(ctx)
}

// ReorderItems assigns Order = index for each id at its position in
// orderedItemIDs and writes through. The id sequence must contain every
// current item of the list exactly once; otherwise the whole operation
// fails and no order changes: an unknown id fails with ErrNotFound, an
// incomplete or duplicated sequence with ErrInvalidReorder.
func (s *Store) ReorderItems(ctx context.Context, listID string, orderedItemIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return ErrUnauthenticated
	}

	li := s.listIndex(listID)
	if li < 0 {
		return fmt.Errorf("list %s: %w", listID, ErrNotFound)
	}
	l := &s.lists[li]

	byID := make(map[string]models.Item, len(l.Items))
	for _, it := range l.Items {
		byID[it.ID] = it
	}

	reordered := make([]models.Item, 0, len(orderedItemIDs))
	seen := make(map[string]bool, len(orderedItemIDs))
	for idx, id := range orderedItemIDs {
		it, ok := byID[id]
		if !ok {
			return fmt.Errorf("item %s: %w", id, ErrNotFound)
		}
		if seen[id] {
			return fmt.Errorf("item %s repeated: %w", id, ErrInvalidReorder)
		}
		seen[id] = true
		it.Order = idx
		reordered = append(reordered, it)
	}
	if len(reordered) != len(l.Items) {
		return fmt.Errorf("%d of %d items supplied: %w", len(reordered), len(l.Items), ErrInvalidReorder)
	}

	l.Items = reordered
	l.UpdatedAt = s.timestamp()

	return s.persistLists(ctx)
}

// itemIndex returns the index of the item with the given id, or -1.
func itemIndex(items []models.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
