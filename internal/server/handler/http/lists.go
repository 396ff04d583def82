package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blink-new/listalia/internal/models"
	"github.com/blink-new/listalia/internal/store"
)

// ListsService defines the entity-store operations required by the
// HTTP handlers.
type ListsService interface {
	Snapshot() store.Snapshot
	CreateList(ctx context.Context, p store.CreateListParams) (models.List, error)
	UpdateList(ctx context.Context, id string, patch store.ListPatch) (models.List, error)
	DeleteList(ctx context.Context, id string) error
	GetList(id string) (models.List, bool)
	CreateFolder(ctx context.Context, name, color string) (models.Folder, error)
	UpdateFolder(ctx context.Context, id string, patch store.FolderPatch) (models.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
	AddItem(ctx context.Context, listID string, p store.AddItemParams) (models.Item, error)
	UpdateItem(ctx context.Context, listID, itemID string, patch store.ItemPatch) (models.Item, error)
	DeleteItem(ctx context.Context, listID, itemID string) error
	ReorderItems(ctx context.Context, listID string, orderedItemIDs []string) error
}

// ListsHandler handles HTTP requests against the entity store.
type ListsHandler struct {
	// Store performs the underlying entity operations.
	Store ListsService
}

// State handles GET /api/state: the reactive view the presentation
// layer renders from.
func (h *ListsHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Store.Snapshot())
}

// CreateList handles POST /api/lists.
func (h *ListsHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var p store.CreateListParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	list, err := h.Store.CreateList(r.Context(), p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, list)
}

// GetList handles GET /api/lists/{listID}.
func (h *ListsHandler) GetList(w http.ResponseWriter, r *http.Request) {
	list, ok := h.Store.GetList(chi.URLParam(r, "listID"))
	if !ok {
		http.Error(w, "list not found", http.StatusNotFound)
		return
	}
	writeJSON(w, list)
}

// UpdateList handles PATCH /api/lists/{listID}.
func (h *ListsHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	var patch store.ListPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	list, err := h.Store.UpdateList(r.Context(), chi.URLParam(r, "listID"), patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, list)
}

// DeleteList handles DELETE /api/lists/{listID}.
func (h *ListsHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteList(r.Context(), chi.URLParam(r, "listID")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// folderRequest represents the JSON payload for folder creation.
type folderRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CreateFolder handles POST /api/folders.
func (h *ListsHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	folder, err := h.Store.CreateFolder(r.Context(), req.Name, req.Color)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, folder)
}

// UpdateFolder handles PATCH /api/folders/{folderID}.
func (h *ListsHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	var patch store.FolderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	folder, err := h.Store.UpdateFolder(r.Context(), chi.URLParam(r, "folderID"), patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, folder)
}

// DeleteFolder handles DELETE /api/folders/{folderID}.
func (h *ListsHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteFolder(r.Context(), chi.URLParam(r, "folderID")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/lists/{listID}/items.
func (h *ListsHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var p store.AddItemParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	item, err := h.Store.AddItem(r.Context(), chi.URLParam(r, "listID"), p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, item)
}

// UpdateItem handles PATCH /api/lists/{listID}/items/{itemID}.
func (h *ListsHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var patch store.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	item, err := h.Store.UpdateItem(r.Context(), chi.URLParam(r, "listID"), chi.URLParam(r, "itemID"), patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, item)
}

// DeleteItem handles DELETE /api/lists/{listID}/items/{itemID}.
func (h *ListsHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteItem(r.Context(), chi.URLParam(r, "listID"), chi.URLParam(r, "itemID")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reorderRequest represents the JSON payload for item reordering: the
// complete item id set of the list in its new order.
type reorderRequest struct {
	ItemIDs []string `json:"itemIds"`
}

// ReorderItems handles PUT /api/lists/{listID}/items/order.
func (h *ListsHandler) ReorderItems(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.Store.ReorderItems(r.Context(), chi.URLParam(r, "listID"), req.ItemIDs); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeStoreError maps store errors onto HTTP status codes. A
// *store.PersistenceError reports 500 even though the in-memory
// mutation has been applied; the client is expected to surface it.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrUnauthenticated):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrInvalidReorder):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
