// Package models defines the core data structures for users, lists,
// list items, folders, and per-user preferences.
package models

// User represents an application user profile.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Email is the address the user signs in with.
	Email string `json:"email"`
	// Name is the display name of the user.
	Name string `json:"name"`
	// Avatar is an optional URL of the user's avatar image.
	Avatar string `json:"avatar,omitempty"`
}

// Item is a single checkable entry belonging to exactly one List.
type Item struct {
	// ID is unique within the owning list only.
	ID string `json:"id"`
	// Text is the visible content of the entry.
	Text string `json:"text"`
	// Completed reports whether the entry has been checked off.
	Completed bool `json:"completed"`
	// Notes holds optional free-form details.
	Notes string `json:"notes,omitempty"`
	// Image is an optional image reference or URL.
	Image string `json:"image,omitempty"`
	// CreatedAt is the RFC 3339 creation timestamp, immutable once set.
	CreatedAt string `json:"createdAt"`
	// AssignedTo names who the entry is assigned to; meaningful for chore lists.
	AssignedTo string `json:"assignedTo,omitempty"`
	// Order is the zero-based dense rank of the entry within its list.
	Order int `json:"order"`
}

// List is a named, ordered collection of Items with a declared type.
type List struct {
	// ID is the unique identifier for the list.
	ID string `json:"id"`
	// Title is the visible name of the list.
	Title string `json:"title"`
	// Description holds optional free-form details.
	Description string `json:"description,omitempty"`
	// Type is one of the ListType constants.
	Type ListType `json:"type"`
	// Color is the accent color of the list.
	Color string `json:"color"`
	// Icon names the icon shown next to the list.
	Icon string `json:"icon"`
	// Items are the list's entries. Storage does not guarantee the stored
	// sequence; consumers must sort by Order.
	Items []Item `json:"items"`
	// FolderID is a weak reference to a Folder of the same owner, or empty.
	FolderID string `json:"folderId,omitempty"`
	// Collaborators are opaque identifiers; stored but otherwise unused.
	Collaborators []string `json:"collaborators"`
	// CreatedAt is the RFC 3339 creation timestamp, immutable once set.
	CreatedAt string `json:"createdAt"`
	// UpdatedAt is refreshed on every mutation of the list or its items.
	UpdatedAt string `json:"updatedAt"`
	// UserID is the owner of the list, immutable after creation.
	UserID string `json:"userId"`
}

// Folder is an optional, non-owning grouping label that Lists may reference.
type Folder struct {
	// ID is the unique identifier for the folder.
	ID string `json:"id"`
	// Name is the visible name of the folder.
	Name string `json:"name"`
	// Color is the accent color of the folder.
	Color string `json:"color"`
	// CreatedAt is the RFC 3339 creation timestamp, immutable once set.
	CreatedAt string `json:"createdAt"`
	// UserID is the owner of the folder, immutable after creation.
	UserID string `json:"userId"`
}

// ListType defines the set of valid list type identifiers.
type ListType string

const (
	// TaskList represents a generic to-do list.
	TaskList ListType = "task"
	// ShoppingList represents a shopping list.
	ShoppingList ListType = "shopping"
	// ChoreList represents a household chore list with assignees.
	ChoreList ListType = "chore"
)

// Preferences holds per-user UI and interaction settings.
type Preferences struct {
	// ViewMode is one of "row", "grid", "compact", "folders".
	ViewMode string `json:"viewMode"`
	// ShowCompleted toggles visibility of completed items.
	ShowCompleted bool `json:"showCompleted"`
	// ShowNotes toggles visibility of item notes.
	ShowNotes bool `json:"showNotes"`
	// ShowImages toggles visibility of item images.
	ShowImages bool `json:"showImages"`
	// HighContrast enables the high-contrast theme.
	HighContrast bool `json:"highContrast"`
	// ShowProgressBars toggles list progress bars.
	ShowProgressBars bool `json:"showProgressBars"`
	// ProgressBarStyle is one of "minimal", "detailed", "checklist".
	ProgressBarStyle string `json:"progressBarStyle"`
	// CompletionMode is one of "tap", "double-tap".
	CompletionMode string `json:"completionMode"`
	// ShowEditButtons toggles inline edit buttons.
	ShowEditButtons bool `json:"showEditButtons"`
	// EnableSwipeActions toggles swipe gestures on items.
	EnableSwipeActions bool `json:"enableSwipeActions"`
}
