package store

import "github.com/blink-new/listalia/internal/models"

// seedData builds the first-run demonstration working set for a new
// user: a shopping list, a task list nested in a "Work" folder, and a
// chore list with assignees. Item orders are dense from the start.
func seedData(userID, ts string, newID func() string) ([]models.List, []models.Folder) {
	workFolder := models.Folder{
		ID:        newID(),
		Name:      "Work",
		Color:     "#10b981",
		CreatedAt: ts,
		UserID:    userID,
	}

	lists := []models.List{
		{
			ID:          newID(),
			Title:       "Grocery Shopping",
			Description: "Things to buy this weekend",
			Type:        models.ShoppingList,
			Color:       "#4f46e5",
			Icon:        "ShoppingCart",
			Items: []models.Item{
				{ID: newID(), Text: "Milk", CreatedAt: ts, Order: 0},
				{ID: newID(), Text: "Eggs", Completed: true, CreatedAt: ts, Order: 1},
				{ID: newID(), Text: "Bread", CreatedAt: ts, Order: 2},
			},
			Collaborators: []string{},
			CreatedAt:     ts,
			UpdatedAt:     ts,
			UserID:        userID,
		},
		{
			ID:          newID(),
			Title:       "Work Tasks",
			Description: "Things to do for work",
			Type:        models.TaskList,
			Color:       "#10b981",
			Icon:        "Briefcase",
			Items: []models.Item{
				{ID: newID(), Text: "Finish report", CreatedAt: ts, Order: 0},
				{ID: newID(), Text: "Call client", CreatedAt: ts, Order: 1},
			},
			FolderID:      workFolder.ID,
			Collaborators: []string{},
			CreatedAt:     ts,
			UpdatedAt:     ts,
			UserID:        userID,
		},
		{
			ID:          newID(),
			Title:       "Home Chores",
			Description: "Things to do around the house",
			Type:        models.ChoreList,
			Color:       "#f59e0b",
			Icon:        "Home",
			Items: []models.Item{
				{ID: newID(), Text: "Clean bathroom", AssignedTo: "John", CreatedAt: ts, Order: 0},
				{ID: newID(), Text: "Vacuum living room", Completed: true, AssignedTo: "Sarah", CreatedAt: ts, Order: 1},
			},
			Collaborators: []string{"family"},
			CreatedAt:     ts,
			UpdatedAt:     ts,
			UserID:        userID,
		},
	}

	return lists, []models.Folder{workFolder}
}
