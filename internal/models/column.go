package models

import "time"

// Column represents a kanban board lane (e.g., "To Do", "In Progress", "Done").
// OrderIndex determines left-to-right display order within a group; ties are
// broken by insertion order.
type Column struct {
	ID         string
	Title      string
	GroupID    string
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Default columns created alongside every new group.
var DefaultColumnTitles = [3]string{"To Do", "In Progress", "Done"}

// FirstOrderIndex is the order index assigned to the first column of a group.
const FirstOrderIndex = 1
