package models

import "time"

// Priority represents a task priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether the priority is one of the known enumerated values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work. A task belongs to exactly one column at a time;
// moving it between columns is a single column-id update. Task lists are
// ordered by creation time descending, there is no manual rank within a
// column.
type Task struct {
	ID          string
	Title       string
	Description string
	Meta        string // free-text goal field
	Priority    Priority
	Deadline    string // ISO-8601 date
	ColumnID    string
	GroupID     string
	CreatedBy   string
	AssignedTo  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
