// Package board holds the drag-and-drop interaction logic for the kanban
// board: payload tagging and client-side column reordering.
package board

import "quadro/internal/models"

// DragKind discriminates what is being dragged. A single tagged payload
// replaces the two-separate-keys scheme where a drop handler had to probe
// which key was populated.
type DragKind string

const (
	DragTask   DragKind = "task"
	DragColumn DragKind = "column"
)

// DragPayload is attached when a drag starts and read back on drop.
type DragPayload struct {
	Kind DragKind
	ID   string
}

// Empty reports whether the payload carries nothing useful.
func (p DragPayload) Empty() bool {
	return p.ID == ""
}

// OrderUpdate is one column whose order index must change after a reorder.
type OrderUpdate struct {
	ColumnID   string
	Title      string
	OrderIndex int
}

// ReorderColumns computes the order-index updates needed to move the dragged
// column to the target column's position. The column list is spliced in
// memory (remove dragged, insert at target index) and every column whose
// resulting position differs from its stored order index is reported.
// Returns nil when dragged and target are the same or either is missing.
func ReorderColumns(columns []*models.Column, draggedID, targetID string) []OrderUpdate {
	if draggedID == "" || draggedID == targetID {
		return nil
	}

	draggedIdx, targetIdx := -1, -1
	for i, col := range columns {
		switch col.ID {
		case draggedID:
			draggedIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if draggedIdx < 0 || targetIdx < 0 {
		return nil
	}

	reordered := make([]*models.Column, 0, len(columns))
	reordered = append(reordered, columns[:draggedIdx]...)
	reordered = append(reordered, columns[draggedIdx+1:]...)

	// The insertion point is the target's index in the ORIGINAL list, so a
	// column dragged rightward lands just past the target and one dragged
	// leftward lands right on it.
	insertAt := targetIdx
	if insertAt > len(reordered) {
		insertAt = len(reordered)
	}
	reordered = append(reordered[:insertAt], append([]*models.Column{columns[draggedIdx]}, reordered[insertAt:]...)...)

	var updates []OrderUpdate
	for i, col := range reordered {
		want := models.FirstOrderIndex + i
		if col.OrderIndex != want {
			updates = append(updates, OrderUpdate{
				ColumnID:   col.ID,
				Title:      col.Title,
				OrderIndex: want,
			})
		}
	}
	return updates
}
