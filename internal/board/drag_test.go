package board

import (
	"testing"

	"quadro/internal/models"
)

func makeColumns(titles ...string) []*models.Column {
	columns := make([]*models.Column, len(titles))
	for i, title := range titles {
		columns[i] = &models.Column{
			ID:         title,
			Title:      title,
			OrderIndex: models.FirstOrderIndex + i,
		}
	}
	return columns
}

func TestReorderColumnsDragRight(t *testing.T) {
	// [A B C D], drag A onto C: A lands just past C -> [B C A D].
	columns := makeColumns("A", "B", "C", "D")

	updates := ReorderColumns(columns, "A", "C")

	want := map[string]int{"B": 1, "C": 2, "A": 3}
	if len(updates) != len(want) {
		t.Fatalf("Expected %d updates, got %d: %+v", len(want), len(updates), updates)
	}
	for _, u := range updates {
		if want[u.ColumnID] != u.OrderIndex {
			t.Errorf("Column %q: expected index %d, got %d", u.ColumnID, want[u.ColumnID], u.OrderIndex)
		}
	}
}

func TestReorderColumnsDragLeft(t *testing.T) {
	// [A B C D], drag D onto B: D lands on B's slot -> [A D B C].
	columns := makeColumns("A", "B", "C", "D")

	updates := ReorderColumns(columns, "D", "B")

	want := map[string]int{"D": 2, "B": 3, "C": 4}
	if len(updates) != len(want) {
		t.Fatalf("Expected %d updates, got %d: %+v", len(want), len(updates), updates)
	}
	for _, u := range updates {
		if want[u.ColumnID] != u.OrderIndex {
			t.Errorf("Column %q: expected index %d, got %d", u.ColumnID, want[u.ColumnID], u.OrderIndex)
		}
	}
}

func TestReorderColumnsAdjacentSwap(t *testing.T) {
	columns := makeColumns("A", "B")

	updates := ReorderColumns(columns, "B", "A")

	want := map[string]int{"B": 1, "A": 2}
	if len(updates) != len(want) {
		t.Fatalf("Expected %d updates, got %d: %+v", len(want), len(updates), updates)
	}
	for _, u := range updates {
		if want[u.ColumnID] != u.OrderIndex {
			t.Errorf("Column %q: expected index %d, got %d", u.ColumnID, want[u.ColumnID], u.OrderIndex)
		}
	}
}

func TestReorderColumnsSameTarget(t *testing.T) {
	columns := makeColumns("A", "B", "C")

	if updates := ReorderColumns(columns, "B", "B"); updates != nil {
		t.Errorf("Expected no updates for a drop on itself, got %+v", updates)
	}
}

func TestReorderColumnsUnknownIDs(t *testing.T) {
	columns := makeColumns("A", "B", "C")

	if updates := ReorderColumns(columns, "ghost", "B"); updates != nil {
		t.Errorf("Expected no updates for unknown dragged ID, got %+v", updates)
	}
	if updates := ReorderColumns(columns, "A", "ghost"); updates != nil {
		t.Errorf("Expected no updates for unknown target ID, got %+v", updates)
	}
}

func TestReorderColumnsDoesNotMutateInput(t *testing.T) {
	columns := makeColumns("A", "B", "C", "D")

	ReorderColumns(columns, "A", "D")

	for i, title := range []string{"A", "B", "C", "D"} {
		if columns[i].Title != title {
			t.Errorf("Input slice mutated at %d: got %q", i, columns[i].Title)
		}
		if columns[i].OrderIndex != models.FirstOrderIndex+i {
			t.Errorf("Input order index mutated at %d: got %d", i, columns[i].OrderIndex)
		}
	}
}

func TestDragPayloadEmpty(t *testing.T) {
	if !(DragPayload{}).Empty() {
		t.Error("Expected zero payload to be empty")
	}
	if (DragPayload{Kind: DragTask, ID: "t1"}).Empty() {
		t.Error("Expected populated payload to be non-empty")
	}
}
