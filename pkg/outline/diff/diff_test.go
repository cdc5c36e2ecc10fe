package diff

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"tableflip.dev/outline/pkg/outline/viewmodel"
)

func rows(ids ...string) []viewmodel.Item {
	items := make([]viewmodel.Item, len(ids))
	for i, id := range ids {
		items[i] = viewmodel.Item{ID: id, String: "INT. " + strings.ToUpper(id)}
	}
	return items
}

func TestComputeUnchangedIsEmpty(t *testing.T) {
	cs, err := Compute(rows("a", "b", "c"), rows("a", "b", "c"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !cs.Empty() {
		t.Fatalf("expected empty changeset, got %s", cs)
	}
	if cs.String() != "no changes" {
		t.Fatalf("unexpected description %q", cs.String())
	}
}

func TestComputeRemoval(t *testing.T) {
	cs, err := Compute(rows("a", "b", "c"), rows("a", "c"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := Changeset{Removes: []Op{{ID: "b", Index: 1}}}
	if !reflect.DeepEqual(cs, want) {
		t.Fatalf("expected %+v, got %+v", want, cs)
	}
}

func TestComputeAppend(t *testing.T) {
	cs, err := Compute(rows("a", "b"), rows("a", "b", "d"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := Changeset{Inserts: []Op{{ID: "d", Index: 2}}}
	if !reflect.DeepEqual(cs, want) {
		t.Fatalf("expected %+v, got %+v", want, cs)
	}
}

func TestComputeReloadOnContentChange(t *testing.T) {
	next := rows("a", "b")
	next[1].String = "EXT. B - NIGHT"
	next[0].Range.Location = 120

	cs, err := Compute(rows("a", "b"), next)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := Changeset{Reloads: []Op{{ID: "b", Index: 1}}}
	if !reflect.DeepEqual(cs, want) {
		t.Fatalf("expected %+v, got %+v", want, cs)
	}
}

func TestComputeEmptyEdges(t *testing.T) {
	cs, err := Compute(nil, rows("a", "b"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(cs.Inserts) != 2 || cs.Len() != 2 {
		t.Fatalf("expected everything inserted, got %+v", cs)
	}

	cs, err = Compute(rows("a", "b"), nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(cs.Removes) != 2 || cs.Len() != 2 {
		t.Fatalf("expected everything removed, got %+v", cs)
	}

	cs, err = Compute(nil, nil)
	if err != nil || !cs.Empty() {
		t.Fatalf("expected empty changeset, got %+v (%v)", cs, err)
	}
}

func TestComputeMoveIsNotRemoveInsert(t *testing.T) {
	cs, err := Compute(rows("a", "b", "c", "d"), rows("a", "c", "d", "b"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(cs.Removes) != 0 || len(cs.Inserts) != 0 || len(cs.Reloads) != 0 {
		t.Fatalf("expected only moves, got %+v", cs)
	}
	want := []Move{{ID: "b", From: 1, To: 3}}
	if !reflect.DeepEqual(cs.Moves, want) {
		t.Fatalf("expected %+v, got %+v", want, cs.Moves)
	}
}

func TestComputeMovedAndChanged(t *testing.T) {
	next := rows("b", "a")
	next[1].Color = "green"
	cs, err := Compute(rows("a", "b"), next)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(cs.Moves) != 1 || len(cs.Reloads) != 1 {
		t.Fatalf("expected one move and one reload, got %+v", cs)
	}
	if cs.Reloads[0].ID != "a" || cs.Reloads[0].Index != 1 {
		t.Fatalf("unexpected reload %+v", cs.Reloads[0])
	}
}

func TestComputeDuplicateIDs(t *testing.T) {
	if _, err := Compute(rows("a", "a"), rows("a")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected duplicate error for previous, got %v", err)
	}
	if _, err := Compute(rows("a"), rows("b", "b")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected duplicate error for next, got %v", err)
	}
}

func TestApplyReproducesNextOrder(t *testing.T) {
	tests := []struct {
		name string
		prev []string
		next []string
	}{
		{name: "identity", prev: []string{"a", "b", "c"}, next: []string{"a", "b", "c"}},
		{name: "reverse", prev: []string{"a", "b", "c", "d"}, next: []string{"d", "c", "b", "a"}},
		{name: "remove and insert", prev: []string{"a", "b", "c"}, next: []string{"x", "c", "a", "y"}},
		{name: "rotate", prev: []string{"a", "b", "c", "d", "e"}, next: []string{"c", "d", "e", "a", "b"}},
		{name: "clear", prev: []string{"a", "b"}, next: nil},
		{name: "fill", prev: nil, next: []string{"a", "b"}},
		{name: "interleave", prev: []string{"a", "c", "e"}, next: []string{"e", "b", "a", "d", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := Compute(rows(tt.prev...), rows(tt.next...))
			if err != nil {
				t.Fatalf("compute: %v", err)
			}
			got, err := Apply(tt.prev, cs)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if len(got) != len(tt.next) {
				t.Fatalf("expected %d rows, got %v", len(tt.next), got)
			}
			for i := range got {
				if got[i] != tt.next[i] {
					t.Fatalf("expected %v, got %v", tt.next, got)
				}
			}
		})
	}
}

func TestComputeReverseUsesMinimalMoves(t *testing.T) {
	cs, err := Compute(rows("a", "b", "c", "d"), rows("d", "c", "b", "a"))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(cs.Moves) != 3 {
		t.Fatalf("expected 3 moves for a reversal of 4, got %d", len(cs.Moves))
	}
}

func TestApplyRejectsStaleChangeset(t *testing.T) {
	cs := Changeset{Removes: []Op{{ID: "b", Index: 0}}}
	if _, err := Apply([]string{"a", "b"}, cs); err == nil {
		t.Fatalf("expected error for out-of-step removal")
	}
}

func TestIDs(t *testing.T) {
	got := IDs(rows("a", "b"))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected ids %v", got)
	}
}
