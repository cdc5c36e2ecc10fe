// Package diff reconciles two ordered, identity-keyed row snapshots into the
// batch of row operations a list view needs to go from one to the other.
package diff

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/outline/pkg/outline/viewmodel"
)

// ErrDuplicateID is returned when a snapshot repeats an identifier, which
// makes an identity diff ambiguous.
var ErrDuplicateID = errors.New("diff: duplicate row id")

// Op addresses one row. For removals Index is the row's position in the
// previous snapshot; for insertions and reloads it is the position in the next.
type Op struct {
	ID    string
	Index int
}

// Move relocates a surviving row from its previous position to its next one.
type Move struct {
	ID   string
	From int
	To   int
}

// Changeset is the batch of operations that turns the previous snapshot into
// the next one, following the usual batch-update convention of list views:
// removals and move sources use old indexes, insertions and move targets new
// ones.
type Changeset struct {
	Removes []Op
	Inserts []Op
	Reloads []Op
	Moves   []Move
}

// Empty reports whether nothing changed.
func (c Changeset) Empty() bool {
	return c.Len() == 0
}

// Len returns the total number of operations.
func (c Changeset) Len() int {
	return len(c.Removes) + len(c.Inserts) + len(c.Reloads) + len(c.Moves)
}

func (c Changeset) String() string {
	if c.Empty() {
		return "no changes"
	}
	parts := make([]string, 0, 4)
	if n := len(c.Removes); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	if n := len(c.Inserts); n > 0 {
		parts = append(parts, fmt.Sprintf("%d inserted", n))
	}
	if n := len(c.Moves); n > 0 {
		parts = append(parts, fmt.Sprintf("%d moved", n))
	}
	if n := len(c.Reloads); n > 0 {
		parts = append(parts, fmt.Sprintf("%d reloaded", n))
	}
	return strings.Join(parts, ", ")
}

// Compute diffs prev against next by item ID. Survivors whose content differs
// (per viewmodel.Item.Equal) are reloaded; survivors whose relative order
// changed are moved, using the fewest moves that restore next's order.
func Compute(prev, next []viewmodel.Item) (Changeset, error) {
	prevIdx, dup := viewmodel.Index(prev)
	if dup != "" {
		return Changeset{}, fmt.Errorf("%w %q in previous snapshot", ErrDuplicateID, dup)
	}
	nextIdx, dup := viewmodel.Index(next)
	if dup != "" {
		return Changeset{}, fmt.Errorf("%w %q in next snapshot", ErrDuplicateID, dup)
	}

	var cs Changeset
	for i, it := range prev {
		if _, ok := nextIdx[it.ID]; !ok {
			cs.Removes = append(cs.Removes, Op{ID: it.ID, Index: i})
		}
	}

	// Positions in prev of the surviving rows, listed in next order.
	survivors := make([]int, 0, len(next))
	survivorTo := make([]int, 0, len(next))
	for j, it := range next {
		i, ok := prevIdx[it.ID]
		if !ok {
			cs.Inserts = append(cs.Inserts, Op{ID: it.ID, Index: j})
			continue
		}
		if !prev[i].Equal(it) {
			cs.Reloads = append(cs.Reloads, Op{ID: it.ID, Index: j})
		}
		survivors = append(survivors, i)
		survivorTo = append(survivorTo, j)
	}

	stable := longestIncreasing(survivors)
	for k, from := range survivors {
		if stable[k] {
			continue
		}
		to := survivorTo[k]
		cs.Moves = append(cs.Moves, Move{ID: next[to].ID, From: from, To: to})
	}
	return cs, nil
}

// longestIncreasing marks the members of one longest strictly increasing
// subsequence of seq.
func longestIncreasing(seq []int) []bool {
	keep := make([]bool, len(seq))
	if len(seq) == 0 {
		return keep
	}
	// tails[l] is the index in seq of the smallest tail of an increasing
	// subsequence of length l+1.
	tails := make([]int, 0, len(seq))
	parent := make([]int, len(seq))
	for i, v := range seq {
		pos := sort.Search(len(tails), func(k int) bool {
			return seq[tails[k]] >= v
		})
		if pos > 0 {
			parent[i] = tails[pos-1]
		} else {
			parent[i] = -1
		}
		if pos == len(tails) {
			tails = append(tails, i)
		} else {
			tails[pos] = i
		}
	}
	for i := tails[len(tails)-1]; i >= 0; i = parent[i] {
		keep[i] = true
	}
	return keep
}

// Apply replays cs on the previous row order and returns the resulting order
// of IDs. Views that keep their own row slice can use it to stay in step with
// the changeset they were handed.
func Apply(prev []string, cs Changeset) ([]string, error) {
	removed := make(map[int]struct{}, len(cs.Removes))
	for _, op := range cs.Removes {
		if op.Index < 0 || op.Index >= len(prev) || prev[op.Index] != op.ID {
			return nil, fmt.Errorf("diff: remove %q at %d out of step", op.ID, op.Index)
		}
		removed[op.Index] = struct{}{}
	}
	moved := make(map[int]struct{}, len(cs.Moves))
	for _, mv := range cs.Moves {
		if mv.From < 0 || mv.From >= len(prev) || prev[mv.From] != mv.ID {
			return nil, fmt.Errorf("diff: move %q from %d out of step", mv.ID, mv.From)
		}
		moved[mv.From] = struct{}{}
	}

	size := len(prev) - len(cs.Removes) + len(cs.Inserts)
	if size < 0 {
		return nil, errors.New("diff: changeset removes more rows than exist")
	}
	out := make([]string, size)
	filled := make([]bool, size)
	place := func(id string, at int) error {
		if at < 0 || at >= size || filled[at] {
			return fmt.Errorf("diff: row %q cannot be placed at %d", id, at)
		}
		out[at] = id
		filled[at] = true
		return nil
	}
	for _, op := range cs.Inserts {
		if err := place(op.ID, op.Index); err != nil {
			return nil, err
		}
	}
	for _, mv := range cs.Moves {
		if err := place(mv.ID, mv.To); err != nil {
			return nil, err
		}
	}

	slot := 0
	for i, id := range prev {
		if _, ok := removed[i]; ok {
			continue
		}
		if _, ok := moved[i]; ok {
			continue
		}
		for slot < size && filled[slot] {
			slot++
		}
		if slot >= size {
			return nil, fmt.Errorf("diff: no room left for row %q", id)
		}
		out[slot] = id
		filled[slot] = true
	}
	for at, ok := range filled {
		if !ok {
			return nil, fmt.Errorf("diff: row %d left empty", at)
		}
	}
	return out, nil
}

// IDs lists the identifiers of items in order.
func IDs(items []viewmodel.Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
