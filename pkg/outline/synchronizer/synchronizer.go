// Package synchronizer keeps a list view in step with a live screenplay
// outline. Each update rebuilds the row snapshot, diffs it against the rows the
// view last received, and hands the view only what changed.
package synchronizer

import (
	"sync"

	"github.com/golang/glog"

	"tableflip.dev/outline/pkg/outline/diff"
	"tableflip.dev/outline/pkg/outline/viewmodel"
	"tableflip.dev/outline/pkg/scene"
)

// View is the list surface the synchronizer drives. Implementations may read
// back through Item or Len while handling a call.
type View interface {
	// ApplyChanges performs a batch update. items is the full new snapshot.
	ApplyChanges(cs diff.Changeset, items []viewmodel.Item, animate bool)
	// ReloadData replaces the view contents without animation.
	ReloadData(items []viewmodel.Item)
}

// Result describes what a single Update did.
type Result struct {
	Changes diff.Changeset
	// Reloaded is set when the update fell back to a full reload.
	Reloaded bool
}

// Stats counts the operations performed since construction.
type Stats struct {
	Updates   int
	Resets    int
	Fallbacks int
	// Detached counts operations that found no view to apply to.
	Detached int
}

// Option customises a Synchronizer.
type Option func(*Synchronizer)

// WithBuildOptions passes options to every viewmodel.Build call.
func WithBuildOptions(opts ...viewmodel.Option) Option {
	return func(s *Synchronizer) {
		s.buildOpts = append(s.buildOpts, opts...)
	}
}

// WithoutAnimation asks views to apply batch updates without animating.
func WithoutAnimation() Option {
	return func(s *Synchronizer) {
		s.animate = false
	}
}

// Synchronizer owns the rows last applied to a view.
//
// The component is meant to be driven from one thread at a time. opMu
// serialises whole operations, including the call into the view; mu only
// guards the fields so views can read Item and Len from inside a callback.
type Synchronizer struct {
	opMu sync.Mutex
	mu   sync.RWMutex

	source scene.Source
	view   View

	previous []viewmodel.Item
	lookup   scene.Lookup
	selected string

	buildOpts []viewmodel.Option
	animate   bool
	stats     Stats
}

// New builds the initial rows from source and, if view is non-nil, loads
// them into the view. A nil source yields an empty outline.
func New(source scene.Source, view View, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		source:  source,
		view:    view,
		animate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	outline := s.currentOutline()
	s.previous = s.build(outline)
	s.lookup = outline.Lookup()
	if view != nil {
		view.ReloadData(cloneItems(s.previous))
	}
	return s
}

// Update rebuilds the rows from the source and applies the difference to the
// view. A duplicate scene identifier makes the diff ambiguous; the
// synchronizer then falls back to a full reload.
func (s *Synchronizer) Update() Result {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	outline := s.currentOutline()
	next := s.build(outline)

	s.mu.Lock()
	cs, err := diff.Compute(s.previous, next)
	if err != nil {
		glog.Warningf("outline: %v, reloading", err)
		s.stats.Fallbacks++
		s.mu.Unlock()
		s.reset(outline, next)
		return Result{Reloaded: true}
	}
	s.previous = next
	s.lookup = outline.Lookup()
	s.dropMissingSelection()
	s.stats.Updates++
	view := s.view
	if view == nil {
		s.stats.Detached++
	}
	animate := s.animate
	s.mu.Unlock()

	if view == nil {
		glog.V(2).Infof("outline: no view bound, kept state only (%s)", cs)
		return Result{Changes: cs}
	}
	if !cs.Empty() {
		view.ApplyChanges(cs, cloneItems(next), animate)
	}
	return Result{Changes: cs}
}

// Reset discards the retained rows, rebuilds them from outline, and reloads
// the view wholesale. Use it when the outline was replaced rather than edited.
func (s *Synchronizer) Reset(outline scene.Outline) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.reset(outline, s.build(outline))
}

func (s *Synchronizer) reset(outline scene.Outline, items []viewmodel.Item) {
	s.mu.Lock()
	s.previous = items
	s.lookup = outline.Lookup()
	s.dropMissingSelection()
	s.stats.Resets++
	view := s.view
	if view == nil {
		s.stats.Detached++
	}
	s.mu.Unlock()

	if view == nil {
		glog.V(2).Infof("outline: no view bound, reset kept %d rows", len(items))
		return
	}
	view.ReloadData(cloneItems(items))
}

// Bind attaches view and loads the retained rows into it.
func (s *Synchronizer) Bind(view View) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.view = view
	items := cloneItems(s.previous)
	s.mu.Unlock()

	if view != nil {
		view.ReloadData(items)
	}
}

// Detach releases the view. Later operations only update internal state.
func (s *Synchronizer) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = nil
}

// SetSource swaps the outline source used by Update.
func (s *Synchronizer) SetSource(source scene.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = source
}

// Select marks the row for id as selected, clearing the previous selection.
// Only the affected rows are reloaded; selection is not part of the diff. An
// empty id, or one with no row, clears the selection.
func (s *Synchronizer) Select(id string) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if id != "" && rowOf(s.previous, id) < 0 {
		glog.V(2).Infof("outline: no row for %q, clearing selection", id)
		id = ""
	}
	if id == s.selected {
		s.mu.Unlock()
		return
	}
	var cs diff.Changeset
	for i := range s.previous {
		it := &s.previous[i]
		want := id != "" && it.ID == id
		if it.Selected != want {
			it.Selected = want
			cs.Reloads = append(cs.Reloads, diff.Op{ID: it.ID, Index: i})
		}
	}
	s.selected = id
	view := s.view
	items := cloneItems(s.previous)
	s.mu.Unlock()

	if view != nil && !cs.Empty() {
		view.ApplyChanges(cs, items, false)
	}
}

// Selected returns the selected row ID, if any.
func (s *Synchronizer) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Item returns the rendered row at index row.
func (s *Synchronizer) Item(row int) (viewmodel.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if row < 0 || row >= len(s.previous) {
		return viewmodel.Item{}, false
	}
	return s.previous[row], true
}

// Scene resolves the row at index row to its live scene.
func (s *Synchronizer) Scene(row int) (*scene.Scene, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if row < 0 || row >= len(s.previous) {
		return nil, false
	}
	return s.lookup.Scene(s.previous[row].ID)
}

// SceneByID resolves id to its live scene.
func (s *Synchronizer) SceneByID(id string) (*scene.Scene, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup.Scene(id)
}

// Len returns the number of rendered rows.
func (s *Synchronizer) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.previous)
}

// Items returns a copy of the rendered rows.
func (s *Synchronizer) Items() []viewmodel.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.previous)
}

// Stats returns the operation counters.
func (s *Synchronizer) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *Synchronizer) currentOutline() scene.Outline {
	s.mu.RLock()
	source := s.source
	s.mu.RUnlock()
	if source == nil {
		return nil
	}
	return source.Outline()
}

func (s *Synchronizer) build(outline scene.Outline) []viewmodel.Item {
	s.mu.RLock()
	opts := append([]viewmodel.Option(nil), s.buildOpts...)
	if s.selected != "" {
		opts = append(opts, viewmodel.WithSelected(s.selected))
	}
	s.mu.RUnlock()
	return viewmodel.Build(outline, opts...)
}

// dropMissingSelection forgets a selected ID whose row is gone, so a scene
// that comes back later is not selected again. Callers hold mu.
func (s *Synchronizer) dropMissingSelection() {
	if s.selected == "" || rowOf(s.previous, s.selected) >= 0 {
		return
	}
	glog.V(2).Infof("outline: selected scene %q is gone", s.selected)
	s.selected = ""
}

func rowOf(items []viewmodel.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []viewmodel.Item) []viewmodel.Item {
	if items == nil {
		return nil
	}
	out := make([]viewmodel.Item, len(items))
	copy(out, items)
	return out
}
