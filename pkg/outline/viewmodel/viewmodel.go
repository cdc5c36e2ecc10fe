// Package viewmodel turns a parsed outline into the flat, comparable row items
// that list views render and diff.
package viewmodel

import (
	"strings"

	"tableflip.dev/outline/pkg/scene"
)

// Item is a snapshot of one scene as a list row. Items are values: copying an
// item never aliases the scene it came from.
type Item struct {
	ID          string
	String      string
	Color       string
	SceneNumber string
	Range       scene.Range

	Synopsis []string
	Beats    []scene.Beat
	Markers  []scene.Marker

	// Selected is UI state only; it is ignored by Equal.
	Selected bool
}

// Equal reports whether two items render the same content. Range, scene
// number and selection are not compared.
func (it Item) Equal(other Item) bool {
	if it.ID != other.ID || it.String != other.String || it.Color != other.Color {
		return false
	}
	if !equalStrings(it.Synopsis, other.Synopsis) {
		return false
	}
	if len(it.Beats) != len(other.Beats) {
		return false
	}
	for i := range it.Beats {
		if it.Beats[i] != other.Beats[i] {
			return false
		}
	}
	if len(it.Markers) != len(other.Markers) {
		return false
	}
	for i := range it.Markers {
		if it.Markers[i] != other.Markers[i] {
			return false
		}
	}
	return true
}

// Scene resolves the item back to its live scene. The scene may be gone, in
// which case ok is false.
func (it Item) Scene(lookup scene.Lookup) (*scene.Scene, bool) {
	return lookup.Scene(it.ID)
}

// Title is the heading shown in the row, prefixed with the scene number when
// one exists.
func (it Item) Title() string {
	heading := strings.TrimSpace(it.String)
	if it.SceneNumber == "" {
		return heading
	}
	return it.SceneNumber + ". " + heading
}

// Option customises Build behaviour.
type Option func(*buildOptions)

// WithSelected marks the row for id as selected in the built snapshot.
func WithSelected(id string) Option {
	return func(opts *buildOptions) {
		id = strings.TrimSpace(id)
		if id == "" {
			return
		}
		if opts.selected == nil {
			opts.selected = make(map[string]struct{})
		}
		opts.selected[id] = struct{}{}
	}
}

// WithoutOmitted drops omitted scenes from the snapshot.
func WithoutOmitted() Option {
	return func(opts *buildOptions) {
		opts.skipOmitted = true
	}
}

type buildOptions struct {
	selected    map[string]struct{}
	skipOmitted bool
}

// Build converts the outline into one item per scene, in outline order. Nil
// scenes yield empty items so the row count always matches the outline.
func Build(outline scene.Outline, opts ...Option) []Item {
	config := &buildOptions{}
	for _, opt := range opts {
		opt(config)
	}

	items := make([]Item, 0, len(outline))
	for _, sc := range outline {
		if config.skipOmitted && sc != nil && sc.Omitted {
			continue
		}
		item := newItem(sc)
		if _, ok := config.selected[item.ID]; ok {
			item.Selected = true
		}
		items = append(items, item)
	}
	return items
}

func newItem(sc *scene.Scene) Item {
	if sc == nil {
		return Item{Synopsis: []string{}, Beats: []scene.Beat{}, Markers: []scene.Marker{}}
	}
	item := Item{
		ID:          strings.TrimSpace(sc.ID),
		String:      sc.String,
		Color:       sc.Color,
		SceneNumber: sc.SceneNumber,
		Range:       sc.Range,
		Synopsis:    make([]string, len(sc.Synopsis)),
		Beats:       make([]scene.Beat, len(sc.Beats)),
		Markers:     make([]scene.Marker, len(sc.Markers)),
	}
	copy(item.Synopsis, sc.Synopsis)
	copy(item.Beats, sc.Beats)
	copy(item.Markers, sc.Markers)
	return item
}

// Index maps item IDs to their position. The second return value is the first
// duplicated ID, or "" when all IDs are unique.
func Index(items []Item) (map[string]int, string) {
	index := make(map[string]int, len(items))
	for i, it := range items {
		if _, exists := index[it.ID]; exists {
			return index, it.ID
		}
		index[it.ID] = i
	}
	return index, ""
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
