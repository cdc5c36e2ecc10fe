// Package scene defines the parsed screenplay model the outline views read
// from: scenes, their annotations, and lookups by stable identifier.
package scene

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateID is returned when two scenes in one outline share an ID.
	ErrDuplicateID = errors.New("scene: duplicate scene id")
	// ErrEmptyID is returned when a scene carries no identifier.
	ErrEmptyID = errors.New("scene: empty scene id")
)

// Range locates a scene inside the document text.
type Range struct {
	Location int `json:"location"`
	Length   int `json:"length"`
}

// End returns the first position after the range.
func (r Range) End() int {
	return r.Location + r.Length
}

func (r Range) String() string {
	return fmt.Sprintf("{%d, %d}", r.Location, r.Length)
}

// Beat is a narrative story beat attached to a scene.
type Beat struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

// Marker is a free-form colored marker placed inside a scene.
type Marker struct {
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// Scene is one heading plus the lines it contains, as produced by the
// document parser. A scene is immutable for the lifetime of one outline.
type Scene struct {
	ID          string   `json:"id"`
	String      string   `json:"string"`
	Color       string   `json:"color,omitempty"`
	SceneNumber string   `json:"sceneNumber,omitempty"`
	Range       Range    `json:"range"`
	Synopsis    []string `json:"synopsis,omitempty"`
	Beats       []Beat   `json:"beats,omitempty"`
	Markers     []Marker `json:"markers,omitempty"`
	Tags        []Tag    `json:"tags,omitempty"`
	Omitted     bool     `json:"omitted,omitempty"`
}

// Heading returns the display heading with surrounding whitespace removed.
func (s *Scene) Heading() string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s.String)
}

// Outline is the ordered list of scenes in document order.
type Outline []*Scene

// Source hands out the current outline of a document.
type Source interface {
	Outline() Outline
}

// Static is a Source that always returns the same outline.
type Static Outline

// Outline implements Source.
func (s Static) Outline() Outline {
	return Outline(s)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func() Outline

// Outline implements Source.
func (f SourceFunc) Outline() Outline {
	if f == nil {
		return nil
	}
	return f()
}

// Validate reports the first empty or duplicated identifier. Nil scenes are
// skipped.
func (o Outline) Validate() error {
	seen := make(map[string]struct{}, len(o))
	for idx, sc := range o {
		if sc == nil {
			continue
		}
		id := strings.TrimSpace(sc.ID)
		if id == "" {
			return fmt.Errorf("%w at index %d", ErrEmptyID, idx)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w %q", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Lookup builds an index of scenes by ID. On duplicates the first scene wins.
func (o Outline) Lookup() Lookup {
	idx := make(map[string]*Scene, len(o))
	for _, sc := range o {
		if sc == nil {
			continue
		}
		id := strings.TrimSpace(sc.ID)
		if id == "" {
			continue
		}
		if _, exists := idx[id]; !exists {
			idx[id] = sc
		}
	}
	return Lookup{scenes: idx}
}

// Lookup resolves scene identifiers back to the scenes owned by the document.
// The zero value resolves nothing.
type Lookup struct {
	scenes map[string]*Scene
}

// Scene returns the scene for id, or false if it is no longer part of the
// outline.
func (l Lookup) Scene(id string) (*Scene, bool) {
	if l.scenes == nil {
		return nil, false
	}
	sc, ok := l.scenes[strings.TrimSpace(id)]
	return sc, ok
}

// Len returns the number of indexed scenes.
func (l Lookup) Len() int {
	return len(l.scenes)
}
