package scene

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Document is a parsed screenplay as stored on disk: a name plus the outline
// the parser produced for it.
type Document struct {
	Name    string    `json:"name"`
	Title   string    `json:"title,omitempty"`
	Updated time.Time `json:"updated,omitempty"`
	Scenes  Outline   `json:"scenes"`
}

// Outline implements Source.
func (d *Document) Outline() Outline {
	if d == nil {
		return nil
	}
	return d.Scenes
}

// DisplayTitle returns the title, falling back to the name.
func (d *Document) DisplayTitle() string {
	if d == nil {
		return ""
	}
	if title := strings.TrimSpace(d.Title); title != "" {
		return title
	}
	return d.Name
}

// UnmarshalDocument decodes a document. A bare JSON array of scenes is also
// accepted and yields a document without a name.
func UnmarshalDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		var scenes Outline
		if err2 := json.Unmarshal(data, &scenes); err2 != nil {
			return nil, fmt.Errorf("scene: decode document: %w", err)
		}
		doc.Scenes = scenes
	}
	return doc, nil
}
