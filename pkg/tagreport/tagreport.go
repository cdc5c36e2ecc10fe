// Package tagreport lists production tags per scene, one page per tag type.
package tagreport

import (
	"strings"

	"tableflip.dev/outline/pkg/scene"
)

const (
	// PageBreak separates pages in the rendered text.
	PageBreak = "\f"
	bullet    = "•"
	rule      = "\u00a0 \t \u00a0"
)

// Listing is the set of tags of one type found in a single scene.
type Listing struct {
	SceneID     string
	SceneNumber string
	Heading     string
	Tags        []string
}

// Title returns the scene heading line, "<number> - <heading>".
func (l Listing) Title() string {
	return l.SceneNumber + " - " + l.Heading
}

// Page groups every listing for one tag type.
type Page struct {
	Type     scene.TagType
	Listings []Listing
}

// Header is the page title for the tag type.
func (p Page) Header() string {
	return p.Type.DisplayName()
}

// Report is an ordered set of pages. Tag types without any tags get no page.
type Report struct {
	Pages []Page
}

// Empty reports whether no tags were found at all.
func (r Report) Empty() bool {
	return len(r.Pages) == 0
}

// ByType builds the report for the requested tag types, in the given order.
// An empty types list means every known type.
func ByType(outline scene.Outline, types ...scene.TagType) Report {
	if len(types) == 0 {
		types = scene.TagTypes()
	}
	var report Report
	for _, typ := range types {
		page := Page{Type: typ}
		for _, sc := range outline {
			if listing, ok := singleListing(sc, typ); ok {
				page.Listings = append(page.Listings, listing)
			}
		}
		if len(page.Listings) > 0 {
			report.Pages = append(report.Pages, page)
		}
	}
	return report
}

func singleListing(sc *scene.Scene, typ scene.TagType) (Listing, bool) {
	if sc == nil {
		return Listing{}, false
	}
	var found []string
	seen := make(map[string]struct{})
	for _, tag := range sc.Tags {
		if tag.Type != typ {
			continue
		}
		name := strings.TrimSpace(tag.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		found = append(found, name)
	}
	if len(found) == 0 {
		return Listing{}, false
	}
	return Listing{
		SceneID:     sc.ID,
		SceneNumber: sc.SceneNumber,
		Heading:     sc.Heading(),
		Tags:        found,
	}, true
}

// Text renders the report as plain text. Pages are separated by a form feed.
func (r Report) Text() string {
	var b strings.Builder
	for i, page := range r.Pages {
		if i > 0 {
			b.WriteString(PageBreak)
		}
		b.WriteString(page.Header())
		b.WriteString("\n")
		b.WriteString(rule)
		b.WriteString("\n")
		for _, listing := range page.Listings {
			b.WriteString(listing.Title())
			b.WriteString("\n")
			for _, tag := range listing.Tags {
				b.WriteString(bullet)
				b.WriteString(" ")
				b.WriteString(tag)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
