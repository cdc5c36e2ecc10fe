package update

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/outline/pkg/runner/add"
	"tableflip.dev/outline/pkg/store"
)

const draftOne = `{"name": "pilot", "title": "Pilot", "scenes": [
	{"id": "a", "sceneNumber": "1", "string": "INT. KITCHEN - DAY"},
	{"id": "b", "sceneNumber": "2", "string": "EXT. STREET - NIGHT"},
	{"id": "c", "sceneNumber": "3", "string": "INT. CAR - NIGHT"}
]}`

const draftTwo = `{"name": "pilot", "title": "Pilot", "scenes": [
	{"id": "c", "sceneNumber": "1", "string": "INT. CAR - NIGHT"},
	{"id": "a", "sceneNumber": "2", "string": "INT. KITCHEN - DAY", "synopsis": ["Anna waits."]},
	{"id": "d", "sceneNumber": "3", "string": "EXT. ROOF - DAWN"}
]}`

func writeDraft(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write draft: %v", err)
	}
	return path
}

func TestUpdatePrintsChanges(t *testing.T) {
	dir := t.TempDir()
	p, err := store.Load(store.StaticConfig(filepath.Join(dir, "db")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()

	var out bytes.Buffer
	imp := add.Add{File: writeDraft(t, dir, "one.json", draftOne), Persistence: p, Out: &out}
	if err := imp.Do(ctx); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out.String(), `imported as "pilot"`) {
		t.Fatalf("unexpected import output %q", out.String())
	}

	out.Reset()
	up := Update{File: writeDraft(t, dir, "two.json", draftTwo), Persistence: p, Out: &out}
	if err := up.Do(ctx); err != nil {
		t.Fatalf("update: %v", err)
	}
	text := out.String()
	for _, want := range []string{"pilot: 1 removed, 1 inserted, 1 moved, 1 reloaded", "- ", "+ ", "> ", "~ "} {
		if !strings.Contains(text, want) {
			t.Fatalf("update output missing %q:\n%s", want, text)
		}
	}

	doc, err := p.Document("pilot")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if len(doc.Scenes) != 3 || doc.Scenes[0].ID != "c" {
		t.Fatalf("expected stored outline to be replaced, got %+v", doc.Scenes)
	}
}

func TestUpdateDryRunKeepsStoredOutline(t *testing.T) {
	dir := t.TempDir()
	p, err := store.Load(store.StaticConfig(filepath.Join(dir, "db")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()

	var out bytes.Buffer
	imp := add.Add{File: writeDraft(t, dir, "one.json", draftOne), Persistence: p, Out: &out}
	if err := imp.Do(ctx); err != nil {
		t.Fatalf("import: %v", err)
	}

	out.Reset()
	up := Update{File: writeDraft(t, dir, "two.json", draftTwo), DryRun: true, Persistence: p, Out: &out}
	if err := up.Do(ctx); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out.String(), "1 inserted") {
		t.Fatalf("expected changes to be printed:\n%s", out.String())
	}

	doc, err := p.Document("pilot")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Scenes[0].ID != "a" {
		t.Fatalf("dry run must not store, got first scene %q", doc.Scenes[0].ID)
	}
}

func TestUpdateImportsUnknownDocument(t *testing.T) {
	dir := t.TempDir()
	p, err := store.Load(store.StaticConfig(filepath.Join(dir, "db")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var out bytes.Buffer
	up := Update{File: writeDraft(t, dir, "two.json", draftTwo), Name: "fresh", Persistence: p, Out: &out}
	if err := up.Do(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out.String(), "fresh (new) - 3 scenes") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if _, err := p.Document("fresh"); err != nil {
		t.Fatalf("expected document to be stored: %v", err)
	}
}
