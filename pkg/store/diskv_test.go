package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tableflip.dev/outline/pkg/scene"
)

func TestStoreRoundTrip(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	doc := &scene.Document{
		Name:  "Season 1/Pilot",
		Title: "Pilot",
		Scenes: scene.Outline{
			{ID: "a", String: "INT. HOUSE - DAY", SceneNumber: "1", Synopsis: []string{"Intro"}},
			{ID: "b", String: "EXT. YARD - DAY", SceneNumber: "2", Tags: []scene.Tag{{Type: scene.TagProp, Name: "Ball"}}},
		},
	}
	if err := p.Store(doc); err != nil {
		t.Fatalf("store: %v", err)
	}
	if doc.Updated.IsZero() {
		t.Fatalf("expected updated timestamp to be set")
	}

	got, err := p.Document("Season 1/Pilot")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if got.Title != "Pilot" || len(got.Scenes) != 2 {
		t.Fatalf("unexpected document %+v", got)
	}
	if !reflect.DeepEqual(got.Scenes[1].Tags, doc.Scenes[1].Tags) {
		t.Fatalf("tags not preserved: %+v", got.Scenes[1].Tags)
	}

	names := p.Documents(context.Background())
	if !reflect.DeepEqual(names, []string{"Season 1/Pilot"}) {
		t.Fatalf("unexpected names %v", names)
	}

	if err := p.Delete("Season 1/Pilot"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := p.Document("Season 1/Pilot"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := p.Delete("Season 1/Pilot"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestStoreRejectsUnnamedDocuments(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := p.Store(&scene.Document{Name: " "}); err == nil {
		t.Fatalf("expected error for unnamed document")
	}
	if err := p.Store(nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
	if _, err := p.Document(""); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestLoadRequiresBasePath(t *testing.T) {
	if _, err := Load(StaticConfig("")); err == nil {
		t.Fatalf("expected error for empty base path")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte("path: " + filepath.Join(dir, "db") + "\n")
	if err := os.WriteFile(filepath.Join(dir, ".outline.yaml"), data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnv, dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "db") {
		t.Fatalf("unexpected base path %q", cfg.BasePath())
	}
}

func TestDocumentForPath(t *testing.T) {
	p := &persistence{basePath: "/tmp/outline"}
	path := filepath.Join("/tmp/outline", documentsDir, toKey("Pilot")+documentExt)
	if got := p.documentForPath(path); got != "Pilot" {
		t.Fatalf("expected Pilot, got %q", got)
	}
	if got := p.documentForPath("/tmp/outline/other.txt"); got != "" {
		t.Fatalf("expected no document for stray file, got %q", got)
	}
}
