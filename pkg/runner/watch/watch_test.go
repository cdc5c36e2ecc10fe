package watch

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/outline/pkg/scene"
	"tableflip.dev/outline/pkg/store"
)

func TestWatchPrintsOutlineAndSummary(t *testing.T) {
	p, err := store.Load(store.StaticConfig(filepath.Join(t.TempDir(), "db")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	doc := &scene.Document{Name: "pilot", Scenes: scene.Outline{
		{ID: "a", SceneNumber: "1", String: "INT. KITCHEN - DAY"},
	}}
	if err := p.Store(doc); err != nil {
		t.Fatalf("store: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	w := Watch{Persistence: p, Out: &out}
	if err := w.Do(ctx); err != nil {
		t.Fatalf("watch: %v", err)
	}
	text := out.String()
	for _, want := range []string{"pilot - 1 scene", "INT. KITCHEN - DAY", "pilot: 0 updates, 0 resets, 0 fallbacks"} {
		if !strings.Contains(text, want) {
			t.Fatalf("watch output missing %q:\n%s", want, text)
		}
	}
}
