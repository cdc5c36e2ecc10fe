package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/outline/pkg/scene"
)

func TestPersistenceWatchEmitsDocumentChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	doc := &scene.Document{Name: "Pilot", Scenes: scene.Outline{{ID: "a", String: "INT. HOUSE"}}}
	if err := p.Store(doc); err != nil {
		t.Fatalf("store document: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventDocumentsInvalidated {
				return
			}
			if evt.Type == EventDocumentChanged {
				if evt.Document != "Pilot" {
					t.Fatalf("expected document 'Pilot', got %q", evt.Document)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for document change event")
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	throttle := newEventThrottle(10 * time.Millisecond)
	defer throttle.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	throttle.Enqueue(Event{Type: EventDocumentChanged, Document: "a"}, send)
	throttle.Enqueue(Event{Type: EventDocumentChanged, Document: "a"}, send)

	select {
	case ev := <-got:
		if ev.Document != "a" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for flush")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected a single coalesced event, got extra %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventThrottleStopDropsPending(t *testing.T) {
	throttle := newEventThrottle(20 * time.Millisecond)
	got := make(chan Event, 1)
	throttle.Enqueue(Event{Type: EventDocumentsInvalidated}, func(ev Event) { got <- ev })
	throttle.Stop()
	select {
	case ev := <-got:
		t.Fatalf("expected no event after stop, got %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
