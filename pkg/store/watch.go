package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventDocumentChanged indicates the stored outline of the given document
	// was written or removed.
	EventDocumentChanged EventType = iota

	// EventDocumentsInvalidated signals that the change could not be tied to
	// a single document and callers should refresh everything they show.
	EventDocumentsInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventDocumentChanged:
		return "changed"
	case EventDocumentsInvalidated:
		return "invalidated"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type     EventType
	Document string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if err := p.ensureDocumentsPath(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				glog.Warningf("store: watcher close: %v", err)
			}
		})
	}

	if err := watcher.Add(p.documentsPath()); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.documentsPath(), err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next
				// refresh picks up the change anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				glog.V(2).Infof("store: watcher error: %v", err)
				throttle.Enqueue(Event{Type: EventDocumentsInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op == fsnotify.Chmod {
					continue
				}
				name := p.documentForPath(evt.Name)
				if name == "" {
					throttle.Enqueue(Event{Type: EventDocumentsInvalidated}, send)
					continue
				}
				throttle.Enqueue(Event{Type: EventDocumentChanged, Document: name}, send)
			}
		}
	}()

	return events, nil
}

// documentForPath derives the document name from a stored file path. Files
// that are not documents (diskv temp files, stray files) yield "".
func (p *persistence) documentForPath(path string) string {
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(p.documentsPath()) {
		return ""
	}
	base := filepath.Base(path)
	if !strings.HasSuffix(base, documentExt) {
		return ""
	}
	name, err := fromKey(strings.TrimSuffix(base, documentExt))
	if err != nil {
		return ""
	}
	return name
}

// eventThrottle coalesces rapid change notifications so views redraw once per
// burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Document] = struct{}{}

	if t.timer == nil && !t.stopped {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

// flush sends while holding the lock so nothing is sent after Stop returns;
// send must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	if t.stopped {
		return
	}

	if _, ok := pending[EventDocumentsInvalidated]; ok {
		send(Event{Type: EventDocumentsInvalidated})
		return
	}
	for name := range pending[EventDocumentChanged] {
		send(Event{Type: EventDocumentChanged, Document: name})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
