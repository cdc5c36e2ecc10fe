package outlineview

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/outline/pkg/outline/diff"
	"tableflip.dev/outline/pkg/outline/viewmodel"
)

// ChangesMsg carries a batch update from the synchronizer into the program.
type ChangesMsg struct {
	Changes diff.Changeset
	Items   []viewmodel.Item
	Animate bool
}

// ReloadMsg replaces every row.
type ReloadMsg struct {
	Items []viewmodel.Item
}

// pendingMsg delivers the queued view calls in the order they were made.
type pendingMsg struct {
	msgs []tea.Msg
}

// Bridge implements synchronizer.View by queueing calls for the bubbletea
// event loop. Calls never block, so the synchronizer may be driven from the
// loop itself (selection) or from a watcher goroutine.
type Bridge struct {
	mu      sync.Mutex
	pending []tea.Msg
	notify  chan struct{}
}

// NewBridge returns an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{notify: make(chan struct{}, 1)}
}

func (b *Bridge) ApplyChanges(cs diff.Changeset, items []viewmodel.Item, animate bool) {
	b.push(ChangesMsg{Changes: cs, Items: items, Animate: animate})
}

func (b *Bridge) ReloadData(items []viewmodel.Item) {
	b.push(ReloadMsg{Items: items})
}

func (b *Bridge) push(msg tea.Msg) {
	b.mu.Lock()
	b.pending = append(b.pending, msg)
	b.mu.Unlock()
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *Bridge) drain() []tea.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.pending
	b.pending = nil
	return msgs
}

// Wait blocks until the synchronizer has called the bridge and returns the
// queued calls as one message.
func (b *Bridge) Wait() tea.Cmd {
	return func() tea.Msg {
		<-b.notify
		return pendingMsg{msgs: b.drain()}
	}
}
