// Package outlineview renders a live screenplay outline in the terminal. The
// rows are driven by a synchronizer through a Bridge; storage events trigger
// incremental updates while the program runs.
package outlineview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/golang/glog"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/outline/pkg/outline/diff"
	"tableflip.dev/outline/pkg/outline/synchronizer"
	"tableflip.dev/outline/pkg/outline/viewmodel"
	"tableflip.dev/outline/pkg/store"
	"tableflip.dev/outline/pkg/tui/theme"
)

const helpText = "↑/↓ move  space select  d details  pgup/pgdn scroll details  r refresh  q quit"

type eventMsg struct {
	ev store.Event
}

type watchClosedMsg struct{}

// Config wires a Model to its synchronizer.
type Config struct {
	Title        string
	Synchronizer *synchronizer.Synchronizer
	Bridge       *Bridge
	// Events, when set, are passed to OnEvent as they arrive.
	Events  <-chan store.Event
	OnEvent func(store.Event)
	Theme   *theme.Theme
}

// Model is the bubbletea model for a single outline.
type Model struct {
	title  string
	syn    *synchronizer.Synchronizer
	bridge *Bridge
	events <-chan store.Event
	handle func(store.Event)
	theme  theme.Theme

	items   []viewmodel.Item
	changed map[string]struct{}
	cursor  int
	offset  int
	status  string

	detail     bool
	detailView viewport.Model

	width  int
	height int
}

// New creates a Model. The rows arrive through the bridge, usually as the
// reload queued when the synchronizer was bound.
func New(cfg Config) *Model {
	th := theme.Default()
	if cfg.Theme != nil {
		th = *cfg.Theme
	}
	return &Model{
		title:   cfg.Title,
		syn:     cfg.Synchronizer,
		bridge:  cfg.Bridge,
		events:  cfg.Events,
		handle:  cfg.OnEvent,
		theme:   th,
		changed: map[string]struct{}{},
		detailView: viewport.New(
			viewport.WithWidth(defaultWidth),
			viewport.WithHeight(detailHeight-2),
		),
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.bridge != nil {
		cmds = append(cmds, m.bridge.Wait())
	}
	if m.events != nil {
		cmds = append(cmds, m.waitEvent())
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitEvent() tea.Cmd {
	events, handle := m.events, m.handle
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		if handle != nil {
			handle(ev)
		}
		return eventMsg{ev: ev}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.detailView.SetWidth(max(m.width-4, 1))
		m.scroll()
		m.refreshDetail()
		return m, nil

	case pendingMsg:
		for _, queued := range msg.msgs {
			m.apply(queued)
		}
		return m, m.bridge.Wait()

	case ChangesMsg, ReloadMsg:
		m.apply(msg)
		return m, nil

	case eventMsg:
		glog.V(2).Infof("outlineview: storage %s %q", msg.ev.Type, msg.ev.Document)
		return m, m.waitEvent()

	case watchClosedMsg:
		m.events = nil
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "g", "home":
		m.moveCursor(-len(m.items))
	case "G", "end":
		m.moveCursor(len(m.items))
	case "space", " ", "enter":
		m.toggleSelection()
	case "d":
		m.detail = !m.detail
		m.scroll()
		m.refreshDetail()
	case "pgup", "pgdown":
		if m.detail {
			vp, cmd := m.detailView.Update(msg)
			m.detailView = vp
			return cmd
		}
	case "r":
		if m.syn != nil {
			res := m.syn.Update()
			if res.Reloaded {
				m.status = "reloaded"
			} else {
				m.status = res.Changes.String()
			}
		}
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.scroll()
	m.refreshDetail()
}

func (m *Model) toggleSelection() {
	if m.syn == nil || len(m.items) == 0 {
		return
	}
	id := m.items[m.cursor].ID
	if m.syn.Selected() == id {
		id = ""
	}
	m.syn.Select(id)
}

func (m *Model) apply(msg tea.Msg) {
	current := ""
	if m.cursor < len(m.items) {
		current = m.items[m.cursor].ID
	}

	switch msg := msg.(type) {
	case ChangesMsg:
		rows, err := replay(m.items, msg)
		if err != nil {
			glog.Warningf("outlineview: %v, reloading rows", err)
			m.items = msg.Items
			m.changed = map[string]struct{}{}
			m.status = fmt.Sprintf("reloaded %d scenes", len(msg.Items))
			break
		}
		m.items = rows
		m.changed = touched(msg.Changes)
		if msg.Animate {
			m.status = msg.Changes.String()
		}
	case ReloadMsg:
		m.items = msg.Items
		m.changed = map[string]struct{}{}
		m.status = fmt.Sprintf("loaded %d scenes", len(msg.Items))
	}

	if index, _ := viewmodel.Index(m.items); current != "" {
		if row, ok := index[current]; ok {
			m.cursor = row
		}
	}
	m.clampCursor()
	m.scroll()
	m.refreshDetail()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	rows := m.visibleRows()
	if rows <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if last := len(m.items) - rows; m.offset > last {
		m.offset = last
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) visibleRows() int {
	if m.height == 0 {
		return len(m.items)
	}
	rows := m.height - 4 // header, blank, blank, footer
	if m.detail {
		rows -= detailHeight
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) View() string {
	th := m.theme
	var b strings.Builder

	title := m.title
	if title == "" {
		title = "Outline"
	}
	b.WriteString(th.Header.Title.Render(m.fit(title)))
	b.WriteString(th.Header.Count.Render(fmt.Sprintf(" (%d)", len(m.items))))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(th.Row.Synopsis.Render("no scenes"))
		b.WriteString("\n")
	}
	end := m.offset + m.visibleRows()
	if end > len(m.items) {
		end = len(m.items)
	}
	for row := m.offset; row < end; row++ {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	if m.detail {
		b.WriteString(m.renderDetail())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := helpText
	if m.status != "" {
		footer = m.status + "  " + helpText
	}
	b.WriteString(th.Footer.Status.Render(m.fit(footer)))
	return b.String()
}

func (m *Model) renderRow(row int) string {
	th := m.theme
	it := m.items[row]

	mark := " "
	if it.Selected {
		mark = "*"
	}
	if _, ok := m.changed[it.ID]; ok {
		mark = th.Row.Changed.Render("~")
		if it.Selected {
			mark = th.Row.Changed.Render("*")
		}
	}

	number := th.Row.Number.Render(fmt.Sprintf("%4s", it.SceneNumber))
	heading := m.fit(strings.TrimSpace(it.String))
	if it.Color != "" {
		heading = m.fit(fmt.Sprintf("%s [%s]", strings.TrimSpace(it.String), it.Color))
	}

	style := th.Row.Heading
	switch {
	case row == m.cursor:
		style = th.Row.Cursor
	case it.Selected:
		style = th.Row.Selected
	}
	return mark + number + "  " + style.Render(heading)
}

const (
	detailHeight = 8
	defaultWidth = 80
)

// refreshDetail loads the scene under the cursor into the detail panel.
func (m *Model) refreshDetail() {
	if !m.detail {
		return
	}
	if len(m.items) == 0 {
		m.detailView.SetContent("")
		return
	}
	th := m.theme
	it := m.items[m.cursor]
	lines := []string{th.Panel.Title.Render(it.Title())}
	for _, syn := range it.Synopsis {
		lines = append(lines, th.Row.Synopsis.Render(syn))
	}
	for _, beat := range it.Beats {
		lines = append(lines, th.Panel.Body.Render("beat: "+strings.TrimSpace(beat.Text)))
	}
	for _, marker := range it.Markers {
		lines = append(lines, th.Panel.Body.Render(fmt.Sprintf("marker (%s): %s", marker.Color, marker.Description)))
	}
	if m.syn != nil {
		if sc, ok := m.syn.SceneByID(it.ID); ok {
			for _, tag := range sc.Tags {
				lines = append(lines, th.Panel.Body.Render(fmt.Sprintf("%s: %s", tag.Type, tag.Name)))
			}
		}
	}
	lines = append(lines, th.Row.Number.Render("range "+it.Range.String()))
	m.detailView.SetContent(strings.Join(lines, "\n"))
	m.detailView.SetYOffset(0)
}

func (m *Model) renderDetail() string {
	return m.theme.Panel.Frame.Render(m.detailView.View())
}

// fit truncates s to the terminal width, if known.
func (m *Model) fit(s string) string {
	if m.width <= 8 {
		return s
	}
	return truncate.StringWithTail(s, uint(m.width-8), "…")
}

// Rows returns the rows currently displayed, for inspection.
func (m *Model) Rows() []viewmodel.Item {
	return m.items
}

// Cursor returns the highlighted row.
func (m *Model) Cursor() int {
	return m.cursor
}

func touched(cs diff.Changeset) map[string]struct{} {
	out := make(map[string]struct{}, len(cs.Inserts)+len(cs.Reloads)+len(cs.Moves))
	for _, op := range cs.Inserts {
		out[op.ID] = struct{}{}
	}
	for _, op := range cs.Reloads {
		out[op.ID] = struct{}{}
	}
	for _, mv := range cs.Moves {
		out[mv.ID] = struct{}{}
	}
	return out
}

// replay applies the changeset to the displayed rows. The replayed order must
// match the snapshot carried with it; row content always comes from the
// snapshot.
func replay(rows []viewmodel.Item, msg ChangesMsg) ([]viewmodel.Item, error) {
	ids, err := diff.Apply(diff.IDs(rows), msg.Changes)
	if err != nil {
		return nil, err
	}
	if !equalIDs(ids, diff.IDs(msg.Items)) {
		return nil, fmt.Errorf("changeset out of step with its snapshot (%s)", msg.Changes)
	}
	index, _ := viewmodel.Index(msg.Items)
	out := make([]viewmodel.Item, len(ids))
	for i, id := range ids {
		out[i] = msg.Items[index[id]]
	}
	return out, nil
}

func equalIDs(a, b []string) bool {
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
