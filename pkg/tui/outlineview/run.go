package outlineview

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/golang/glog"

	"tableflip.dev/outline/pkg/app"
)

// Run opens name through svc and shows it until the user quits. Storage
// changes are applied while the program runs.
func Run(ctx context.Context, svc *app.Service, name string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	doc, err := svc.Document(name)
	if err != nil {
		return err
	}

	bridge := NewBridge()
	syn, err := svc.Open(name, bridge)
	if err != nil {
		return err
	}
	defer svc.Close(name)

	events, err := svc.Watch(ctx)
	if err != nil {
		glog.Warningf("outlineview: not watching %q: %v", name, err)
		events = nil
	}

	model := New(Config{
		Title:        doc.DisplayTitle(),
		Synchronizer: syn,
		Bridge:       bridge,
		Events:       events,
		OnEvent:      svc.HandleEvent,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
