package ui

import (
	"context"
	"errors"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/store"
	"tableflip.dev/outline/pkg/tui/outlineview"
)

type UI struct {
	Name        string
	Persistence store.Persistence
}

func (d *UI) Do(ctx context.Context) error {
	if d.Persistence == nil {
		return errors.New("can not open ui, no persistence")
	}
	svc := &app.Service{Persistence: d.Persistence}
	name := d.Name
	if name == "" {
		names, err := svc.Documents(ctx)
		if err != nil {
			return err
		}
		switch len(names) {
		case 0:
			return errors.New("no documents stored, import one first")
		case 1:
		default:
			return errors.New("more than one document stored, name the one to open")
		}
		name = names[0]
	}
	return outlineview.Run(ctx, svc, name)
}
