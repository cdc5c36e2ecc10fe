package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/outline/viewmodel"
	"tableflip.dev/outline/pkg/printers"
	"tableflip.dev/outline/pkg/store"
)

type Get struct {
	ShowID bool
	// Name selects one document; empty prints all of them.
	Name string
	// HideOmitted drops omitted scenes from the listing.
	HideOmitted bool

	Persistence store.Persistence
	Out         io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	svc := &app.Service{Persistence: n.Persistence}
	pp := printers.New(n.Out, n.ShowID)

	names := []string{n.Name}
	if n.Name == "" {
		var err error
		if names, err = svc.Documents(ctx); err != nil {
			return err
		}
		if len(names) == 0 {
			pp.Title("no documents")
			return nil
		}
	}

	var opts []viewmodel.Option
	if n.HideOmitted {
		opts = append(opts, viewmodel.WithoutOmitted())
	}

	for _, name := range names {
		doc, err := svc.Document(name)
		if err != nil {
			return err
		}
		items := viewmodel.Build(doc.Scenes, opts...)
		pp.TitleWithCount(doc.DisplayTitle(), len(items))
		pp.Outline(items...)
	}
	return nil
}
