package update

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/printers"
	"tableflip.dev/outline/pkg/runner/add"
	"tableflip.dev/outline/pkg/scene"
	"tableflip.dev/outline/pkg/store"
)

// Update replaces a stored outline with a newly parsed one and prints the
// changes a list view would receive.
type Update struct {
	File string
	Name string
	// DryRun prints the changes without storing the new outline.
	DryRun bool
	ShowID bool

	Persistence store.Persistence
	Out         io.Writer
	In          io.Reader
}

func (n *Update) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not sync, no persistence")
	}
	doc, err := add.ReadDocument(n.File, n.In)
	if err != nil {
		return err
	}
	name := n.Name
	if name == "" {
		name = doc.Name
	}
	if name == "" {
		name = add.NameFromPath(n.File)
	}
	doc.Name = name

	svc := &app.Service{Persistence: n.Persistence}
	pp := printers.New(n.Out, n.ShowID)

	syn, err := svc.Open(name, nil)
	if errors.Is(err, store.ErrNotFound) {
		if n.DryRun {
			pp.TitleWithCount(name+" (new)", len(doc.Scenes))
			return nil
		}
		if err := svc.Import(doc); err != nil {
			return err
		}
		pp.TitleWithCount(name+" (new)", len(doc.Scenes))
		return nil
	}
	if err != nil {
		return err
	}
	defer svc.Close(name)

	if n.DryRun {
		syn.SetSource(scene.Static(doc.Scenes))
	} else if err := svc.Import(doc); err != nil {
		return err
	}

	res := syn.Update()
	if res.Reloaded {
		pp.TitleWithCount(name+" (reloaded)", syn.Len())
		pp.Outline(syn.Items()...)
		return nil
	}
	pp.Title(fmt.Sprintf("%s: %s", name, res.Changes))
	pp.Changes(res.Changes, syn.Items())
	return nil
}
