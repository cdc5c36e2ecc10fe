package tags

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/printers"
	"tableflip.dev/outline/pkg/store"
)

// Tags prints the tag report of a document.
type Tags struct {
	Name  string
	Types []string
	// Plain prints the page-broken text form instead of the colored listing.
	Plain bool

	Persistence store.Persistence
	Out         io.Writer
}

func (t *Tags) Do(ctx context.Context) error {
	if t.Persistence == nil {
		return errors.New("can not report, no persistence")
	}
	types, err := app.ParseTagTypes(t.Types)
	if err != nil {
		return err
	}
	svc := &app.Service{Persistence: t.Persistence}
	report, err := svc.TagReport(t.Name, types...)
	if err != nil {
		return err
	}

	if t.Plain {
		out := t.Out
		if out == nil {
			out = color.Output
		}
		_, err := fmt.Fprint(out, report.Text())
		return err
	}
	printers.New(t.Out, false).TagReport(report)
	return nil
}
