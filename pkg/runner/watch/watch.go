package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/golang/glog"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/printers"
	"tableflip.dev/outline/pkg/store"
)

// Watch prints outline changes as documents are rewritten in storage.
type Watch struct {
	// Name limits watching to one document.
	Name   string
	ShowID bool

	Persistence store.Persistence
	Out         io.Writer
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Persistence == nil {
		return errors.New("can not watch, no persistence")
	}
	svc := &app.Service{Persistence: w.Persistence}
	pp := printers.New(w.Out, w.ShowID)

	names := []string{w.Name}
	if w.Name == "" {
		var err error
		if names, err = svc.Documents(ctx); err != nil {
			return err
		}
	}
	for _, name := range names {
		if _, err := svc.Open(name, &printers.View{Printer: pp, Name: name}); err != nil {
			return err
		}
	}
	defer func() {
		for _, name := range svc.OpenDocuments() {
			svc.Close(name)
		}
	}()

	events, err := svc.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			w.summary(svc, pp)
			return nil
		case ev, ok := <-events:
			if !ok {
				w.summary(svc, pp)
				return nil
			}
			glog.V(1).Infof("watch: %s %q", ev.Type, ev.Document)
			if _, open := svc.Opened(ev.Document); !open && ev.Type == store.EventDocumentChanged && w.Name == "" {
				if _, err := svc.Open(ev.Document, &printers.View{Printer: pp, Name: ev.Document}); err != nil {
					glog.V(1).Infof("watch: %q: %v", ev.Document, err)
				}
				continue
			}
			svc.HandleEvent(ev)
		}
	}
}

func (w *Watch) summary(svc *app.Service, pp *printers.PrettyPrint) {
	pp.NewLine()
	for _, name := range svc.OpenDocuments() {
		syn, ok := svc.Opened(name)
		if !ok {
			continue
		}
		st := syn.Stats()
		_, _ = fmt.Fprintf(pp.Out, "%s: %d updates, %d resets, %d fallbacks\n", name, st.Updates, st.Resets, st.Fallbacks)
	}
}
