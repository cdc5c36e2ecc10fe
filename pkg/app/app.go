package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang/glog"

	"tableflip.dev/outline/pkg/outline/registry"
	"tableflip.dev/outline/pkg/outline/synchronizer"
	"tableflip.dev/outline/pkg/scene"
	"tableflip.dev/outline/pkg/store"
)

var errNoPersistence = errors.New("app: no persistence configured")

// Service provides high-level operations over stored screenplay documents.
// It owns the synchronizers opened for each document so UIs and CLIs share
// one reconciliation path.
type Service struct {
	Persistence store.Persistence

	once sync.Once
	open *registry.Registry[string, *synchronizer.Synchronizer]
}

// Documents returns the stored document names, sorted.
func (s *Service) Documents(ctx context.Context) ([]string, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Documents(ctx), nil
}

// Document loads a document by name.
func (s *Service) Document(name string) (*scene.Document, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Document(name)
}

// Import validates and stores a parsed document, replacing any document with
// the same name.
func (s *Service) Import(doc *scene.Document) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	if doc == nil {
		return errors.New("app: nil document")
	}
	if err := doc.Scenes.Validate(); err != nil {
		return fmt.Errorf("app: import %q: %w", doc.Name, err)
	}
	return s.Persistence.Store(doc)
}

// Delete removes a stored document and closes its synchronizer.
func (s *Service) Delete(name string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	s.Close(name)
	return s.Persistence.Delete(name)
}

// Outline returns a Source that reads the latest stored outline of name on
// every call. Read failures yield an empty outline so a removed document
// clears its view.
func (s *Service) Outline(name string) scene.Source {
	name = strings.TrimSpace(name)
	return scene.SourceFunc(func() scene.Outline {
		doc, err := s.Document(name)
		if err != nil {
			glog.V(2).Infof("app: outline %q unavailable: %v", name, err)
			return nil
		}
		return doc.Scenes
	})
}

// Open creates a synchronizer for name bound to view and registers it. An
// already open document is rebound to view and reset from storage.
func (s *Service) Open(name string, view synchronizer.View, opts ...synchronizer.Option) (*synchronizer.Synchronizer, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	name = strings.TrimSpace(name)
	if _, err := s.Persistence.Document(name); err != nil {
		return nil, err
	}
	if existing, ok := s.registry().Get(name); ok {
		existing.Bind(view)
		existing.Reset(s.Outline(name).Outline())
		return existing, nil
	}
	syn := synchronizer.New(s.Outline(name), view, opts...)
	s.registry().Register(name, syn)
	return syn, nil
}

// Opened returns the synchronizer registered for name.
func (s *Service) Opened(name string) (*synchronizer.Synchronizer, bool) {
	return s.registry().Get(strings.TrimSpace(name))
}

// OpenDocuments lists the names with a registered synchronizer.
func (s *Service) OpenDocuments() []string {
	return registry.Keys(s.registry())
}

// Close detaches and unregisters the synchronizer for name.
func (s *Service) Close(name string) {
	if syn, ok := s.registry().Unregister(strings.TrimSpace(name)); ok {
		syn.Detach()
	}
}

// Refresh runs an incremental update for name, if it is open.
func (s *Service) Refresh(name string) (synchronizer.Result, bool) {
	syn, ok := s.Opened(name)
	if !ok {
		return synchronizer.Result{}, false
	}
	return syn.Update(), true
}

// RefreshAll resets every open synchronizer from storage.
func (s *Service) RefreshAll() {
	s.registry().Each(func(name string, syn *synchronizer.Synchronizer) {
		syn.Reset(s.Outline(name).Outline())
	})
}

// HandleEvent routes a persistence event to the affected synchronizers.
func (s *Service) HandleEvent(ev store.Event) {
	switch ev.Type {
	case store.EventDocumentChanged:
		s.Refresh(ev.Document)
	default:
		s.RefreshAll()
	}
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

func (s *Service) registry() *registry.Registry[string, *synchronizer.Synchronizer] {
	s.once.Do(func() {
		s.open = registry.New[string, *synchronizer.Synchronizer]()
	})
	return s.open
}
