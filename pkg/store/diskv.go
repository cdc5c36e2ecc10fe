package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/outline/pkg/scene"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("store: document not found")

// Persistence defines the persistence contract for parsed screenplay documents.
type Persistence interface {
	Documents(ctx context.Context) []string
	Document(name string) (*scene.Document, error)
	Store(doc *scene.Document) error
	Delete(name string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	documentsDir = "documents"
	documentExt  = ".json"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Documents(ctx context.Context) []string {
	names := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		name, err := fromKey(key)
		if err != nil {
			glog.Warningf("store: %s: %v", key, err)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *persistence) Document(name string) (*scene.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("store: document name required")
	}
	key := toKey(name)
	if !p.d.Has(key) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	val, err := p.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %q: %w", name, err)
	}
	doc, err := scene.UnmarshalDocument(val)
	if err != nil {
		return nil, fmt.Errorf("store: %q: %w", name, err)
	}
	doc.Name = name
	return doc, nil
}

func (p *persistence) Store(doc *scene.Document) error {
	if doc == nil {
		return errors.New("store: nil document")
	}
	name := strings.TrimSpace(doc.Name)
	if name == "" {
		return errors.New("store: document name required")
	}
	doc.Name = name
	if doc.Updated.IsZero() {
		doc.Updated = time.Now().UTC()
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(name), data)
}

func (p *persistence) Delete(name string) error {
	key := toKey(strings.TrimSpace(name))
	if !p.d.Has(key) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p.d.Erase(key)
}

func (p *persistence) documentsPath() string {
	return filepath.Join(p.basePath, documentsDir)
}

func (p *persistence) ensureDocumentsPath() error {
	if err := os.MkdirAll(p.documentsPath(), 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	return nil
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{documentsDir},
		FileName: key + documentExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, documentExt)
}

// toKey encodes a document name so any name is a safe file name.
func toKey(name string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(name))
}

func fromKey(key string) (string, error) {
	name, err := base64.RawURLEncoding.DecodeString(key)
	if err != nil {
		return "", fmt.Errorf("store: decode key: %w", err)
	}
	return string(name), nil
}
