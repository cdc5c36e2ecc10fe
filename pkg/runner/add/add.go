package add

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/printers"
	"tableflip.dev/outline/pkg/scene"
	"tableflip.dev/outline/pkg/store"
)

// Add imports a parsed screenplay outline from a JSON file.
type Add struct {
	// File is the JSON document to read, "-" for stdin.
	File string
	// Name overrides the document name found in the file.
	Name string

	Persistence store.Persistence
	Out         io.Writer
	In          io.Reader
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not import, no persistence")
	}
	doc, err := ReadDocument(n.File, n.In)
	if err != nil {
		return err
	}
	if n.Name != "" {
		doc.Name = n.Name
	}
	if strings.TrimSpace(doc.Name) == "" {
		doc.Name = NameFromPath(n.File)
	}
	if doc.Name == "" {
		return errors.New("document name required, use --name")
	}

	svc := &app.Service{Persistence: n.Persistence}
	if err := svc.Import(doc); err != nil {
		return err
	}

	pp := printers.New(n.Out, false)
	pp.TitleWithCount(doc.DisplayTitle(), len(doc.Scenes))
	_, _ = fmt.Fprintf(pp.Out, "imported as %q\n", doc.Name)
	return nil
}

// ReadDocument decodes the document at path, or from in when path is "-".
func ReadDocument(path string, in io.Reader) (*scene.Document, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return nil, errors.New("a document file is required")
	case "-":
		if in == nil {
			in = os.Stdin
		}
		data, err = io.ReadAll(in)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return scene.UnmarshalDocument(data)
}

// NameFromPath derives a document name from a file name.
func NameFromPath(path string) string {
	if path == "" || path == "-" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
