package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/outline/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		fmt.Fprintln(out, store.ConfigPathEnv, "found on env, using", override)
	} else {
		fmt.Fprintln(out, store.ConfigPathEnv, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if f, ok := n.Config.(interface{ ConfigFile() string }); ok && f.ConfigFile() != "" {
		fmt.Fprintln(out, "Config.file:", f.ConfigFile())
	}
	fmt.Fprintln(out, "Config.path:", n.Config.BasePath())

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	fmt.Fprintf(out, "Documents:\n")
	found := 0
	for _, name := range n.Persistence.Documents(ctx) {
		doc, err := n.Persistence.Document(name)
		if err != nil {
			fmt.Fprintf(out, "  %s (%v)\n", name, err)
		} else {
			fmt.Fprintf(out, "  %s, %d scenes\n", name, len(doc.Scenes))
		}
		found++
	}

	if found == 0 {
		fmt.Fprintf(out, "  %s\n", "no documents")
	}

	return nil
}
