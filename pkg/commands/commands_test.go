package commands

import (
	"bytes"
	"flag"
	"strings"
	"testing"
)

func TestNewRegistersCommands(t *testing.T) {
	root := New()
	for _, name := range []string{"import", "get", "sync", "watch", "ui", "tags", "info", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Fatalf("expected %s to be registered: %v", name, err)
		}
	}
	if root.PersistentFlags().Lookup("json") == nil {
		t.Fatalf("expected --json on the root command")
	}
	if root.PersistentFlags().Lookup("v") == nil {
		t.Fatalf("expected glog verbosity flag on the root command")
	}
}

func TestVersionShort(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--short"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "dev") {
		t.Fatalf("expected version in output, got %q", out.String())
	}
}

func TestLogFlagsReachGlog(t *testing.T) {
	root := New()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--v=3", "version", "--short"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	defer flag.Set("v", "0")
	if !flag.CommandLine.Parsed() {
		t.Fatalf("expected the log flag set to be marked parsed")
	}
	if got := flag.Lookup("v").Value.String(); got != "3" {
		t.Fatalf("expected glog verbosity 3, got %q", got)
	}
}
