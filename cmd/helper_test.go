package cmd

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/kil"
	"github.com/google/subcommands"
)

// setup points the configuration to a fresh data file in a temporary
// directory, and returns its path.
func setup(t *testing.T) string {
	t.Helper()
	old := cfg
	t.Cleanup(func() { cfg = old })
	cfg = defaultConfig()
	cfg.File = filepath.Join(t.TempDir(), "inventory.kildata")
	return cfg.File
}

// run executes a subcommand with args and returns its combined output.
func run(t *testing.T, c subcommands.Command, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: cannot parse flags: %v", c.Name(), args, err)
	}

	var out bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &out
	defer func() { stdout, stderr = oldOut, oldErr }()

	status := c.Execute(context.Background(), f)
	return out.String(), status
}

// mustRun is like run but fails the test unless the command succeeds.
func mustRun(t *testing.T, c subcommands.Command, args ...string) string {
	t.Helper()
	out, status := run(t, c, args...)
	if status != subcommands.ExitSuccess {
		t.Fatalf("%s %v = %v, want success; output:\n%s", c.Name(), args, status, out)
	}
	return out
}

// load reads the data file.
func load(t *testing.T) *kil.Store {
	t.Helper()
	s, err := kil.LoadFile(context.Background(), cfg.File)
	if err != nil {
		t.Fatalf("LoadFile() unexpected error: %v", err)
	}
	return s
}

// names returns the comma separated names of the line items of s.
func names(s *kil.Store) string {
	var list []string
	for _, item := range s.All() {
		list = append(list, item.Name())
	}
	return strings.Join(list, ",")
}
