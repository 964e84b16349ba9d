package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/kil"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the data file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `kil fmt

  Validates the data file and writes it back in its canonical form: one line
  item per line, properties in a fixed order. Useful after a manual edit.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := kil.LoadFile(ctx, cfg.File)
	if err != nil {
		return failure(err)
	}
	if err := saveStore(ctx, s); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Formatted %s, %d line items\n", cfg.File, s.Len())
	return subcommands.ExitSuccess
}
