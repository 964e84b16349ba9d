package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/kil"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// errNoData is returned when exporting an empty inventory.
var errNoData = errors.New("no data to export")

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the inventory to a .kildata file" }
func (*exportCmd) Usage() string {
	return `kil export <file.kildata>

  Writes every line item, in order, to a file that import can read back.
  An empty inventory is not exported.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("export requires exactly one file argument")
	}
	path := f.Arg(0)
	if err := kil.CheckExtension(path); err != nil {
		return failure(err)
	}
	s, err := openStore(ctx)
	if err != nil {
		return failure(err)
	}
	if s.Len() == 0 {
		return failure(errNoData)
	}
	if err := kil.SaveFile(ctx, path, s); err != nil {
		return failure(err)
	}
	logger.Info("export.done", zap.String("to", path), zap.Int("lineItems", s.Len()))
	fmt.Fprintf(stdout, "Exported %d line items to %s\n", s.Len(), path)
	return subcommands.ExitSuccess
}
