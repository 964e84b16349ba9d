package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/kil"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	replace bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import line items from a .kildata file" }
func (*importCmd) Usage() string {
	return `kil import [-replace] <file.kildata>

  Appends the line items of a file to the inventory. The import is
  all-or-nothing: an invalid file, or a name already in the inventory, leaves
  the inventory unchanged. With -replace the inventory is replaced instead.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.replace, "replace", false, "replace the inventory instead of appending to it")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("import requires exactly one file argument")
	}
	path := f.Arg(0)

	var s *kil.Store
	var err error
	if c.replace {
		s, err = kil.LoadFile(ctx, path)
	} else if s, err = openStore(ctx); err == nil {
		err = kil.ImportFile(ctx, path, s)
	}
	if err != nil {
		return failure(err)
	}

	if err := saveStore(ctx, s); err != nil {
		return failure(err)
	}
	logger.Info("import.done", zap.String("from", path), zap.Bool("replace", c.replace), zap.Int("lineItems", s.Len()))
	fmt.Fprintf(stdout, "Imported %s, the inventory has %d line items\n", path, s.Len())
	return subcommands.ExitSuccess
}
