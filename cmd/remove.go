package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// removeCmd holds the flags for the 'remove' subcommand.
type removeCmd struct {
	name string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a line item from the inventory" }
func (*removeCmd) Usage() string {
	return `kil remove -n <name>

  Deletes a line item and its history.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Line item name")
}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return usage("-n is required")
	}
	s, err := openStore(ctx)
	if err != nil {
		return failure(err)
	}
	item, err := lookup(s, c.name)
	if err != nil {
		return failure(err)
	}
	if err := s.Remove(item); err != nil {
		return failure(err)
	}
	if err := saveStore(ctx, s); err != nil {
		return failure(err)
	}
	logger.Info("item.removed", zap.String("name", c.name))
	fmt.Fprintf(stdout, "Removed %q\n", c.name)
	return subcommands.ExitSuccess
}
