package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	name  string
	stock int
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new line item to the inventory" }
func (*addCmd) Usage() string {
	return `kil add -n <name> [-s <stock>]

  Appends a new line item. Names are unique and case-sensitive.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Line item name")
	f.IntVar(&c.stock, "s", 0, "Initial stock")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return usage("-n is required")
	}
	s, err := openStore(ctx)
	if err != nil {
		return failure(err)
	}
	if _, err := s.Add(c.name, c.stock); err != nil {
		return failure(err)
	}
	if err := saveStore(ctx, s); err != nil {
		return failure(err)
	}
	logger.Info("item.added", zap.String("name", c.name), zap.Int("stock", c.stock))
	fmt.Fprintf(stdout, "Added %q with %d in stock\n", c.name, c.stock)
	return subcommands.ExitSuccess
}
