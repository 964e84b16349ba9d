package cmd

import (
	"context"
	"flag"

	"github.com/etnz/kil"
	"github.com/google/subcommands"
)

// useCmd holds the flags for the 'use' subcommand.
type useCmd struct {
	name   string
	amount int
}

func (*useCmd) Name() string     { return "use" }
func (*useCmd) Synopsis() string { return "record a consumption" }
func (*useCmd) Usage() string {
	return `kil use -n <name> -a <amount>

  Removes the used amount from the stock. Using more than the stock fails.
`
}

func (c *useCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Line item name")
	f.IntVar(&c.amount, "a", 0, "Amount used")
}

func (c *useCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return mutate(ctx, c.name, kil.Use{Amount: c.amount})
}
