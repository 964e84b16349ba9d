package cmd

import (
	"context"
	"flag"

	"github.com/etnz/kil"
	"github.com/google/subcommands"
)

// receiveCmd holds the flags for the 'receive' subcommand.
type receiveCmd struct {
	name   string
	amount int
}

func (*receiveCmd) Name() string     { return "receive" }
func (*receiveCmd) Synopsis() string { return "record a delivery" }
func (*receiveCmd) Usage() string {
	return `kil receive -n <name> -a <amount>

  Adds the delivered amount to the stock. The pending shipment, if any, is
  considered fulfilled whatever the amount.
`
}

func (c *receiveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Line item name")
	f.IntVar(&c.amount, "a", 0, "Amount received")
}

func (c *receiveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return mutate(ctx, c.name, kil.Receive{Amount: c.amount})
}
