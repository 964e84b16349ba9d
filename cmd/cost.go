package cmd

import (
	"context"
	"flag"

	"github.com/etnz/kil"
	"github.com/google/subcommands"
)

// costCmd holds the flags for the 'cost' subcommand.
type costCmd struct {
	name     string
	price    string
	currency string
}

func (*costCmd) Name() string     { return "cost" }
func (*costCmd) Synopsis() string { return "set the unit cost of a line item" }
func (*costCmd) Usage() string {
	return `kil cost -n <name> -p <price> [-c <currency>]

  Sets the cost of a single unit, used by the valuation report.
`
}

func (c *costCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Line item name")
	f.StringVar(&c.price, "p", "", "Unit price in major units, e.g. 12.50")
	f.StringVar(&c.currency, "c", "", "Currency code, defaults to the configured currency")
}

func (c *costCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.price == "" {
		return usage("-p is required")
	}
	currency := c.currency
	if currency == "" {
		currency = cfg.Currency
	}
	cost, err := kil.ParseMoney(c.price, currency)
	if err != nil {
		return failure(err)
	}
	return mutate(ctx, c.name, kil.Price{Cost: cost})
}
