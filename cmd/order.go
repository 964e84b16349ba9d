package cmd

import (
	"context"
	"flag"

	"github.com/etnz/kil"
	"github.com/etnz/kil/date"
	"github.com/google/subcommands"
)

// orderCmd holds the flags for the 'order' subcommand.
type orderCmd struct {
	name   string
	date   string
	amount int
}

func (*orderCmd) Name() string     { return "order" }
func (*orderCmd) Synopsis() string { return "schedule the next shipment" }
func (*orderCmd) Usage() string {
	return `kil order -n <name> -d <date> -a <amount>

  Schedules the next shipment of a line item, replacing the pending one.
  Dates are YYYY-MM-DD or relative to today: 0d, +3d, +2w, +1m, +1y.
`
}

func (c *orderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Line item name")
	f.StringVar(&c.date, "d", "", "Expected shipment date")
	f.IntVar(&c.amount, "a", 0, "Amount expected")
}

func (c *orderCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.date == "" {
		return usage("-d is required")
	}
	on, err := date.ParseRelative(c.date, date.Today())
	if err != nil {
		return usage("invalid date: %v", err)
	}
	return mutate(ctx, c.name, kil.Order{Date: on, Expected: c.amount})
}
