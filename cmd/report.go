package cmd

import (
	"context"
	"flag"

	"github.com/etnz/kil"
	"github.com/etnz/kil/date"
	"github.com/etnz/kil/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	date   string
	filter string
	sort   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the stock valuation and the pending shipments" }
func (*reportCmd) Usage() string {
	return `kil report [-d <date>] [-f <filter>] [-sort <column>[:desc]]

  Values the stock of each line item at its unit cost, totals the values per
  currency, and flags the shipments expected before the given date.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the report, YYYY-MM-DD or relative to today, e.g. +1w")
	f.StringVar(&c.filter, "f", "", "Filter text, as in the list command")
	f.StringVar(&c.sort, "sort", "", "Sort column and direction, defaults to the configured sort")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.ParseRelative(c.date, date.Today())
	if err != nil {
		return usage("invalid date: %v", err)
	}
	p, err := project(ctx, c.filter, c.sort)
	if err != nil {
		return failure(err)
	}
	defer p.Close()
	printMarkdown(renderer.RenderValuation(renderer.NewValuation(kil.NewReport(p.Items(), on))))
	return subcommands.ExitSuccess
}
