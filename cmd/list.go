package cmd

import (
	"context"
	"flag"

	"github.com/etnz/kil"
	"github.com/etnz/kil/renderer"
	"github.com/google/subcommands"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	filter string
	sort   string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the line items, filtered and sorted" }
func (*listCmd) Usage() string {
	return `kil list [-f <filter>] [-sort <column>[:desc]]

  Displays the line items whose name, stock, or next shipment date contains
  the filter text, ignoring case. The filter "none" selects the line items
  without a scheduled shipment.

  Columns are: insertion, name, stock, shipment.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "f", "", "Filter text")
	f.StringVar(&c.sort, "sort", "", "Sort column and direction, defaults to the configured sort")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := project(ctx, c.filter, c.sort)
	if err != nil {
		return failure(err)
	}
	defer p.Close()
	printMarkdown(renderer.RenderItems(renderer.NewItems(p.Projection, p.Total())))
	return subcommands.ExitSuccess
}

// projection is a kil.Projection that remembers the size of its store.
type projection struct {
	*kil.Projection
	store *kil.Store
}

func (p projection) Total() int { return p.store.Len() }

// project opens the inventory and projects it. An empty sort is the configured one.
func project(ctx context.Context, filter, sort string) (projection, error) {
	if sort == "" {
		sort = cfg.Sort
	}
	by, err := kil.ParseSort(sort)
	if err != nil {
		return projection{}, err
	}
	s, err := openStore(ctx)
	if err != nil {
		return projection{}, err
	}
	p := kil.NewProjection(s)
	p.SetSort(by)
	p.SetFilter(filter)
	return projection{Projection: p, store: s}, nil
}
