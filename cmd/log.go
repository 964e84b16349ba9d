package cmd

import (
	"context"
	"flag"

	"github.com/etnz/kil"
	"github.com/etnz/kil/renderer"
	"github.com/google/subcommands"
)

// logCmd holds the flags for the 'log' subcommand.
type logCmd struct {
	name string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the history of deliveries, consumptions and orders" }
func (*logCmd) Usage() string {
	return `kil log [-n <name>]

  Displays the history of every line item, or of a single one, oldest first.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Line item name, all line items if empty")
}

func (c *logCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore(ctx)
	if err != nil {
		return failure(err)
	}
	title, items := "History", s.All()
	if c.name != "" {
		item, err := lookup(s, c.name)
		if err != nil {
			return failure(err)
		}
		title, items = "History of "+item.Name(), []*kil.LineItem{item}
	}
	printMarkdown(renderer.LogMarkdown(title, renderer.NewLog(items)))
	return subcommands.ExitSuccess
}
