package cmd

import (
	"context"
	"fmt"

	"github.com/etnz/kil"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// lookup finds a line item by name, or returns a kil.ErrNotFound error.
func lookup(s *kil.Store, name string) (*kil.LineItem, error) {
	item, ok := s.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: no line item named %q", kil.ErrNotFound, name)
	}
	return item, nil
}

// mutate applies m to the named line item of the inventory, saves it, and
// prints the new state of the line item.
func mutate(ctx context.Context, name string, m kil.Mutation) subcommands.ExitStatus {
	if name == "" {
		return usage("-n is required")
	}
	s, err := openStore(ctx)
	if err != nil {
		return failure(err)
	}
	item, err := lookup(s, name)
	if err != nil {
		return failure(err)
	}
	if err := s.Mutate(item, m); err != nil {
		return failure(err)
	}
	if err := saveStore(ctx, s); err != nil {
		return failure(err)
	}
	logger.Info("item.updated", zap.String("name", name), zap.String("command", string(m.What())))

	fmt.Fprintf(stdout, "%s: %d in stock", item.Name(), item.Stock())
	if next, ok := item.NextShipment(); ok {
		fmt.Fprintf(stdout, ", %d expected on %s", next.Expected, next.Date)
	}
	if cost, ok := item.UnitCost(); ok {
		fmt.Fprintf(stdout, ", %s per unit", cost)
	}
	fmt.Fprintln(stdout)
	return subcommands.ExitSuccess
}
