// Package cmd implements the CLI application to manage an inventory.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/etnz/kil"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "line items")
	c.Register(&removeCmd{}, "line items")

	c.Register(&receiveCmd{}, "stock")
	c.Register(&useCmd{}, "stock")
	c.Register(&orderCmd{}, "stock")
	c.Register(&costCmd{}, "stock")

	c.Register(&listCmd{}, "reports")
	c.Register(&logCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")

	c.Register(&importCmd{}, "files")
	c.Register(&exportCmd{}, "files")
	c.Register(&fmtCmd{}, "files")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataFile   = flag.String("file", "", "Path to the inventory data file (*.kildata). Overrides $"+EnvFile+" and the config file.")
	configFile = flag.String("config", "kil.jsonc", "Path to the optional configuration file (JSON with comments)")
	verbose    = flag.Bool("v", false, "verbose logging")
)

// stdout and stderr are the command outputs, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// cfg is the resolved configuration, set by Init.
var cfg = defaultConfig()

// Init resolves the configuration from the command line flags, the
// environment (and .env file) and the config file, then sets up the logger.
// It must be called after flag.Parse().
func Init() error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}
	c, err := LoadConfig(*configFile, os.LookupEnv)
	if err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			c.File = *dataFile
		case "v":
			c.Verbose = *verbose
		}
	})
	if err := c.validate(); err != nil {
		return err
	}
	cfg = c
	if err := initLogger(cfg.Verbose); err != nil {
		return err
	}
	logger.Debug("config.resolved",
		zap.String("file", cfg.File),
		zap.String("sort", cfg.Sort),
		zap.String("currency", cfg.Currency))
	return nil
}

// openStore loads the inventory data file. A missing file is an empty inventory.
func openStore(ctx context.Context) (*kil.Store, error) {
	s, err := kil.LoadFile(ctx, cfg.File)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("store.missing", zap.String("file", cfg.File))
		return kil.NewStore(), nil
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("store.loaded", zap.String("file", cfg.File), zap.Int("lineItems", s.Len()))
	return s, nil
}

// saveStore writes the inventory back to the data file.
func saveStore(ctx context.Context, s *kil.Store) error {
	if err := kil.SaveFile(ctx, cfg.File, s); err != nil {
		return err
	}
	logger.Debug("store.saved", zap.String("file", cfg.File), zap.Int("lineItems", s.Len()))
	return nil
}

// failure prints err and returns the matching exit status: invalid user
// input is a usage error, anything else a failure.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if errors.Is(err, kil.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// usage prints a flag error and returns subcommands.ExitUsageError.
func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
