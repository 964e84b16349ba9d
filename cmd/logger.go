package cmd

import (
	"fmt"

	"go.uber.org/zap"
)

// logger is silent until Init.
var logger = zap.NewNop()

// initLogger logs warnings and errors as JSON, or everything in a human
// readable form when verbose.
func initLogger(verbose bool) error {
	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		c = zap.NewDevelopmentConfig()
	}
	c.OutputPaths = []string{"stderr"}
	l, err := c.Build()
	if err != nil {
		return fmt.Errorf("cannot build logger: %w", err)
	}
	logger = l
	return nil
}

// Sync flushes the logger. Call it before exiting.
func Sync() { _ = logger.Sync() }
