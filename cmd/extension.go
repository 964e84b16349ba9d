package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"go.uber.org/zap"
)

// Environment variables read by the configuration, and passed to extensions.
const (
	EnvFile     = "KIL_FILE"
	EnvSort     = "KIL_SORT"
	EnvCurrency = "KIL_CURRENCY"
	EnvVerbose  = "KIL_VERBOSE"
)

// RunExtension attempts to find and execute an external kil-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "kil-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		logger.Debug("extension.missing", zap.String("name", name), zap.Error(err))
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	// Pass the resolved configuration as environment variables.
	cmd.Env = append(os.Environ(),
		EnvFile+"="+cfg.File,
		EnvSort+"="+cfg.Sort,
		EnvCurrency+"="+cfg.Currency,
		EnvVerbose+"="+strconv.FormatBool(cfg.Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
