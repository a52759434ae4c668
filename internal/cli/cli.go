package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/causalcore/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("causalcore", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
causalcore - A causal-invalidation graph engine.

Keeps a directed graph of facts and their dependents, consumes fact events
from a socket.io stream and reports which facts each change invalidates.

Usage:
  causalcore [options] [CONFIG_PATH...]

Arguments:
  CONFIG_PATH
    Path to a single .hcl file or a directory containing .hcl files.
    Without one, the service runs with defaults and no event stream.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the config file or directory.")
	cFlag := flagSet.String("c", "", "Path to the config file or directory (shorthand).")
	httpPortFlag := flagSet.Int("http-port", 8080, "Port for the HTTP API and health check. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Maximum goroutines per propagation level and analytic. 0 picks a default from the CPU count.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	if *configFlag != "" {
		paths = append(paths, *configFlag)
	}
	if *cFlag != "" {
		paths = append(paths, *cFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Config paths determined.", "paths", paths)

	cfg, err := app.NewConfig(app.Config{
		ConfigPaths: paths,
		LogFormat:   strings.ToLower(*logFormatFlag),
		LogLevel:    strings.ToLower(*logLevelFlag),
		HTTPPort:    *httpPortFlag,
		WorkerCount: *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
