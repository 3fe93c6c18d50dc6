package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/ctrldeploy/internal/app"
	"github.com/specialistvlad/ctrldeploy/internal/snapshot"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("ctrldeploy", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ctrldeploy - Builds a controller deployment definition from a deployment document.

Usage:
  ctrldeploy [options] [DEPLOYMENT_PATH]

Arguments:
  DEPLOYMENT_PATH
    Path to a controller .xml, .hcl, .yaml or .yml file, or a directory
    containing exactly one controller.* file.

Options:
`)
		flagSet.PrintDefaults()
	}

	vars := varsFlag{}
	deploymentFlag := flagSet.String("deployment", "", "Path to the deployment file or directory.")
	dFlag := flagSet.String("d", "", "Path to the deployment file or directory (shorthand).")
	outputFlag := flagSet.String("output", "text", "Output format. Options: 'text', 'json', 'yaml' or 'cbor'.")
	httpPortFlag := flagSet.Int("http-port", 0, "Port for the HTTP server (health, deployment, reload). 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.Var(vars, "var", "Set an HCL variable as name=value. May be repeated.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *deploymentFlag != "" {
		path = *deploymentFlag
	} else if *dFlag != "" {
		path = *dFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Deployment path determined.", "path", path)

	if path == "" {
		slog.Debug("No deployment path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	format, err := snapshot.ParseFormat(*outputFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid output: must be 'text', 'json', 'yaml' or 'cbor'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DeploymentPath: path,
		Output:         format,
		Vars:           vars,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
		HTTPPort:       *httpPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
