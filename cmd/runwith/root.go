// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/runwith/runwith/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "runwith",
		Short: "Run a configuration once with a file path appended to its arguments",
		Long: TitleStyle.Render("runwith") + SubtitleStyle.Render(" - run a configuration with a file path") + `

runwith launches one of your project's run configurations with the path of a
file appended to its program arguments, leaving the configuration itself
unchanged. By default a temporary copy named "<name> (with <file>)" is run;
with --in-place the original is run and its arguments restored afterwards.

Run configurations are read from runconfigs.cue (or runconfigs.toml).

` + SubtitleStyle.Render("Examples:") + `
  runwith list                          List the configurations that can be used
  runwith run src/main.go server        Run 'server' with src/main.go appended
  runwith run notes.txt                 Choose the configuration interactively
  runwith run data.csv import --in-place
  runwith config show                   Show the effective configuration`,
		SilenceUsage: true,
	}

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/runwith/config.cue)")

	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the resulting status. It is called by main.main.
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// handleError prints command errors. A bare exit status from the launched
// program is not repeated since the program already reported its failure.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(a.verbose))
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
