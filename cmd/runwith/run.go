// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/runwith/runwith/internal/config"
	"github.com/runwith/runwith/internal/issue"
	"github.com/runwith/runwith/internal/registry"
	"github.com/runwith/runwith/internal/runtime"
	"github.com/runwith/runwith/internal/transient"
	"github.com/runwith/runwith/pkg/runconfig"
)

type runOptions struct {
	inPlace      bool
	executor     string
	registryPath string
}

func newRunCommand(app *App) *cobra.Command {
	opts := &runOptions{}

	runCmd := &cobra.Command{
		Use:   "run <file> [configuration]",
		Short: "Run a configuration with a file path appended to its arguments",
		Long: `Run a configuration with the absolute path of <file> appended, double
quoted, to its program arguments.

Without a configuration name the eligible configurations are listed and the
choice (number or name) is read from standard input.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			return app.run(cmd.Context(), args[0], name, opts)
		},
	}

	runCmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "run the original configuration and restore its arguments afterwards")
	runCmd.Flags().StringVar(&opts.executor, "executor", "", "executor to use: run, virtual or interactive (default from config)")
	runCmd.Flags().StringVar(&opts.registryPath, "registry", "", "run configurations file (default from config)")

	return runCmd
}

func (a *App) run(ctx context.Context, filePath, name string, opts *runOptions) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return a.report(err, nil)
	}
	logger := a.newLogger(cfg)

	executor := cfg.Executor
	if opts.executor != "" {
		executor = config.ExecutorName(opts.executor)
		if valid, errs := executor.IsValid(); !valid {
			return a.report(newServiceError(errs[0], issue.ExecutorNotAvailableId), cfg)
		}
	}
	mode, err := transient.ParseMode(cfg.Mode.String())
	if err != nil {
		return a.report(err, cfg)
	}
	if opts.inPlace {
		mode = transient.ModeInPlace
	}

	file, err := resolveFile(filePath)
	if err != nil {
		return a.report(err, cfg)
	}

	reg, err := a.openRegistry(cfg, opts.registryPath)
	if err != nil {
		return a.report(err, cfg)
	}
	eligible := registry.Eligible(reg, cfg.EligibleTypes)
	if len(eligible) == 0 {
		return a.report(newServiceError(errNoConfigurations, issue.NoConfigurationsId), cfg)
	}

	selected, err := a.choose(eligible, name)
	if err != nil {
		return a.report(err, cfg)
	}

	coordinator := transient.New(reg, a.engine(logger), transient.WithLogger(logger.WithPrefix("transient")))
	tx, err := coordinator.Run(ctx, transient.Request{
		Configuration: selected,
		File:          file,
		Mode:          mode,
		Executor:      runtime.ExecutorID(executor),
	})
	if err != nil {
		return a.report(&ExitError{Code: 1, Err: failureError(err, cfg.UI.Verbose)}, cfg)
	}

	if tx.ExecErr != nil {
		return a.report(classifyExecError(tx.ExecErr), cfg)
	}

	logger.Debug("run finished", "configuration", tx.Target().Name(), "mode", tx.Mode, "history", tx.History)
	fmt.Fprintln(a.stderr, SuccessStyle.Render("✓")+" "+CmdStyle.Render(tx.Target().Name())+" finished")
	return nil
}

// failureError attaches the catalog entry for a failed transaction. Verbose
// output also names the underlying cause.
func failureError(err error, verbose bool) error {
	id := issue.UnsupportedConfigurationId
	var fe *transient.FailureError
	if errors.As(err, &fe) {
		if fe.Reason == transient.ReasonDirectory {
			id = issue.DirectoryNotSupportedId
		}
		if verbose && fe.Cause != nil {
			err = fmt.Errorf("%w (cause: %w)", err, fe.Cause)
		}
	}
	return newServiceError(err, id)
}

// classifyExecError maps an execution outcome to the error returned by the command.
func classifyExecError(err error) error {
	var exitErr *runtime.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: int(exitErr.Code)}
	}
	if errors.Is(err, runtime.ErrExecutorNotFound) || errors.Is(err, runtime.ErrExecutorUnavailable) {
		return &ExitError{Code: 1, Err: newServiceError(err, issue.ExecutorNotAvailableId)}
	}
	return &ExitError{Code: 1, Err: newServiceError(err, issue.ExecutionFailedId)}
}

// choose picks the configuration named name, or asks for one on stdin when
// name is empty. The prompt reads one line at a time so input after the
// selection stays available to the launched program.
func (a *App) choose(eligible []runconfig.Configuration, name string) (runconfig.Configuration, error) {
	if name == "" {
		in := &lineReader{r: a.stdin}
		if in.atEOF() {
			return nil, newServiceError(errors.New("no configuration selected"), issue.ConfigurationNotFoundId)
		}

		options := make([]huh.Option[string], len(eligible))
		for i, c := range eligible {
			options[i] = huh.NewOption(c.Name(), c.Name())
		}
		sel := huh.NewSelect[string]().
			Title("Select a configuration").
			Options(options...).
			Value(&name)
		form := huh.NewForm(huh.NewGroup(sel)).
			WithAccessible(true).
			WithInput(in).
			WithOutput(a.stderr)
		if err := form.Run(); err != nil {
			return nil, fmt.Errorf("failed to read selection: %w", err)
		}
	}

	for _, c := range eligible {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, newServiceError(fmt.Errorf("%w: %q", registry.ErrNotFound, name), issue.ConfigurationNotFoundId)
}

// lineReader returns at most one line per Read and never reads past it.
type lineReader struct {
	r       io.Reader
	pending []byte
	b       [1]byte
}

// atEOF reports whether no input is left, keeping the probed byte for Read.
func (l *lineReader) atEOF() bool {
	if len(l.pending) > 0 {
		return false
	}
	for {
		n, err := l.r.Read(l.b[:])
		if n == 1 {
			l.pending = append(l.pending, l.b[0])
			return false
		}
		if err != nil {
			return true
		}
	}
}

func (l *lineReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		var c byte
		if len(l.pending) > 0 {
			c, l.pending = l.pending[0], l.pending[1:]
		} else {
			m, err := l.r.Read(l.b[:])
			if m == 0 {
				if err == nil {
					continue
				}
				return n, err
			}
			c = l.b[0]
		}
		p[n] = c
		n++
		if c == '\n' {
			break
		}
	}
	return n, nil
}

// resolveFile turns a command-line path into the absolute file reference
// injected into the configuration.
func resolveFile(path string) (transient.File, error) {
	abs, err := filepath.Abs(path)
	if err == nil {
		var info os.FileInfo
		if info, err = os.Stat(abs); err == nil {
			return transient.File{Path: abs, Name: filepath.Base(abs), IsDir: info.IsDir()}, nil
		}
	}
	return transient.File{}, issue.NewErrorContext().
		WithOperation("resolve file").
		WithResource(path).
		WithSuggestion("Check that the file exists").
		Wrap(err).
		BuildError()
}

// report renders the issue attached to err, if any, and returns err.
func (a *App) report(err error, cfg *config.Config) error {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		logger := a.newLogger(config.DefaultConfig())
		renderServiceError(a.stderr, svcErr, glamourStyle(cfg), logger)
	}
	return err
}
