// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/runwith/runwith/pkg/runconfig"
)

type (
	// Engine executes a configuration with a named executor and blocks until
	// the launched process finishes.
	Engine interface {
		Execute(ctx context.Context, cfg runconfig.Configuration, executor ExecutorID) error
	}

	// Dispatcher is the Engine backed by a runtime Registry.
	Dispatcher struct {
		registry *Registry
		logger   *log.Logger
		stdout   io.Writer
		stderr   io.Writer
		stdin    io.Reader
	}

	// DispatcherOption configures a Dispatcher.
	DispatcherOption func(*Dispatcher)
)

// WithLogger sets the dispatcher's logger.
func WithLogger(logger *log.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithStdio replaces the process streams handed to launched configurations.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) DispatcherOption {
	return func(d *Dispatcher) {
		d.stdin = stdin
		d.stdout = stdout
		d.stderr = stderr
	}
}

// NewDispatcher creates a Dispatcher over registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		stdin:    os.Stdin,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute resolves the runtime for executor, validates cfg against it and
// runs it to completion. A non-zero exit is returned as *ExitError.
func (d *Dispatcher) Execute(ctx context.Context, cfg runconfig.Configuration, executor ExecutorID) error {
	rt, err := d.registry.Get(executor)
	if err != nil {
		return err
	}
	if !rt.Available() {
		return fmt.Errorf("%w: %q", ErrExecutorUnavailable, executor)
	}

	execCtx := NewExecutionContext(ctx, cfg)
	execCtx.Stdout = d.stdout
	execCtx.Stderr = d.stderr
	execCtx.Stdin = d.stdin

	if err := rt.Validate(execCtx); err != nil {
		return fmt.Errorf("configuration %q cannot run with %s: %w", cfg.Name(), executor, err)
	}

	d.logger.Debug("launching configuration", "name", cfg.Name(), "executor", executor, "execution_id", execCtx.ExecutionID)
	result := rt.Execute(execCtx)
	d.logger.Debug("configuration finished", "name", cfg.Name(), "exit_code", result.ExitCode)

	return result.Err()
}
