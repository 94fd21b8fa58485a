// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"os/exec"
)

// NativeRuntime launches configurations as host child processes.
type NativeRuntime struct{}

// NewNativeRuntime creates a native runtime.
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return string(ExecutorRun)
}

// Available always returns true; missing programs surface from Validate.
func (r *NativeRuntime) Available() bool {
	return true
}

// Validate checks that the program or interpreter can be found.
func (r *NativeRuntime) Validate(ctx *ExecutionContext) error {
	l, err := resolveLaunch(ctx)
	if err != nil {
		return err
	}
	return lookPath(l)
}

// Execute runs the configuration and waits for it to exit.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	l, err := resolveLaunch(ctx)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	cmd := l.command(execContext(ctx), ctx.Configuration.Name())
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr
	cmd.Stdin = ctx.Stdin

	if err := cmd.Run(); err != nil {
		res := resultFromError(err)
		if res.Error != nil {
			res.Error = fmt.Errorf("failed to execute %q: %w", ctx.Configuration.Name(), err)
		}
		return res
	}
	return &Result{}
}

func lookPath(l *launch) error {
	program := l.Program
	if l.Script != "" {
		program = l.Interpreter
	}
	if _, err := exec.LookPath(program); err != nil {
		return fmt.Errorf("cannot find %q: %w", program, err)
	}
	return nil
}

func execContext(ctx *ExecutionContext) context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}
