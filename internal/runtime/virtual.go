// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// execAllArgs executes the positional parameters as a command line. It is
// how application configurations run inside the virtual shell.
const execAllArgs = `"$@"`

// VirtualRuntime interprets configurations with the embedded mvdan/sh shell.
// Scripts run in-process; external programs are still started by the
// interpreter's exec handler.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return string(ExecutorVirtual)
}

// Available always returns true; the interpreter is built in.
func (r *VirtualRuntime) Available() bool {
	return true
}

// Validate checks that the script parses. Application entry points are not
// resolved here so that interpreter builtins remain usable.
func (r *VirtualRuntime) Validate(ctx *ExecutionContext) error {
	l, err := resolveLaunch(ctx)
	if err != nil {
		return err
	}
	if _, err := parseScript(l); err != nil {
		return err
	}
	return nil
}

// Execute runs the configuration in the interpreter.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	l, err := resolveLaunch(ctx)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}
	prog, err := parseScript(l)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	params := l.Args
	if l.Script == "" {
		params = append([]string{l.Program}, l.Args...)
	}

	// "--" stops interp.Params from reading arguments like "-v" as shell options.
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(envToSlice(l.Env)...)),
		interp.StdIO(ctx.Stdin, ctx.Stdout, ctx.Stderr),
		interp.Params(append([]string{"--"}, params...)...),
	}
	if l.Dir != "" {
		opts = append(opts, interp.Dir(l.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	res := resultFromError(runner.Run(execContext(ctx), prog))
	if res.Error != nil {
		res.Error = fmt.Errorf("script execution failed: %w", res.Error)
	}
	return res
}

func parseScript(l *launch) (*syntax.File, error) {
	src := l.Script
	if src == "" {
		src = execAllArgs
	}
	prog, err := syntax.NewParser().Parse(strings.NewReader(src), "script")
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}
	return prog, nil
}
