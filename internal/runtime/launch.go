// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/runwith/runwith/pkg/runconfig"
)

// defaultInterpreter runs scripts that do not name an interpreter.
const defaultInterpreter = "sh"

// launch is the resolved, runtime-independent form of a configuration.
type launch struct {
	// Program is the executable; empty for scripts run by the virtual runtime.
	Program string
	// Args are the program arguments after tokenization.
	Args []string
	// Script is the script body for script configurations.
	Script string
	// Interpreter runs Script in native mode.
	Interpreter string
	Dir         string
	Env         map[string]string
}

// resolveLaunch turns a configuration into a launch. Program arguments are
// tokenized with shell quoting and passed on without expansion.
func resolveLaunch(ctx *ExecutionContext) (*launch, error) {
	switch cfg := ctx.Configuration.(type) {
	case *runconfig.ApplicationConfiguration:
		if cfg.EntryPoint == "" {
			return nil, fmt.Errorf("configuration %q has no entry point", cfg.Name())
		}
		env := buildEnv(cfg.PassParentEnv, environment(cfg))
		env[ExecutionIDEnvVar] = ctx.ExecutionID
		args, err := runconfig.Fields(cfg.Arguments)
		if err != nil {
			return nil, err
		}
		return &launch{Program: cfg.EntryPoint, Args: args, Dir: cfg.WorkingDirectory, Env: env}, nil

	case *runconfig.ScriptConfiguration:
		if cfg.Opts == nil || cfg.Opts.Script == "" {
			return nil, fmt.Errorf("configuration %q has no script", cfg.Name())
		}
		env := buildEnv(true, environment(cfg))
		env[ExecutionIDEnvVar] = ctx.ExecutionID
		args, err := runconfig.Fields(cfg.Opts.Arguments)
		if err != nil {
			return nil, err
		}
		interpreter := cfg.Opts.Interpreter
		if interpreter == "" {
			interpreter = defaultInterpreter
		}
		return &launch{
			Script:      cfg.Opts.Script,
			Interpreter: interpreter,
			Args:        args,
			Dir:         cfg.Opts.WorkingDirectory,
			Env:         env,
		}, nil

	case nil:
		return nil, fmt.Errorf("%w: no configuration", ErrNotExecutable)

	default:
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotExecutable, cfg.Name(), cfg.Type())
	}
}

// environment returns the configuration's own variables, if it carries any.
func environment(cfg runconfig.Configuration) map[string]string {
	if ec, ok := cfg.(runconfig.EnvCarrier); ok {
		return ec.Environment()
	}
	return nil
}

// command builds the host process for l. Scripts are passed to the
// interpreter with -c; the configuration name becomes $0.
func (l *launch) command(ctx context.Context, name string) *exec.Cmd {
	var cmd *exec.Cmd
	if l.Script != "" {
		args := append([]string{"-c", l.Script, name}, l.Args...)
		cmd = exec.CommandContext(ctx, l.Interpreter, args...)
	} else {
		cmd = exec.CommandContext(ctx, l.Program, l.Args...)
	}
	cmd.Dir = l.Dir
	cmd.Env = envToSlice(l.Env)
	return cmd
}
