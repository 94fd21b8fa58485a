// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/runwith/runwith/pkg/runconfig"
)

// Executor identifiers.
const (
	ExecutorRun         ExecutorID = "run"
	ExecutorVirtual     ExecutorID = "virtual"
	ExecutorInteractive ExecutorID = "interactive"
)

var (
	// ErrExecutorNotFound is returned when no runtime is registered for an ExecutorID.
	ErrExecutorNotFound = errors.New("executor not registered")
	// ErrExecutorUnavailable is returned when a registered runtime cannot run on this system.
	ErrExecutorUnavailable = errors.New("executor not available")
	// ErrNotExecutable is returned for configurations no runtime can launch directly.
	ErrNotExecutable = errors.New("configuration is not directly executable")
)

type (
	// ExecutorID names a registered runtime.
	ExecutorID string

	// ExecutionContext carries everything a runtime needs for one launch.
	ExecutionContext struct {
		Context       context.Context
		Configuration runconfig.Configuration
		Stdout        io.Writer
		Stderr        io.Writer
		Stdin         io.Reader
		// ExecutionID is unique per launch and exported to the child as RUNWITH_EXECUTION_ID.
		ExecutionID string
	}

	// Result is the outcome of a launch.
	Result struct {
		ExitCode ExitCode
		Error    error
	}

	// Runtime launches configurations.
	Runtime interface {
		Name() string
		// Available reports whether the runtime can run on this system.
		Available() bool
		// Validate checks that the configuration can be launched by this runtime.
		Validate(ctx *ExecutionContext) error
		// Execute launches the configuration and waits for it to finish.
		Execute(ctx *ExecutionContext) *Result
	}

	// Registry maps executor identifiers to runtimes.
	Registry struct {
		runtimes map[ExecutorID]Runtime
	}
)

// NewExecutionContext creates an execution context bound to the process's standard streams.
func NewExecutionContext(ctx context.Context, cfg runconfig.Configuration) *ExecutionContext {
	return &ExecutionContext{
		Context:       ctx,
		Configuration: cfg,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Stdin:         os.Stdin,
		ExecutionID:   strconv.FormatInt(time.Now().UnixNano(), 10),
	}
}

// Success reports whether the launch exited cleanly.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

// Err converts the result to an error; nil on success.
func (r *Result) Err() error {
	if r.Error != nil {
		return r.Error
	}
	if !r.ExitCode.IsSuccess() {
		return &ExitError{Code: r.ExitCode}
	}
	return nil
}

// NewRegistry creates an empty runtime registry.
func NewRegistry() *Registry {
	return &Registry{runtimes: make(map[ExecutorID]Runtime)}
}

// Register adds or replaces the runtime for id.
func (r *Registry) Register(id ExecutorID, rt Runtime) {
	r.runtimes[id] = rt
}

// Get returns the runtime registered for id.
func (r *Registry) Get(id ExecutorID) (Runtime, error) {
	rt, ok := r.runtimes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrExecutorNotFound, id)
	}
	return rt, nil
}

// Available returns the identifiers of the runtimes usable on this system, sorted.
func (r *Registry) Available() []ExecutorID {
	var ids []ExecutorID
	for id, rt := range r.runtimes {
		if rt.Available() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
