// SPDX-License-Identifier: MPL-2.0

package transient

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/runwith/runwith/internal/clone"
	"github.com/runwith/runwith/internal/registry"
	"github.com/runwith/runwith/internal/runtime"
	"github.com/runwith/runwith/pkg/runconfig"
)

const (
	// ReasonUnsupported reports a configuration that cannot take a file argument.
	ReasonUnsupported Reason = "unsupported"
	// ReasonDirectory reports a request whose path names a directory.
	ReasonDirectory Reason = "directory"
)

var (
	// ErrUnsupported is the sentinel error wrapped by FailureError for ReasonUnsupported.
	ErrUnsupported = errors.New("configuration not supported")
	// ErrDirectory is the sentinel error wrapped by FailureError for ReasonDirectory.
	ErrDirectory = errors.New("directories cannot be passed")
	// ErrCloneDegraded marks a clone created with default settings. It is logged, never returned.
	ErrCloneDegraded = errors.New("clone degraded")
	// ErrRestoreFailed marks an in-place restoration that could not write back. It is logged, never returned.
	ErrRestoreFailed = errors.New("restore failed")
)

type (
	// Reason classifies a failed transaction.
	Reason string

	// File is the file whose path is injected.
	File struct {
		Path  string
		Name  string
		IsDir bool
	}

	// Request starts a transaction.
	Request struct {
		Configuration runconfig.Configuration
		File          File
		Mode          Mode
		// Executor defaults to runtime.ExecutorRun.
		Executor runtime.ExecutorID
	}

	// FailureError is returned when a transaction ends in StateFailed.
	// No execution was attempted.
	FailureError struct {
		Reason        Reason
		Configuration string
		// Cause is the underlying fault, kept for verbose output.
		Cause error
	}

	// Transaction records one run.
	Transaction struct {
		Mode     Mode
		Executor runtime.ExecutorID
		// Argument is the injected path.
		Argument string
		Source   runconfig.Configuration
		// Clone is the temporary configuration; nil in in-place mode.
		Clone       runconfig.Configuration
		CloneReport clone.Report
		// Snapshot is the source's argument string before injection (in-place mode).
		Snapshot string
		History  []State
		// ExecErr is the execution outcome. It does not fail the transaction.
		ExecErr error
		// RestoreErr is set when in-place restoration failed; it wraps ErrRestoreFailed.
		RestoreErr error
	}
)

// Error returns the single user-facing message naming the configuration.
func (e *FailureError) Error() string {
	if e.Reason == ReasonDirectory {
		return fmt.Sprintf("run configuration %q was not run: directories cannot be passed", e.Configuration)
	}
	return fmt.Sprintf("run configuration %q does not support passing a file path", e.Configuration)
}

// Unwrap returns the sentinel for Reason so callers can use errors.Is.
func (e *FailureError) Unwrap() error {
	if e.Reason == ReasonDirectory {
		return ErrDirectory
	}
	return ErrUnsupported
}

// DisplayName returns Name, or the base name of Path when Name is empty.
func (f File) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return filepath.Base(f.Path)
}

// CloneName returns the name given to a clone of source for file.
func CloneName(source string, file File) string {
	return fmt.Sprintf("%s (with %s)", source, file.DisplayName())
}

// uniqueCloneName returns CloneName, numbered when a permanent configuration
// already uses that name. Temporary holders are replaced, so they do not count.
func uniqueCloneName(reg registry.Registry, source string, file File) string {
	base := CloneName(source, file)
	name := base
	for n := 2; ; n++ {
		existing, err := reg.Get(name)
		if err != nil || existing.IsTemporary() {
			return name
		}
		name = fmt.Sprintf("%s (%d)", base, n)
	}
}

// State returns the current state.
func (t *Transaction) State() State {
	if len(t.History) == 0 {
		return StateIdle
	}
	return t.History[len(t.History)-1]
}

// Target returns the configuration that was (or would be) executed.
func (t *Transaction) Target() runconfig.Configuration {
	if t.Clone != nil {
		return t.Clone
	}
	return t.Source
}

// transition records s. Terminal states are final; later transitions are ignored.
func (t *Transaction) transition(s State) {
	if t.State().Terminal() {
		return
	}
	t.History = append(t.History, s)
}
