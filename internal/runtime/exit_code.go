// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"mvdan.cc/sh/v3/interp"
)

type (
	// ExitCode is a process exit status. Zero means success.
	ExitCode int

	// ExitError reports a launch that ran but exited with a non-zero status.
	ExitError struct {
		Code ExitCode
	}
)

// IsSuccess returns true for a zero exit code.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal representation of the exit code.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// resultFromError maps a process or interpreter error to a Result.
func resultFromError(err error) *Result {
	if err == nil {
		return &Result{}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Result{ExitCode: ExitCode(exitErr.ExitCode())}
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return &Result{ExitCode: ExitCode(status)}
	}
	return &Result{ExitCode: 1, Error: err}
}
