// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/runwith/runwith/internal/issue"
)

// ServiceError is an error that carries an issue catalog entry for the CLI
// layer to render before the error itself. Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID selects the catalog entry rendered as help text; zero renders nothing.
	IssueID issue.Id
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError writes the catalog entry of svcErr using the glamour style.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, style string, logger *log.Logger) {
	if svcErr == nil || svcErr.IssueID == 0 {
		return
	}
	entry := issue.Get(svcErr.IssueID)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(style)
	if err != nil {
		logger.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", err)
		return
	}
	fmt.Fprint(stderr, rendered)
}
