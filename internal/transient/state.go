// SPDX-License-Identifier: MPL-2.0

package transient

import (
	"errors"
	"fmt"
	"strings"
)

const (
	StateIdle State = iota
	StateSelecting
	StatePreparing
	StateExecuting
	StateFinalizing
	StateFailed
	StateDone
)

const (
	// ModeClone executes a temporary copy of the configuration.
	ModeClone Mode = iota
	// ModeInPlace executes the original configuration and restores it afterwards.
	ModeInPlace
)

// ErrInvalidMode is the sentinel error wrapped by InvalidModeError.
var ErrInvalidMode = errors.New("invalid transaction mode")

type (
	// State is a transaction lifecycle state.
	State int

	// Mode selects between clone-based and in-place transactions.
	Mode int

	// InvalidModeError is returned by ParseMode for unknown mode names.
	InvalidModeError struct {
		Value string
	}
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StatePreparing:
		return "preparing"
	case StateExecuting:
		return "executing"
	case StateFinalizing:
		return "finalizing"
	case StateFailed:
		return "failed"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateFailed || s == StateDone
}

func (m Mode) String() string {
	switch m {
	case ModeClone:
		return "clone"
	case ModeInPlace:
		return "in_place"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid transaction mode %q (valid: clone, in_place)", e.Value)
}

// Unwrap returns ErrInvalidMode so callers can use errors.Is for programmatic detection.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// ParseMode converts a mode name to a Mode. "in-place" is accepted as an
// alias of "in_place".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clone":
		return ModeClone, nil
	case "in_place", "in-place", "inplace":
		return ModeInPlace, nil
	default:
		return 0, &InvalidModeError{Value: s}
	}
}
