// SPDX-License-Identifier: MPL-2.0

package runconfig

import (
	"errors"
	"fmt"
)

const (
	// TypeApplication launches an executable entry point with program arguments.
	TypeApplication TypeID = "application"
	// TypeScript runs a shell script; its arguments live in ScriptOptions.
	TypeScript TypeID = "script"
	// TypeCompound groups other configurations and takes no arguments.
	TypeCompound TypeID = "compound"
)

// ErrInvalidTypeID is the sentinel error wrapped by InvalidTypeIDError.
var ErrInvalidTypeID = errors.New("invalid configuration type")

type (
	// TypeID is the type tag identifying a configuration variant.
	TypeID string

	// InvalidTypeIDError is returned when a TypeID is empty or unknown.
	// It wraps ErrInvalidTypeID for errors.Is() compatibility.
	InvalidTypeIDError struct {
		Value TypeID
	}

	// Configuration is a named, typed run configuration.
	// Implementations are owned by a registry; callers only borrow them.
	Configuration interface {
		Name() string
		SetName(name string)
		Type() TypeID
		IsTemporary() bool
		SetTemporary(temporary bool)
	}

	// ArgumentCapable is implemented by anything holding a program-arguments string.
	ArgumentCapable interface {
		ProgramArguments() string
		SetProgramArguments(args string)
	}

	// OptionsHolder is implemented by configurations that keep their program
	// arguments inside a separate options value. Options returns nil when the
	// configuration has no options attached.
	OptionsHolder interface {
		Options() ArgumentCapable
	}

	// EnvCarrier is implemented by configurations with an environment map.
	EnvCarrier interface {
		Environment() map[string]string
	}
)

// Error implements the error interface.
func (e *InvalidTypeIDError) Error() string {
	return fmt.Sprintf("invalid configuration type %q (valid: %s, %s, %s)",
		e.Value, TypeApplication, TypeScript, TypeCompound)
}

// Unwrap returns ErrInvalidTypeID so callers can use errors.Is for programmatic detection.
func (e *InvalidTypeIDError) Unwrap() error { return ErrInvalidTypeID }

// String returns the string representation of the TypeID.
func (t TypeID) String() string { return string(t) }

// Validate returns nil if the TypeID is one of the builtin variants.
func (t TypeID) Validate() error {
	switch t {
	case TypeApplication, TypeScript, TypeCompound:
		return nil
	default:
		return &InvalidTypeIDError{Value: t}
	}
}

// ParseTypeID converts a raw string into a validated TypeID.
func ParseTypeID(s string) (TypeID, error) {
	t := TypeID(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}
