// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
)

const (
	// CodeInteractiveUnavailable indicates pseudo-terminals are not supported on this platform.
	CodeInteractiveUnavailable InitDiagnosticCode = "interactive_unavailable"
)

// ErrInvalidInitDiagnosticCode is the sentinel error wrapped by InvalidInitDiagnosticCodeError.
var ErrInvalidInitDiagnosticCode = errors.New("invalid init diagnostic code")

type (
	// InitDiagnosticCode categorizes non-fatal runtime initialization diagnostics.
	InitDiagnosticCode string

	// InvalidInitDiagnosticCodeError is returned when an InitDiagnosticCode value
	// is not one of the defined diagnostic codes.
	InvalidInitDiagnosticCodeError struct {
		Value InitDiagnosticCode
	}

	// InitDiagnostic reports non-fatal runtime initialization details.
	InitDiagnostic struct {
		Code    InitDiagnosticCode
		Message string
	}

	// RegistryBuildResult contains the built registry and any diagnostics.
	// Registry is always non-nil after BuildRegistry returns.
	RegistryBuildResult struct {
		Registry    *Registry
		Diagnostics []InitDiagnostic
	}
)

// Error implements the error interface.
func (e *InvalidInitDiagnosticCodeError) Error() string {
	return fmt.Sprintf("invalid init diagnostic code %q (valid: %s)",
		e.Value, CodeInteractiveUnavailable)
}

// Unwrap returns ErrInvalidInitDiagnosticCode so callers can use errors.Is for programmatic detection.
func (e *InvalidInitDiagnosticCodeError) Unwrap() error { return ErrInvalidInitDiagnosticCode }

// String returns the string representation of the InitDiagnosticCode.
func (c InitDiagnosticCode) String() string { return string(c) }

// Validate returns nil if the InitDiagnosticCode is one of the defined diagnostic codes.
func (c InitDiagnosticCode) Validate() error {
	switch c {
	case CodeInteractiveUnavailable:
		return nil
	default:
		return &InvalidInitDiagnosticCodeError{Value: c}
	}
}

// BuildRegistry creates and populates the runtime registry.
// The run and virtual runtimes are always registered. The interactive runtime
// is registered everywhere but reported via Diagnostics when unavailable.
func BuildRegistry() RegistryBuildResult {
	result := RegistryBuildResult{Registry: NewRegistry()}

	result.Registry.Register(ExecutorRun, NewNativeRuntime())
	result.Registry.Register(ExecutorVirtual, NewVirtualRuntime())

	interactive := NewInteractiveRuntime()
	result.Registry.Register(ExecutorInteractive, interactive)
	if !interactive.Available() {
		result.Diagnostics = append(result.Diagnostics, InitDiagnostic{
			Code:    CodeInteractiveUnavailable,
			Message: "interactive executor unavailable: pseudo-terminals are not supported on this platform",
		})
	}

	return result
}
