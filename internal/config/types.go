// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/runwith/runwith/pkg/runconfig"
)

const (
	// ModeClone runs a temporary copy of the selected configuration.
	// Defined locally to avoid coupling config to internal/transient.
	ModeClone TransactionMode = "clone"
	// ModeInPlace runs the selected configuration and restores its arguments afterwards.
	ModeInPlace TransactionMode = "in_place"

	// ExecutorRun starts configurations as host processes.
	ExecutorRun ExecutorName = "run"
	// ExecutorVirtual interprets configurations with the embedded mvdan/sh shell.
	ExecutorVirtual ExecutorName = "virtual"
	// ExecutorInteractive attaches configurations to a pseudo-terminal.
	ExecutorInteractive ExecutorName = "interactive"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	// DefaultRegistryFile is looked up in the working directory when registry_file is unset.
	DefaultRegistryFile = "runconfigs.cue"
)

var (
	// ErrInvalidTransactionMode is returned when a TransactionMode value is not recognized.
	ErrInvalidTransactionMode = errors.New("invalid mode")
	// ErrInvalidExecutorName is returned when an ExecutorName value is not recognized.
	ErrInvalidExecutorName = errors.New("invalid executor")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// TransactionMode selects how runwith avoids changing the original configuration.
	TransactionMode string

	// InvalidTransactionModeError is returned when a TransactionMode value is not recognized.
	InvalidTransactionModeError struct {
		Value TransactionMode
	}

	// ExecutorName names the executor that launches configurations.
	ExecutorName string

	// InvalidExecutorNameError is returned when an ExecutorName value is not recognized.
	InvalidExecutorNameError struct {
		Value ExecutorName
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level written by the logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// RegistryFile is the run configuration file.
		RegistryFile string `json:"registry_file" mapstructure:"registry_file"`
		// Mode is the default transaction mode.
		Mode TransactionMode `json:"mode" mapstructure:"mode"`
		// Executor is the default executor.
		Executor ExecutorName `json:"executor" mapstructure:"executor"`
		// EligibleTypes restricts which configuration types can be chosen.
		EligibleTypes []runconfig.TypeID `json:"eligible_types" mapstructure:"eligible_types"`
		UI            UIConfig           `json:"ui" mapstructure:"ui"`
		Log           LogConfig          `json:"log" mapstructure:"log"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme selects the glamour style for rendered messages.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose prints error causes and enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// Error implements the error interface for InvalidTransactionModeError.
func (e *InvalidTransactionModeError) Error() string {
	return fmt.Sprintf("invalid mode %q (valid: clone, in_place)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidTransactionModeError) Unwrap() error { return ErrInvalidTransactionMode }

// String returns the string representation of the TransactionMode.
func (m TransactionMode) String() string { return string(m) }

// IsValid returns whether the TransactionMode is one of the defined modes,
// and a list of validation errors if it is not.
func (m TransactionMode) IsValid() (bool, []error) {
	switch m {
	case ModeClone, ModeInPlace:
		return true, nil
	default:
		return false, []error{&InvalidTransactionModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidExecutorNameError.
func (e *InvalidExecutorNameError) Error() string {
	return fmt.Sprintf("invalid executor %q (valid: run, virtual, interactive)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidExecutorNameError) Unwrap() error { return ErrInvalidExecutorName }

// String returns the string representation of the ExecutorName.
func (n ExecutorName) String() string { return string(n) }

// IsValid returns whether the ExecutorName is one of the defined executors,
// and a list of validation errors if it is not.
func (n ExecutorName) IsValid() (bool, []error) {
	switch n {
	case ExecutorRun, ExecutorVirtual, ExecutorInteractive:
		return true, nil
	default:
		return false, []error{&InvalidExecutorNameError{Value: n}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels,
// and a list of validation errors if it is not.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Mode.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Executor.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, typ := range c.EligibleTypes {
		if err := typ.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		RegistryFile:  DefaultRegistryFile,
		Mode:          ModeClone,
		Executor:      ExecutorRun,
		EligibleTypes: []runconfig.TypeID{runconfig.TypeApplication, runconfig.TypeScript},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Log: LogConfig{Level: LogLevelInfo},
	}
}
