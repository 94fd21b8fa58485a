// SPDX-License-Identifier: MPL-2.0

package clone

import (
	"errors"
	"fmt"

	"github.com/runwith/runwith/pkg/runconfig"
)

const (
	// StrategyTyped copied the configuration with a per-variant routine.
	StrategyTyped Strategy = iota + 1
	// StrategyFullState copied the configuration through its encoded state.
	StrategyFullState
	// StrategyDefaults left the clone with factory defaults.
	StrategyDefaults
)

// ErrUnsupported is returned when no factory exists for the source type.
var ErrUnsupported = errors.New("configuration type cannot be cloned")

type (
	// Strategy identifies how a clone was populated.
	Strategy int

	// CopyFunc copies the settings of src into dst. Both have the same type.
	CopyFunc func(src, dst runconfig.Configuration) error

	// FactoryLookup resolves the factory for a configuration type.
	FactoryLookup interface {
		FactoryFor(typ runconfig.TypeID) (runconfig.Factory, bool)
	}

	// Report describes how a clone was produced.
	Report struct {
		Strategy Strategy
		// Degraded is set when settings could not be transferred.
		Degraded bool
		// Causes holds the errors of every strategy that failed.
		Causes []error
	}

	// Cloner copies configurations using registered typed routines and a
	// full-state fallback.
	Cloner struct {
		factories FactoryLookup
		copiers   map[runconfig.TypeID]CopyFunc
	}

	// Option configures a Cloner.
	Option func(*Cloner)
)

// String returns the strategy name used in log output.
func (s Strategy) String() string {
	switch s {
	case StrategyTyped:
		return "typed"
	case StrategyFullState:
		return "full-state"
	case StrategyDefaults:
		return "defaults"
	default:
		return "unknown"
	}
}

// Err joins the recorded causes, or returns nil when there are none.
func (r Report) Err() error {
	return errors.Join(r.Causes...)
}

// WithCopier registers a typed copy routine for typ, replacing any existing one.
// A nil fn removes the routine so typ uses the full-state fallback.
func WithCopier(typ runconfig.TypeID, fn CopyFunc) Option {
	return func(c *Cloner) {
		if fn == nil {
			delete(c.copiers, typ)
			return
		}
		c.copiers[typ] = fn
	}
}

// New creates a Cloner with the builtin typed routines.
func New(factories FactoryLookup, opts ...Option) *Cloner {
	c := &Cloner{
		factories: factories,
		copiers: map[runconfig.TypeID]CopyFunc{
			runconfig.TypeApplication: copyApplication,
			runconfig.TypeScript:      copyScript,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clone creates a new configuration named name with the settings of src.
// The returned configuration is never temporary and never shares mutable
// state with src.
func (c *Cloner) Clone(src runconfig.Configuration, name string) (runconfig.Configuration, Report, error) {
	if src == nil {
		return nil, Report{}, fmt.Errorf("%w: nil source", ErrUnsupported)
	}
	factory, ok := c.factories.FactoryFor(src.Type())
	if !ok || factory == nil {
		return nil, Report{}, fmt.Errorf("%w: no factory for type %q (%s)", ErrUnsupported, src.Type(), src.Name())
	}

	var report Report
	if fn, ok := c.copiers[src.Type()]; ok {
		dst := factory.Create(name)
		err := fn(src, dst)
		if err == nil {
			report.Strategy = StrategyTyped
			return dst, report, nil
		}
		report.Causes = append(report.Causes, fmt.Errorf("typed copy: %w", err))
	}

	dst := factory.Create(name)
	err := runconfig.TransferState(src, dst)
	if err == nil {
		report.Strategy = StrategyFullState
		return dst, report, nil
	}
	report.Causes = append(report.Causes, fmt.Errorf("full-state transfer: %w", err))

	report.Strategy = StrategyDefaults
	report.Degraded = true
	return factory.Create(name), report, nil
}

func copyApplication(src, dst runconfig.Configuration) error {
	s, ok := src.(*runconfig.ApplicationConfiguration)
	if !ok {
		return fmt.Errorf("source %q is %T, not an application configuration", src.Name(), src)
	}
	d, ok := dst.(*runconfig.ApplicationConfiguration)
	if !ok {
		return fmt.Errorf("target %q is %T, not an application configuration", dst.Name(), dst)
	}
	s.CopyTo(d)
	return nil
}

func copyScript(src, dst runconfig.Configuration) error {
	s, ok := src.(*runconfig.ScriptConfiguration)
	if !ok {
		return fmt.Errorf("source %q is %T, not a script configuration", src.Name(), src)
	}
	d, ok := dst.(*runconfig.ScriptConfiguration)
	if !ok {
		return fmt.Errorf("target %q is %T, not a script configuration", dst.Name(), dst)
	}
	s.CopyTo(d)
	return nil
}
