// SPDX-License-Identifier: MPL-2.0

package inject

import (
	"github.com/runwith/runwith/pkg/runconfig"
)

// AccessPath names the route used to reach a configuration's arguments.
type AccessPath int

const (
	// PathNone means the configuration exposes no program-arguments field.
	PathNone AccessPath = iota
	// PathDirect is the typed ArgumentCapable accessor on the configuration itself.
	PathDirect
	// PathOptions is the options-holder indirection.
	PathOptions
)

// String returns a human-readable name for the access path.
func (p AccessPath) String() string {
	switch p {
	case PathDirect:
		return "direct"
	case PathOptions:
		return "options"
	default:
		return "none"
	}
}

// Accessor resolves the program-arguments accessor of cfg.
// It returns PathNone and a nil accessor when cfg exposes none.
func Accessor(cfg runconfig.Configuration) (runconfig.ArgumentCapable, AccessPath) {
	if cfg == nil {
		return nil, PathNone
	}
	if ac, ok := cfg.(runconfig.ArgumentCapable); ok {
		return ac, PathDirect
	}
	if holder, ok := cfg.(runconfig.OptionsHolder); ok {
		if opts := holder.Options(); opts != nil {
			return opts, PathOptions
		}
	}
	return nil, PathNone
}

// Supports reports whether arguments can be injected into cfg.
func Supports(cfg runconfig.Configuration) bool {
	_, path := Accessor(cfg)
	return path != PathNone
}

// Inject appends arg, wrapped in double quotes, to the program arguments of cfg.
// It returns false without modifying cfg when no accessor is available.
// Calling Inject twice appends the argument twice.
func Inject(cfg runconfig.Configuration, arg string) bool {
	ac, path := Accessor(cfg)
	if path == PathNone {
		return false
	}
	ac.SetProgramArguments(runconfig.AppendQuoted(ac.ProgramArguments(), arg))
	return true
}
