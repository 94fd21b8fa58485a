// SPDX-License-Identifier: MPL-2.0

// Package runconfig defines the run configuration model: named, typed bundles
// of launch settings (entry point, program arguments, environment, working
// directory) owned by a registry and borrowed by callers for the duration of
// a single transaction.
//
// Argument support is expressed through capability interfaces instead of
// runtime method lookup. A configuration exposes its program arguments either
// directly (ArgumentCapable) or through an options holder (OptionsHolder).
// Variants implementing neither cannot receive injected arguments.
package runconfig
