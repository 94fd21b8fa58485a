// SPDX-License-Identifier: MPL-2.0

// Package inject appends a quoted program argument to a run configuration.
//
// Access paths are tried in order: the direct runconfig.ArgumentCapable
// accessor, then the runconfig.OptionsHolder indirection. A configuration that
// offers neither is left untouched and reported as unsupported.
package inject
