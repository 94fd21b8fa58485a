// SPDX-License-Identifier: MPL-2.0

// Package registry holds the project's run configurations.
//
// The Registry interface is the collaboration boundary used by the transient
// execution coordinator: enumerate, look up, add and select configurations,
// and resolve factories by type tag. Memory is the in-process implementation;
// Load populates one from a runconfigs.cue or runconfigs.toml file.
package registry
