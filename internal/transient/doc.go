// SPDX-License-Identifier: MPL-2.0

// Package transient runs a configuration once with a file path appended to its
// program arguments, without leaving the original configuration changed.
//
// Two modes are supported. Clone mode copies the configuration, injects the
// path into the copy and registers the copy as a temporary entry before
// executing it. In-place mode injects into the original, executes it and
// restores the original argument string afterwards.
//
// A Coordinator runs one transaction at a time. Each transaction walks
// Idle, Selecting, Preparing and Executing, then ends in Done (clone mode),
// Finalizing followed by Done (in-place mode) or Failed.
package transient
