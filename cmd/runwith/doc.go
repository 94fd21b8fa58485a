// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the runwith command-line interface.
//
// The root command is built by NewRootCommand from an App, the composition
// root that holds configuration loading, registry loading and the execution
// engine. Tests build an App with fakes through Dependencies.
package cmd
