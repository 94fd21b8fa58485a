// SPDX-License-Identifier: MPL-2.0

// Package runtime executes prepared run configurations.
//
// Three executors are available:
//   - run: starts the entry point (or the host shell for scripts) as a child process
//   - virtual: interprets scripts with the embedded mvdan/sh interpreter
//   - interactive: like run, but attached to a pseudo-terminal
//
// Every executor implements Runtime. Engine is the collaboration boundary used
// by the transient coordinator: it resolves the executor by ExecutorID,
// validates the configuration and runs it to completion.
package runtime
