// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/runwith/runwith/cmd/runwith"

func main() {
	cmd.Execute()
}
