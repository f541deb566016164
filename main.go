// SPDX-License-Identifier: MPL-2.0

package main

import cmd "warpack/cmd/warpack"

func main() {
	cmd.Execute()
}
