// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/cmdspec/cmdspec/cmd/cmdspec"

func main() {
	cmd.Execute()
}
