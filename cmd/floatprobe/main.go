// Command floatprobe inspects overlay hit-testing and drives the
// interaction engine against a window from the terminal.
package main

import "floatpane/internal/cli"

func main() {
	cli.Execute()
}
