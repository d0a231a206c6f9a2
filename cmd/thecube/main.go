// Command thecube plays a 3x3x3 twisty puzzle in the terminal.
package main

import "github.com/SeamusWaldron/thecube/internal/cli"

func main() {
	cli.Execute()
}
