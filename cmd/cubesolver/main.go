// cubesolver - CLI application for scrambling, solving and playing with a
// Rubik's Cube model.
package main

import (
	"github.com/SeamusWaldron/gocube_solver/internal/cli"
)

func main() {
	cli.Execute()
}
