// Package gocube is a 3x3x3 Rubik's Cube model with a move engine and a
// beginner's layer-by-layer solver.
//
// # Quick Start
//
//	cube := gocube.NewCube()
//
//	// Apply moves using predefined values
//	cube.Apply(gocube.R, gocube.U, gocube.RPrime, gocube.UPrime)
//
//	// Or from notation
//	if err := cube.ApplyNotation("F R' U y L"); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Solved:", cube.IsSolved())
//	fmt.Println("Phase:", cube.Phase().DisplayName())
//
// # Solving
//
//	cube.Scramble(rand.New(rand.NewSource(1)), 50)
//	solution, err := cube.Solve(ctx, gocube.WithMaxMoves(2000))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(solution.Moves)
//
// Solve never modifies the cube; apply the returned moves to reach the
// solved state.
//
// # Solving Phases
//
// Progress through the layer-by-layer method is reported as a Phase:
//
//   - PhaseScrambled: no milestone reached
//   - PhaseDaisy: white edges around the yellow center
//   - PhaseWhiteCross: white cross on the bottom
//   - PhaseFirstLayer: white layer complete
//   - PhaseSecondLayer: two layers complete
//   - PhaseYellowCross: yellow cross on top
//   - PhaseYellowCorners: every corner placed and oriented
//   - PhaseSolved: cube is solved
//
// A Tracker follows a cube move by move and reports each new phase.
package gocube
