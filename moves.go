package gocube

import (
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
)

// Move is a single face turn, double-layer turn or whole-cube spin.
type Move = moves.Move

// Sequence is an ordered list of moves.
type Sequence = moves.Sequence

// Predefined moves for convenience.
//
// Example:
//
//	cube.Apply(gocube.R, gocube.U, gocube.RPrime, gocube.UPrime)
var (
	R      = moves.R      // Right clockwise
	RPrime = moves.RPrime // Right counter-clockwise
	L      = moves.L      // Left clockwise
	LPrime = moves.LPrime // Left counter-clockwise
	U      = moves.U      // Up clockwise
	UPrime = moves.UPrime // Up counter-clockwise
	D      = moves.D      // Down clockwise
	DPrime = moves.DPrime // Down counter-clockwise
	F      = moves.F      // Front clockwise
	FPrime = moves.FPrime // Front counter-clockwise
	B      = moves.B      // Back clockwise
	BPrime = moves.BPrime // Back counter-clockwise

	// Whole-cube spins
	SpinRight = moves.SpinRight // y
	SpinLeft  = moves.SpinLeft  // y'
	SpinUp    = moves.SpinUp    // x
	SpinDown  = moves.SpinDown  // x'
)

// Sexy move: R U R' U'
var SexyMove = moves.Sexy

// Inverse sexy move: U R U' R'
var InverseSexyMove = moves.Sexy.Inverse()

// Yellow cross algorithm: F R U R' U' F'
var YellowCross = moves.YellowCross

// ParseMoves parses space-separated notation such as "R U' r y".
func ParseMoves(notation string) (Sequence, error) {
	return moves.ParseSequence(notation)
}

// AllMoves returns every move the engine knows.
func AllMoves() []Move {
	return moves.All()
}
