package gocube

import (
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

// Sentinel errors for the gocube package. They match with errors.Is.
var (
	// Parsing errors
	ErrInvalidNotation = moves.ErrInvalidNotation
	ErrUnknownMove     = moves.ErrUnknownMove

	// State errors
	ErrCorruptState = cube.ErrCorruptState

	// Solver errors
	ErrIterationLimit = solver.ErrIterationLimit
	ErrMoveLimit      = solver.ErrMoveLimit
	ErrInvariant      = solver.ErrInvariant
)

// SolveError carries the step that failed along with the cause.
type SolveError = solver.SolveError
