package gocube

import (
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

// Phase represents the current solving phase in the layer-by-layer method.
// Phases progress from Scrambled to Solved, allowing comparison with < and >.
type Phase = solver.Phase

const (
	PhaseScrambled     = solver.PhaseScrambled
	PhaseDaisy         = solver.PhaseDaisy
	PhaseWhiteCross    = solver.PhaseWhiteCross
	PhaseFirstLayer    = solver.PhaseFirstLayer
	PhaseSecondLayer   = solver.PhaseSecondLayer
	PhaseYellowCross   = solver.PhaseYellowCross
	PhaseYellowCorners = solver.PhaseYellowCorners
	PhaseSolved        = solver.PhaseSolved
)
