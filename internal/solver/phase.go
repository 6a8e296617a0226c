package solver

import (
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Phase is the furthest solving milestone a cube state has reached.
// Phases progress from Scrambled (0) to Solved (7), allowing comparison
// with < and >.
type Phase int

const (
	// PhaseScrambled indicates no milestone has been reached.
	PhaseScrambled Phase = iota

	// PhaseDaisy indicates all four white edges sit around the yellow
	// center with white facing up.
	PhaseDaisy

	// PhaseWhiteCross indicates the four white edges face down, each
	// matching the centers beside it.
	PhaseWhiteCross

	// PhaseFirstLayer indicates the white layer is complete.
	PhaseFirstLayer

	// PhaseSecondLayer indicates the first two layers are complete.
	PhaseSecondLayer

	// PhaseYellowCross indicates the four top edges show yellow up.
	PhaseYellowCross

	// PhaseYellowCorners indicates every corner is placed and oriented.
	PhaseYellowCorners

	// PhaseSolved indicates the cube is solved.
	PhaseSolved
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseDaisy:
		return "daisy"
	case PhaseWhiteCross:
		return "white_cross"
	case PhaseFirstLayer:
		return "first_layer"
	case PhaseSecondLayer:
		return "second_layer"
	case PhaseYellowCross:
		return "yellow_cross"
	case PhaseYellowCorners:
		return "yellow_corners"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseDaisy:
		return "Daisy"
	case PhaseWhiteCross:
		return "White Cross"
	case PhaseFirstLayer:
		return "First Layer"
	case PhaseSecondLayer:
		return "Second Layer (F2L)"
	case PhaseYellowCross:
		return "Yellow Cross"
	case PhaseYellowCorners:
		return "Yellow Corners"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// NextStep returns the step that continues from this phase.
func (p Phase) NextStep() StepID {
	switch p {
	case PhaseScrambled:
		return StepDaisy
	case PhaseDaisy:
		return StepWhiteCross
	case PhaseWhiteCross:
		return StepWhiteCorners
	case PhaseFirstLayer:
		return StepLayer2Edges
	case PhaseSecondLayer:
		return StepYellowCross
	case PhaseYellowCross:
		return StepYellowCorner
	case PhaseYellowCorners:
		return StepSolveLayer3
	default:
		return StepDone
	}
}

// Detect returns the phase of c. Detection works on a copy re-framed with
// yellow up, so c is not modified.
func Detect(c *cube.Cube) (Phase, error) {
	w := &work{c: c.Clone()}
	if err := w.yellowUp(); err != nil {
		return PhaseScrambled, err
	}
	c = w.c

	if c.IsSolved() {
		return PhaseSolved, nil
	}

	firstLayer := layerSolved(c, cube.LayerOne)
	f2l := firstLayer && layerSolved(c, cube.LayerTwo)
	switch {
	case f2l && len(yellowEdgesUp(c)) == 4:
		if cornersPlaced(c) {
			return PhaseYellowCorners, nil
		}
		return PhaseYellowCross, nil
	case f2l:
		return PhaseSecondLayer, nil
	case firstLayer:
		return PhaseFirstLayer, nil
	case crossFormed(c):
		return PhaseWhiteCross, nil
	case daisyFormed(c):
		return PhaseDaisy, nil
	default:
		return PhaseScrambled, nil
	}
}
