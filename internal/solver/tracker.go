package solver

import (
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
)

// Tracker wraps a Cube and reports solving milestones as moves are
// applied to it.
type Tracker struct {
	cube          *cube.Cube
	lastPhase     Phase
	highestPhase  Phase // Monotonic - never goes backwards
	moveCount     int
	phaseCallback func(phase Phase, moveIndex int)
}

// NewTracker creates a tracker over a copy of c.
func NewTracker(c *cube.Cube) (*Tracker, error) {
	t := &Tracker{cube: c.Clone()}
	phase, err := Detect(t.cube)
	if err != nil {
		return nil, err
	}
	t.lastPhase = phase
	t.highestPhase = phase
	return t, nil
}

// SetPhaseCallback sets a callback that fires when a new highest phase is
// reached. moveIndex is the number of moves applied so far.
func (t *Tracker) SetPhaseCallback(cb func(phase Phase, moveIndex int)) {
	t.phaseCallback = cb
}

// Apply applies moves and checks for phase transitions after each one.
func (t *Tracker) Apply(ms ...moves.Move) error {
	for _, m := range ms {
		m.Apply(t.cube)
		t.moveCount++
		if err := t.checkPhaseTransition(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracker) checkPhaseTransition() error {
	current, err := Detect(t.cube)
	if err != nil {
		return err
	}
	t.lastPhase = current

	// Only a new high fires the callback.
	if current > t.highestPhase {
		t.highestPhase = current
		if t.phaseCallback != nil {
			t.phaseCallback(current, t.moveCount)
		}
	}
	return nil
}

// CurrentPhase returns the phase after the last applied move. It may go
// backwards while a trigger sequence is in progress.
func (t *Tracker) CurrentPhase() Phase {
	return t.lastPhase
}

// HighestPhase returns the highest phase reached.
func (t *Tracker) HighestPhase() Phase {
	return t.highestPhase
}

// MoveCount returns the number of moves applied.
func (t *Tracker) MoveCount() int {
	return t.moveCount
}

// IsSolved returns true if the cube is solved.
func (t *Tracker) IsSolved() bool {
	return t.cube.IsSolved()
}

// Cube returns the underlying cube for inspection.
func (t *Tracker) Cube() *cube.Cube {
	return t.cube
}
