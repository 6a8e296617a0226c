package gocube

import (
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

// Tracker follows a cube move by move and reports each new highest phase.
type Tracker struct {
	t *solver.Tracker
}

// NewTracker creates a tracker starting from a copy of c.
func NewTracker(c *Cube) (*Tracker, error) {
	t, err := solver.NewTracker(c.c)
	if err != nil {
		return nil, err
	}
	return &Tracker{t: t}, nil
}

// SetPhaseCallback sets a callback that fires when a new highest phase is
// reached. moveIndex counts the moves applied so far.
func (t *Tracker) SetPhaseCallback(cb func(phase Phase, moveIndex int)) {
	t.t.SetPhaseCallback(cb)
}

// Apply applies moves and checks for phase transitions.
func (t *Tracker) Apply(ms ...Move) error {
	return t.t.Apply(ms...)
}

// CurrentPhase returns the phase of the cube as it is now. It may go
// backwards while solving.
func (t *Tracker) CurrentPhase() Phase {
	return t.t.CurrentPhase()
}

// HighestPhase returns the highest phase reached. It never goes backwards.
func (t *Tracker) HighestPhase() Phase {
	return t.t.HighestPhase()
}

// MoveCount returns the number of moves applied.
func (t *Tracker) MoveCount() int {
	return t.t.MoveCount()
}

// IsSolved returns true if the cube is solved.
func (t *Tracker) IsSolved() bool {
	return t.t.IsSolved()
}

// Cube returns a copy of the tracked cube.
func (t *Tracker) Cube() *Cube {
	return &Cube{c: t.t.Cube().Clone()}
}
