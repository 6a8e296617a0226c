package moves

import (
	"strings"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Sequence is an ordered list of moves.
type Sequence []Move

// Apply applies every move in order.
func (s Sequence) Apply(c *cube.Cube) {
	for _, m := range s {
		m.Apply(c)
	}
}

// Inverse returns the sequence that undoes s.
func (s Sequence) Inverse() Sequence {
	inv := make(Sequence, len(s))
	for i, m := range s {
		inv[len(s)-1-i] = m.Inverse()
	}
	return inv
}

// Repeat returns s concatenated n times.
func (s Sequence) Repeat(n int) Sequence {
	out := make(Sequence, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return out
}

// Then returns s followed by the given moves.
func (s Sequence) Then(more ...Move) Sequence {
	out := make(Sequence, 0, len(s)+len(more))
	out = append(out, s...)
	return append(out, more...)
}

// FaceTurns counts the moves that are not spins.
func (s Sequence) FaceTurns() int {
	n := 0
	for _, m := range s {
		if !m.IsSpin() {
			n++
		}
	}
	return n
}

// Spins counts whole-cube spins.
func (s Sequence) Spins() int {
	return len(s) - s.FaceTurns()
}

// String formats the sequence in notation.
func (s Sequence) String() string {
	return FormatSequence(s)
}

// Trigger sequences used by the solver.
var (
	// Sexy is R U R' U', the basic corner trigger.
	Sexy = Sequence{R, U, RPrime, UPrime}

	// LeftSexy is L' U' L U, the mirror of Sexy.
	LeftSexy = Sequence{LPrime, UPrime, L, U}

	// InsertRight drops the front-top edge into the front-right slot.
	InsertRight = Sequence{U, R, UPrime, RPrime, UPrime, FPrime, U, F}

	// InsertLeft drops the front-top edge into the front-left slot.
	InsertLeft = Sequence{UPrime, LPrime, U, L, U, F, UPrime, FPrime}

	// YellowCross is F R U R' U' F'.
	YellowCross = Sequence{F, R, U, RPrime, UPrime, FPrime}

	// CornerCycle cycles three top corners, keeping front-right fixed.
	CornerCycle = Sexy.Repeat(3).Then(SpinRight).Then(LeftSexy.Repeat(3)...).Then(SpinLeft)

	// EdgeCycle cycles three top edges, keeping the front edge fixed.
	EdgeCycle = Sexy.Then(LeftSexy...).Then(Sexy.Repeat(5)...).Then(LeftSexy.Repeat(5)...)
)

// FormatSequence formats moves as space-separated notation.
func FormatSequence(ms []Move) string {
	if len(ms) == 0 {
		return ""
	}

	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.Notation
	}

	return strings.Join(parts, " ")
}
