package gocube

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCubeIsSolved(t *testing.T) {
	c := NewCube()
	require.True(t, c.IsSolved())
	require.Equal(t, PhaseSolved, c.Phase())
	require.NoError(t, c.Validate())
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	c := NewCube()
	c.Apply(R)
	require.False(t, c.IsSolved())
}

func TestFourTurnsReturnToSolved(t *testing.T) {
	for _, m := range AllMoves() {
		c := NewCube()
		c.Apply(m, m, m, m)
		require.True(t, c.IsSolved(), "%s x 4", m)
	}
}

func TestSexyMoveSixTimesReturnsToSolved(t *testing.T) {
	c := NewCube()
	for i := 0; i < 6; i++ {
		c.Apply(SexyMove...)
	}
	require.True(t, c.IsSolved())
}

func TestInverseSexyMoveUndoesSexyMove(t *testing.T) {
	c := NewCube()
	c.Apply(SexyMove...)
	c.Apply(InverseSexyMove...)
	require.True(t, c.IsSolved())
	require.Equal(t, SexyMove.Inverse(), InverseSexyMove)
}

func TestApplyNotation(t *testing.T) {
	c := NewCube()
	require.NoError(t, c.ApplyNotation("R U R' U'"))

	want := NewCube()
	want.Apply(SexyMove...)
	require.True(t, c.Equal(want))
}

func TestApplyNotationInvalid(t *testing.T) {
	c := NewCube()
	err := c.ApplyNotation("R Q U")
	require.ErrorIs(t, err, ErrInvalidNotation)
	require.True(t, c.IsSolved(), "nothing applied on error")
}

func TestParseMoves(t *testing.T) {
	seq, err := ParseMoves("F R' y")
	require.NoError(t, err)
	require.Equal(t, Sequence{F, RPrime, SpinRight}, seq)
	require.Equal(t, "F R' y", seq.String())
}

func TestSpinKeepsSolved(t *testing.T) {
	c := NewCube()
	c.Apply(SpinRight, SpinUp)
	require.True(t, c.IsSolved())
}

func TestScrambleAndSolve(t *testing.T) {
	c := NewCube()
	scramble := c.Scramble(rand.New(rand.NewSource(42)), 50)
	require.Len(t, scramble, 50)

	before := c.Clone()
	sol, err := c.Solve(testContext(t), WithMaxMoves(5000))
	require.NoError(t, err)
	require.True(t, c.Equal(before), "Solve does not modify the cube")

	c.Apply(sol.Moves...)
	require.True(t, c.IsSolved())
}

func TestSolveMoveLimit(t *testing.T) {
	c := NewCube()
	c.Scramble(rand.New(rand.NewSource(3)), 50)

	_, err := c.Solve(testContext(t), WithMaxMoves(1))
	require.ErrorIs(t, err, ErrMoveLimit)

	var serr *SolveError
	require.ErrorAs(t, err, &serr)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.rubiks")

	c := NewCube()
	require.NoError(t, c.ApplyNotation("R U F' L"))
	require.NoError(t, c.Save(path))

	loaded, err := LoadCube(path)
	require.NoError(t, err)
	require.True(t, c.Equal(loaded))
}

func TestBinaryRoundTrip(t *testing.T) {
	c := NewCube()
	c.Apply(R, U, BPrime)

	data, err := c.MarshalBinary()
	require.NoError(t, err)

	var out Cube
	require.NoError(t, out.UnmarshalBinary(data))
	require.True(t, c.Equal(&out))
}

func TestFacelets(t *testing.T) {
	c := NewCube()
	for _, row := range c.Facelets(FaceU) {
		for _, color := range row {
			require.Equal(t, Yellow, color)
		}
	}
}

func TestTracker(t *testing.T) {
	c := NewCube()
	scramble, err := ParseMoves("R U R' U'")
	require.NoError(t, err)
	c.Apply(scramble...)

	tr, err := NewTracker(c)
	require.NoError(t, err)

	var reached []Phase
	tr.SetPhaseCallback(func(p Phase, _ int) { reached = append(reached, p) })

	require.NoError(t, tr.Apply(scramble.Inverse()...))
	require.True(t, tr.IsSolved())
	require.Equal(t, PhaseSolved, tr.HighestPhase())
	require.Equal(t, 4, tr.MoveCount())
	require.Contains(t, reached, PhaseSolved)
	require.False(t, c.IsSolved(), "tracker works on a copy")
}
