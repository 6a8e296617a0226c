package solver

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
)

func applied(t *testing.T, notation string) *cube.Cube {
	t.Helper()
	seq, err := moves.ParseSequence(notation)
	require.NoError(t, err)
	c := cube.New()
	seq.Apply(c)
	return c
}

func TestDetect(t *testing.T) {
	tests := []struct {
		notation string
		want     Phase
	}{
		{"", PhaseSolved},
		{"x", PhaseSolved},
		{"y x'", PhaseSolved},
		{"U", PhaseYellowCross},
		{"U y", PhaseYellowCross},
		{"R", PhaseScrambled},
		{"D", PhaseScrambled},
		{"F2 R2 B2 L2", PhaseDaisy},
		{"F U R U' R' F'", PhaseSecondLayer},
	}

	for _, tt := range tests {
		c := applied(t, tt.notation)
		before := c.Clone()
		got, err := Detect(c)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "%q", tt.notation)
		require.True(t, c.Equal(before), "Detect must not modify the cube")
	}
}

func TestPhaseNextStep(t *testing.T) {
	want := map[Phase]StepID{
		PhaseScrambled:     StepDaisy,
		PhaseDaisy:         StepWhiteCross,
		PhaseWhiteCross:    StepWhiteCorners,
		PhaseFirstLayer:    StepLayer2Edges,
		PhaseSecondLayer:   StepYellowCross,
		PhaseYellowCross:   StepYellowCorner,
		PhaseYellowCorners: StepSolveLayer3,
		PhaseSolved:        StepDone,
	}
	for p, step := range want {
		require.Equal(t, step, p.NextStep(), p.String())
		require.NotEqual(t, "Unknown", p.DisplayName())
	}
}

func TestRunOnSolvedCubeAdvancesToDone(t *testing.T) {
	for _, step := range Steps {
		c := cube.New()
		res, err := step.Run(testContext(t), c)
		require.NoError(t, err)
		require.Equal(t, Advance, res.Outcome)
		require.Equal(t, StepDone, res.Next)
		require.Empty(t, res.Moves)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	c := applied(t, "R U F")
	res, err := StepDaisy.Run(ctx, c)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, res.Moves)
}

func TestRepeatStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	w := &work{ctx: ctx, c: cube.New()}
	err := w.repeat(moves.Sexy, 6, func() bool { return false }, "cancelled")
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, w.moves)
}

func TestRunRejectsCorruptCube(t *testing.T) {
	c := cube.New()
	c.Cubies[2].Colors[0] = cube.None
	_, err := StepDaisy.Run(testContext(t), c)
	require.ErrorIs(t, err, cube.ErrCorruptState)
}

func TestRunReportsAppliedMoves(t *testing.T) {
	c := cube.New()
	moves.ScrambleCube(c, rand.New(rand.NewSource(8)), 50, moves.ScrambleOptions{})
	start := c.Clone()

	res, err := StepDaisy.Run(testContext(t), c)
	require.NoError(t, err)
	require.NotEmpty(t, res.Moves)

	// The reported moves reproduce the step's effect.
	res.Moves.Apply(start)
	require.True(t, start.Equal(c))
}

func TestDaisyFromScrambled(t *testing.T) {
	c := cube.New()
	moves.ScrambleCube(c, rand.New(rand.NewSource(12)), 50, moves.ScrambleOptions{Spins: true})

	for i := 0; i < DefaultMaxStepIterations; i++ {
		res, err := StepDaisy.Run(testContext(t), c)
		require.NoError(t, err)
		if res.Outcome == Advance {
			phase, err := Detect(c)
			require.NoError(t, err)
			require.GreaterOrEqual(t, phase, PhaseDaisy)
			center, err := c.Center(cube.Yellow)
			require.NoError(t, err)
			require.Equal(t, cube.Up, center.Pos)
			return
		}
	}
	t.Fatal("daisy did not form")
}

func TestDaisySkipsAhead(t *testing.T) {
	c := applied(t, "U")
	res, err := StepDaisy.Run(testContext(t), c)
	require.NoError(t, err)
	require.Equal(t, Advance, res.Outcome)
	require.Equal(t, StepYellowCorner, res.Next)
}

func TestWhiteCrossFromDaisy(t *testing.T) {
	c := applied(t, "F2 R2 B2 L2")
	res, err := StepDaisy.Run(testContext(t), c)
	require.NoError(t, err)
	require.Equal(t, StepWhiteCross, res.Next)

	for i := 0; i < 8; i++ {
		res, err = StepWhiteCross.Run(testContext(t), c)
		require.NoError(t, err)
		if res.Outcome == Advance {
			break
		}
	}
	require.Equal(t, Advance, res.Outcome)
	require.Equal(t, StepWhiteCorners, res.Next)
	require.True(t, crossFormed(c))
}

func TestWhiteCrossInvariant(t *testing.T) {
	// No petals and no cross: the daisy step was skipped.
	c := applied(t, "F")
	_, err := StepWhiteCross.Run(testContext(t), c)
	require.ErrorIs(t, err, ErrInvariant)
}

func TestYellowCrossStep(t *testing.T) {
	// The U turn keeps a single trigger from solving the whole cube.
	c := cube.New()
	moves.U.Apply(c)
	moves.YellowCross.Inverse().Apply(c)
	require.Len(t, yellowEdgesUp(c), 2)

	var res StepResult
	var err error
	for i := 0; i < 10; i++ {
		res, err = StepYellowCross.Run(testContext(t), c)
		require.NoError(t, err)
		if res.Outcome == Advance {
			break
		}
	}
	require.Equal(t, Advance, res.Outcome)
	require.False(t, c.IsSolved())
	require.Equal(t, StepYellowCorner, res.Next)
	require.Len(t, yellowEdgesUp(c), 4)
	require.True(t, layerSolved(c, cube.LayerOne))
	require.True(t, layerSolved(c, cube.LayerTwo))
}

func TestYellowCornerStep(t *testing.T) {
	c := cube.New()
	moves.CornerCycle.Apply(c)
	require.False(t, cornersPlaced(c))

	var res StepResult
	var err error
	for i := 0; i < 10; i++ {
		res, err = StepYellowCorner.Run(testContext(t), c)
		require.NoError(t, err)
		if res.Outcome == Advance {
			break
		}
	}
	require.Equal(t, Advance, res.Outcome)
	require.Contains(t, []StepID{StepSolveLayer3, StepDone}, res.Next)
	require.True(t, cornersPlaced(c))
	require.True(t, layerSolved(c, cube.LayerOne))
	require.True(t, layerSolved(c, cube.LayerTwo))
}

func TestSolveLayer3Step(t *testing.T) {
	c := cube.New()
	moves.EdgeCycle.Apply(c)

	var res StepResult
	var err error
	for i := 0; i < 10 && !c.IsSolved(); i++ {
		res, err = StepSolveLayer3.Run(testContext(t), c)
		require.NoError(t, err)
	}
	require.True(t, c.IsSolved())
	res, err = StepSolveLayer3.Run(testContext(t), c)
	require.NoError(t, err)
	require.Equal(t, StepDone, res.Next)
}

func TestSideFront(t *testing.T) {
	tests := map[cube.Vec]cube.Vec{
		{X: 1, Y: 1, Z: 1}:   cube.Front,
		{X: 1, Y: -1, Z: -1}: cube.Right,
		{X: -1, Z: -1}:       cube.Back,
		{X: -1, Y: -1, Z: 1}: cube.Left,
	}
	for p, want := range tests {
		got, err := sideFront(p)
		require.NoError(t, err)
		require.Equal(t, want, got, "%v", p)

		// After the spin, p is the front-right column.
		w := &work{c: cube.New()}
		cb, err := w.c.CubeAt(p)
		require.NoError(t, err)
		require.NoError(t, w.front(got))
		require.Equal(t, 1, cb.Pos.X)
		require.Equal(t, 1, cb.Pos.Z)
	}

	_, err := sideFront(cube.Vec{Y: 1, Z: 1})
	require.ErrorIs(t, err, ErrInvariant)
}

func TestYellowUp(t *testing.T) {
	for _, notation := range []string{"", "x", "x x", "x'", "y x", "y' x"} {
		w := &work{c: applied(t, notation)}
		require.NoError(t, w.yellowUp())
		center, err := w.c.Center(cube.Yellow)
		require.NoError(t, err)
		require.Equal(t, cube.Up, center.Pos, notation)
		require.LessOrEqual(t, len(w.moves), 3)
	}
}

func TestDump(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dumps")
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	s := New(WithDumpDir(dir), WithLogger(logger))
	c := applied(t, "R U R' U'")
	path := s.dump(c, logger)
	require.NotEmpty(t, path)
	require.True(t, strings.HasPrefix(filepath.Base(path), "failed-"))
	require.Equal(t, ".rubiks", filepath.Ext(path))

	loaded, err := cube.Load(path)
	require.NoError(t, err)
	require.True(t, loaded.Equal(c))

	require.Empty(t, New().dump(c, logger), "no dump without a directory")
}

func TestTrackerReachesSolved(t *testing.T) {
	c := cube.New()
	moves.ScrambleCube(c, rand.New(rand.NewSource(21)), 50, moves.ScrambleOptions{Spins: true})

	res, err := New().Solve(testContext(t), c)
	require.NoError(t, err)

	tr, err := NewTracker(c)
	require.NoError(t, err)

	var seen []Phase
	var at []int
	tr.SetPhaseCallback(func(p Phase, moveIndex int) {
		seen = append(seen, p)
		at = append(at, moveIndex)
	})
	require.NoError(t, tr.Apply(res.Moves...))

	require.True(t, tr.IsSolved())
	require.Equal(t, PhaseSolved, tr.HighestPhase())
	require.Equal(t, PhaseSolved, tr.CurrentPhase())
	require.Equal(t, len(res.Moves), tr.MoveCount())
	require.NotEmpty(t, seen)
	require.Equal(t, PhaseSolved, seen[len(seen)-1])
	require.LessOrEqual(t, at[len(at)-1], len(res.Moves))
	for i := 1; i < len(seen); i++ {
		require.Greater(t, seen[i], seen[i-1], "phases are reported once, in order")
	}
	require.False(t, c.IsSolved(), "tracker works on its own copy")
}

func TestStepDisplayName(t *testing.T) {
	for _, step := range append(Steps, StepDone) {
		require.NotEqual(t, "Unknown", step.DisplayName(), step.String())
		require.NotEqual(t, "unknown", step.String())
	}
	require.Equal(t, "Unknown", StepID(42).DisplayName())
}
