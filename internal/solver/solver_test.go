package solver_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

var allMoves = moves.ScrambleOptions{Spins: true, DoubleLayer: true}

// SolverSuite groups end-to-end solving tests.
type SolverSuite struct {
	suite.Suite
	ctx    context.Context
	solver *solver.Solver
}

func (s *SolverSuite) SetupTest() {
	s.ctx = context.Background()
	s.solver = solver.New()
}

// requireSolves solves c and replays the solution on a copy.
func (s *SolverSuite) requireSolves(c *cube.Cube, label string) *solver.Result {
	res, err := s.solver.Solve(s.ctx, c)
	require.NoError(s.T(), err, label)

	replay := c.Clone()
	res.Moves.Apply(replay)
	if !replay.IsSolved() {
		s.T().Fatalf("%s: solution does not solve the cube\n%s", label, replay)
	}
	return res
}

// TestSolvedCube: nothing to do.
func (s *SolverSuite) TestSolvedCube() {
	res := s.requireSolves(cube.New(), "solved")
	require.Empty(s.T(), res.Moves)
}

// TestInputNotModified: the caller's cube is left alone.
func (s *SolverSuite) TestInputNotModified() {
	c := cube.New()
	moves.ScrambleCube(c, rand.New(rand.NewSource(1)), 50, allMoves)
	before := c.Clone()

	s.requireSolves(c, "scrambled")
	require.True(s.T(), c.Equal(before), "Solve must not mutate its input")
}

// TestReframedAndSliceStates: spins only re-frame; slice turns move centers.
func (s *SolverSuite) TestReframedAndSliceStates() {
	for _, notation := range []string{"x", "y x", "x x", "r", "u d'", "r' l", "U", "R U R' U'"} {
		seq, err := moves.ParseSequence(notation)
		require.NoError(s.T(), err)
		c := cube.New()
		seq.Apply(c)
		s.requireSolves(c, notation)
	}
}

// TestRandomScrambles: 50-move scrambles from the full move set.
func (s *SolverSuite) TestRandomScrambles() {
	rng := rand.New(rand.NewSource(2024))
	n := 300
	if testing.Short() {
		n = 50
	}
	for i := 0; i < n; i++ {
		c := cube.New()
		scramble := moves.ScrambleCube(c, rng, 50, allMoves)
		s.requireSolves(c, scramble.String())
	}
}

// TestFaceTurnScrambles: scrambles without spins or slices.
func (s *SolverSuite) TestFaceTurnScrambles() {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		c := cube.New()
		scramble := moves.ScrambleCube(c, rng, 50, moves.ScrambleOptions{})
		s.requireSolves(c, scramble.String())
	}
}

// TestStepStats: per-step move counts add up to the solution.
func (s *SolverSuite) TestStepStats() {
	c := cube.New()
	moves.ScrambleCube(c, rand.New(rand.NewSource(5)), 50, allMoves)
	res := s.requireSolves(c, "stats")

	require.NotEmpty(s.T(), res.Steps)
	total := 0
	last := solver.StepID(-1)
	for _, st := range res.Steps {
		require.Greater(s.T(), st.Step, last, "steps run in order")
		last = st.Step
		total += st.Moves
	}
	require.Equal(s.T(), len(res.Moves), total)
	require.Greater(s.T(), res.Duration, time.Duration(0))
}

// TestIterationLimit: a cap of one iteration cannot finish the daisy.
func (s *SolverSuite) TestIterationLimit() {
	c := cube.New()
	moves.ScrambleCube(c, rand.New(rand.NewSource(3)), 50, moves.ScrambleOptions{})

	_, err := solver.New(solver.WithMaxStepIterations(1)).Solve(s.ctx, c)
	require.ErrorIs(s.T(), err, solver.ErrIterationLimit)

	var serr *solver.SolveError
	require.True(s.T(), errors.As(err, &serr), "error must be SolveError")
	require.Equal(s.T(), solver.StepDaisy, serr.Step)
	require.Equal(s.T(), 2, serr.Iterations)
}

// TestMoveLimit: a tiny budget fails fast.
func (s *SolverSuite) TestMoveLimit() {
	c := cube.New()
	moves.ScrambleCube(c, rand.New(rand.NewSource(4)), 50, moves.ScrambleOptions{})

	res, err := solver.New(solver.WithMaxMoves(10)).Solve(s.ctx, c)
	require.ErrorIs(s.T(), err, solver.ErrMoveLimit)
	require.Greater(s.T(), len(res.Moves), 10)
}

// TestCancelledContext: cancellation is reported with the step.
func (s *SolverSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	c := cube.New()
	moves.R.Apply(c)
	_, err := s.solver.Solve(ctx, c)
	require.ErrorIs(s.T(), err, context.Canceled)

	var serr *solver.SolveError
	require.True(s.T(), errors.As(err, &serr))
	require.Equal(s.T(), solver.StepDaisy, serr.Step)
}

// TestCorruptCube: invalid input is rejected before solving.
func (s *SolverSuite) TestCorruptCube() {
	c := cube.New()
	c.Cubies[0].Pos = c.Cubies[1].Pos
	_, err := s.solver.Solve(s.ctx, c)
	require.ErrorIs(s.T(), err, cube.ErrCorruptState)
}

func TestSolverSuite(t *testing.T) {
	suite.Run(t, new(SolverSuite))
}

func TestSolveManyScrambles(t *testing.T) {
	if testing.Short() {
		t.Skip("long solver run")
	}

	s := solver.New(solver.WithTimeout(10 * time.Second))
	rng := rand.New(rand.NewSource(50000))
	for i := 0; i < 50000; i++ {
		c := cube.New()
		scramble := moves.ScrambleCube(c, rng, 50, allMoves)
		res, err := s.Solve(context.Background(), c)
		if err != nil {
			t.Fatalf("iteration %d: %v\nscramble: %s", i, err, scramble)
		}
		res.Moves.Apply(c)
		if !c.IsSolved() {
			t.Fatalf("iteration %d: solution does not solve\nscramble: %s", i, scramble)
		}
	}
}

func TestSolveError(t *testing.T) {
	err := &solver.SolveError{
		Step:       solver.StepSolveLayer3,
		Iterations: 65,
		Moves:      812,
		DumpPath:   "dumps/failed-x.rubiks",
		Err:        solver.ErrIterationLimit,
	}
	require.ErrorIs(t, err, solver.ErrIterationLimit)
	require.Contains(t, err.Error(), "solve_layer3")
	require.Contains(t, err.Error(), "65 iterations")
	require.Contains(t, err.Error(), "dumps/failed-x.rubiks")
}
