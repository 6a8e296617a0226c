package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
)

func seq(t *testing.T, notation string) moves.Sequence {
	t.Helper()
	s, err := moves.ParseSequence(notation)
	require.NoError(t, err)
	return s
}

func TestSummarize(t *testing.T) {
	s := Summarize(seq(t, "R R' U U U U r x F"))

	require.Equal(t, 9, s.TotalMoves)
	require.Equal(t, 7, s.FaceTurns)
	require.Equal(t, 1, s.DoubleLayerTurns)
	require.Equal(t, 1, s.Spins)
	require.Equal(t, 1, s.Cancellations)
	require.Equal(t, 1, s.FourInARow)
	require.Equal(t, 3, s.OptimizedMoves)
	require.InDelta(t, 3.0/9.0, s.Efficiency, 1e-9)
	require.Equal(t, 2, s.FaceCounts["R"])
	require.Equal(t, 4, s.FaceCounts["U"])
	require.Equal(t, "U", s.MostUsedFace)
	require.Equal(t, 3, s.FacePairs["UU"])
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	require.Zero(t, s.TotalMoves)
	require.Zero(t, s.Efficiency)
	require.Empty(t, s.MostUsedFace)
}

func TestOptimize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"R R'", ""},
		{"R U U' R'", ""},
		{"R R R", "R'"},
		{"R R R R", ""},
		{"R R R R R", "R"},
		{"F R R R R'", "F R' R'"},
		{"x y y' x'", ""},
		{"R U R' U'", "R U R' U'"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Optimize(seq(t, tt.in)).String(), tt.in)
	}
}

func TestOptimizeIsEquivalent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pool := moves.ScrambleOptions{Spins: true, DoubleLayer: true}.Pool()
	for i := 0; i < 200; i++ {
		// A small pool makes repeats and cancellations likely.
		var ms moves.Sequence
		for j := 0; j < 40; j++ {
			ms = append(ms, pool[rng.Intn(4)])
		}

		a, b := cube.New(), cube.New()
		ms.Apply(a)
		opt := Optimize(ms)
		opt.Apply(b)
		require.True(t, a.Equal(b), ms.String())
		require.LessOrEqual(t, len(opt), len(ms))
	}
}

func TestMineNGrams(t *testing.T) {
	ms := moves.Sexy.Repeat(3).Then(moves.F).Then(moves.Sexy...)
	report := MineNGrams(ms, 4, 5, 3)

	fours := report.TopNGrams[4]
	require.NotEmpty(t, fours)
	require.Equal(t, "R U R' U'", fours[0].Notation())
	require.Equal(t, 4, fours[0].Count)
	require.Equal(t, 0, fours[0].Occurrences[0].StartIndex)
	require.Len(t, fours, 3)

	require.Empty(t, MineNGrams(moves.Sexy, 5, 6, 3).TopNGrams)
}

func TestMineNGramsAcrossRuns(t *testing.T) {
	perRun := map[string]*NGramReport{
		"a": MineNGrams(moves.Sexy.Repeat(2), 4, 4, 5),
		"b": MineNGrams(moves.Sexy.Repeat(3), 4, 4, 5),
	}
	report := MineNGramsAcrossRuns(perRun, 4, 4, 1)
	top := report.TopNGrams[4]
	require.Len(t, top, 1)
	require.Equal(t, "R U R' U'", top[0].Notation())
	require.Equal(t, 5, top[0].Count)
	require.Equal(t, "a", top[0].Occurrences[0].RunID)
}

func TestToken(t *testing.T) {
	seen := map[uint8]bool{}
	for _, m := range moves.All() {
		tok := Token(m)
		require.False(t, seen[tok])
		seen[tok] = true
		require.Equal(t, m.Notation, notationOf(tok))
	}
	require.Equal(t, "?", notationOf(200))

	seq := moves.Sequence{moves.R, moves.UPrime, moves.SpinRight}
	require.Equal(t, []uint8{Token(moves.R), Token(moves.UPrime), Token(moves.SpinRight)}, tokenize(seq))
}

func TestAnalyzeTriggers(t *testing.T) {
	ms := moves.Sexy.Repeat(2).
		Then(moves.SpinRight).
		Then(moves.InsertRight...).
		Then(moves.F).
		Then(moves.YellowCross...)
	report := AnalyzeTriggers(ms)

	require.Equal(t, 2, report.Counts["sexy"])
	require.Equal(t, 1, report.Counts["insert right"])
	require.Equal(t, 1, report.Counts["yellow cross"])
	require.Equal(t, 4, report.TotalTriggers)
	require.Equal(t, 1, report.ConsecutiveRepeats)
	require.Equal(t, 1, report.UnmatchedMoves)
	require.Equal(t, 1, report.Spins)
	require.Equal(t, TriggerMatch{Name: "insert right", StartIndex: 9, EndIndex: 16}, report.Matches[2])
}
