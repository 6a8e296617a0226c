package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/analysis"
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var (
	benchCount  int
	benchLength int
	benchSeed   int64
	benchRecord bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Solve many random scrambles and report statistics",
	Long: `Solve --count random scrambles, replay every solution to check it, and
report move counts, timing and the most frequent move sequences.

Failed runs are always recorded; --record stores every run.`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVar(&benchCount, "count", 1000, "Number of scrambles")
	benchCmd.Flags().IntVarP(&benchLength, "length", "n", 0, "Scramble length (default from config)")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 0, "Random seed")
	benchCmd.Flags().BoolVar(&benchRecord, "record", false, "Record every run, not only failures")
}

// benchStats accumulates results across solves.
type benchStats struct {
	solved, failed int
	totalMoves     int
	maxMoves       int
	minMoves       int
	optimized      int
	elapsed        time.Duration
	steps          map[solver.StepID]int
	ngrams         map[string]*analysis.NGramReport
}

func (b *benchStats) add(id string, res *solver.Result) {
	n := len(res.Moves)
	b.solved++
	b.totalMoves += n
	if n > b.maxMoves {
		b.maxMoves = n
	}
	if b.minMoves == 0 || n < b.minMoves {
		b.minMoves = n
	}
	b.optimized += len(analysis.Optimize(res.Moves))
	b.elapsed += res.Duration
	for _, st := range res.Steps {
		b.steps[st.Step] += st.Moves
	}
	b.ngrams[id] = analysis.MineNGrams(res.Moves, 4, 8, 10)
}

func runBench(cmd *cobra.Command, args []string) error {
	n := benchLength
	if n <= 0 {
		n = cfg.Scramble.Length
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	runs := storage.NewRunRepository(db)

	s := newSolver()
	rng, seed := newRand(benchSeed)
	stats := &benchStats{
		steps:  make(map[solver.StepID]int),
		ngrams: make(map[string]*analysis.NGramReport),
	}

	fmt.Printf("Solving %d scrambles of %d moves (seed %d)\n", benchCount, n, seed)
	start := time.Now()

	for i := 0; i < benchCount; i++ {
		if i > 0 && i%1000 == 0 {
			log.WithField("done", i).Info("progress")
		}
		// Each scramble gets its own seed so a recorded run can be
		// reproduced with solve --length --seed.
		runSeed := rng.Int63()
		c := cube.New()
		scramble := moves.ScrambleCube(c, rand.New(rand.NewSource(runSeed)), n, cfg.ScrambleOptions())

		res, err := s.Solve(cmd.Context(), c)
		if err == nil {
			replay := c.Clone()
			res.Moves.Apply(replay)
			if !replay.IsSolved() {
				err = fmt.Errorf("%w: solution does not solve the cube", solver.ErrInvariant)
			}
		}
		if errors.Is(err, context.Canceled) {
			return err
		}

		if err != nil || benchRecord {
			run := newRun(scramble, &runSeed, res, err)
			id, rerr := runs.Create(run)
			if rerr != nil {
				log.WithError(rerr).Warn("failed to record run")
			}
			if err != nil {
				stats.failed++
				fmt.Printf("  #%d failed: %v (run %s)\n", i, err, id)
				continue
			}
			stats.add(id, res)
			continue
		}
		stats.add(fmt.Sprintf("bench-%d", i), res)
	}

	wall := time.Since(start)
	fmt.Println()
	fmt.Println("Results")
	fmt.Println("-------")
	fmt.Printf("Solved:     %d/%d\n", stats.solved, benchCount)
	fmt.Printf("Failed:     %d\n", stats.failed)
	if stats.solved > 0 {
		fmt.Printf("Avg moves:  %.1f (optimized %.1f)\n",
			float64(stats.totalMoves)/float64(stats.solved),
			float64(stats.optimized)/float64(stats.solved))
		fmt.Printf("Min/Max:    %d/%d\n", stats.minMoves, stats.maxMoves)
		fmt.Printf("Avg time:   %s\n", formatDuration(stats.elapsed/time.Duration(stats.solved)))
		fmt.Printf("Wall time:  %s\n", formatDuration(wall))
		fmt.Println()

		fmt.Println("Avg moves per step")
		for _, step := range solver.Steps {
			fmt.Printf("  %-18s %6.1f\n", step.DisplayName(), float64(stats.steps[step])/float64(stats.solved))
		}
	}

	printNGrams(analysis.MineNGramsAcrossRuns(stats.ngrams, 4, 8, 3))

	if stats.failed > 0 {
		return fmt.Errorf("%d of %d solves failed", stats.failed, benchCount)
	}
	return nil
}
