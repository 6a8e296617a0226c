package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/analysis"
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var (
	solveScramble string
	solveLength   int
	solveSeed     int64
	solveApply    bool
	solveNoRecord bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a cube and print the moves",
	Long: `Solve a cube with the layer-by-layer method.

The cube comes from, in order of preference:
  --scramble "R U R' ..."   applied to a solved cube
  --length N                a random N-move scramble
  the state file

The run is recorded in the database unless --no-record is given.

Examples:
  cubesolver solve
  cubesolver solve --scramble "R U R' U' F2"
  cubesolver solve --length 50 --seed 3 --apply`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&solveScramble, "scramble", "", "Scramble to apply to a solved cube")
	solveCmd.Flags().IntVarP(&solveLength, "length", "n", 0, "Solve a random scramble of this length")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "Random seed for --length")
	solveCmd.Flags().BoolVar(&solveApply, "apply", false, "Save the solved cube to the state file")
	solveCmd.Flags().BoolVar(&solveNoRecord, "no-record", false, "Do not record the run")
}

func runSolve(cmd *cobra.Command, args []string) error {
	c := cube.New()
	var scramble moves.Sequence
	var seedPtr *int64

	switch {
	case solveScramble != "":
		seq, err := moves.ParseSequence(solveScramble)
		if err != nil {
			return err
		}
		scramble = seq
		scramble.Apply(c)
	case solveLength > 0:
		rng, seed := newRand(solveSeed)
		scramble = moves.ScrambleCube(c, rng, solveLength, cfg.ScrambleOptions())
		seedPtr = &seed
	default:
		var err error
		if c, err = loadState(); err != nil {
			return err
		}
	}

	res, solveErr := newSolver().Solve(context.Background(), c)

	if !solveNoRecord {
		if err := recordRun(scramble, seedPtr, res, solveErr); err != nil {
			log.WithError(err).Warn("failed to record run")
		}
	}

	if solveErr != nil {
		var serr *solver.SolveError
		if errors.As(solveErr, &serr) && serr.DumpPath != "" {
			fmt.Printf("Failing state saved to %s\n", serr.DumpPath)
		}
		return solveErr
	}

	if len(scramble) > 0 {
		fmt.Println("Scramble")
		fmt.Println("--------")
		printMoves("  ", scramble.String())
		fmt.Println()
	}

	printResult(res)

	if solveApply {
		res.Moves.Apply(c)
		if err := c.Save(cfg.StatePath); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
		fmt.Printf("\nSaved solved cube to %s\n", cfg.StatePath)
	}
	return nil
}

func printResult(res *solver.Result) {
	sum := analysis.Summarize(res.Moves)

	fmt.Println("Solution")
	fmt.Println("--------")
	if len(res.Moves) == 0 {
		fmt.Println("  (already solved)")
	} else {
		printMoves("  ", res.Moves.String())
	}
	fmt.Println()

	fmt.Println("Statistics")
	fmt.Println("----------")
	fmt.Printf("Moves:       %d (%d face turns, %d spins, %d double-layer)\n",
		sum.TotalMoves, sum.FaceTurns, sum.Spins, sum.DoubleLayerTurns)
	fmt.Printf("Optimized:   %d (%.0f%%)\n", sum.OptimizedMoves, sum.Efficiency*100)
	fmt.Printf("Time:        %s\n", formatDuration(res.Duration))
	fmt.Println()

	if len(res.Steps) > 0 {
		fmt.Println("Steps")
		fmt.Println("-----")
		for _, st := range res.Steps {
			fmt.Printf("  %-18s %4d moves  %3d iterations\n", st.Step.DisplayName(), st.Moves, st.Iterations)
		}
	}
}

// recordRun stores a solver run. res may be partial when solveErr is set.
func recordRun(scramble moves.Sequence, seed *int64, res *solver.Result, solveErr error) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	run := newRun(scramble, seed, res, solveErr)
	id, err := storage.NewRunRepository(db).Create(run)
	if err != nil {
		return err
	}
	log.WithField("run", id).Debug("run recorded")
	return nil
}

func newRun(scramble moves.Sequence, seed *int64, res *solver.Result, solveErr error) *storage.Run {
	run := &storage.Run{
		Scramble: scramble.String(),
		Status:   storage.RunSolved,
		Seed:     seed,
	}
	if res != nil {
		run.Solution = res.Moves.String()
		run.FaceTurns = res.Moves.FaceTurns()
		run.Spins = res.Moves.Spins()
		run.TotalMoves = len(res.Moves)
		run.DurationMs = res.Duration.Milliseconds()
		for _, st := range res.Steps {
			run.Steps = append(run.Steps, storage.RunStep{
				StepKey:    st.Step.String(),
				Iterations: st.Iterations,
				MoveCount:  st.Moves,
			})
		}
	}
	if solveErr != nil {
		msg := solveErr.Error()
		run.Status = storage.RunFailed
		run.Error = &msg
	}
	run.CreatedAt = time.Now().UTC()
	return run
}
