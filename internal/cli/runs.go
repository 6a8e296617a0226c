package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/analysis"
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var (
	runsLimit    int
	runsLast     bool
	exportFormat string
	exportOutput string
	replayPaused bool
	replaySpeed  float64
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded solver runs",
	Long:  `Commands for listing, showing, exporting and replaying recorded solver runs.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show details of a run",
	Long: `Display a recorded run: scramble, solution, per-step breakdown and
move analysis.

Use --last to show the most recent run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRunsShow,
}

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate statistics over all runs",
	RunE:  runRunsStats,
}

var runsExportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Export a run's moves",
	Long: `Export the scramble and solution of a run in text or JSON format.

Examples:
  cubesolver runs export --last
  cubesolver runs export <run-id> --format json -o run.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRunsExport,
}

var runsReplayCmd = &cobra.Command{
	Use:   "replay [run-id]",
	Short: "Animate a run's solution",
	Long: `Replay a recorded run in the terminal: the scramble is applied at once,
then the solution is animated.

Usage:
  cubesolver runs replay --last
  cubesolver runs replay <run-id> --speed 2.0
  cubesolver runs replay <run-id> --paused     # step with n`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRunsReplay,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.AddCommand(runsListCmd)
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to display")

	runsCmd.AddCommand(runsStatsCmd)

	for _, c := range []*cobra.Command{runsShowCmd, runsExportCmd, runsReplayCmd} {
		runsCmd.AddCommand(c)
		c.Flags().BoolVar(&runsLast, "last", false, "Use the most recent run")
	}

	runsExportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	runsExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")

	runsReplayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Playback speed multiplier")
	runsReplayCmd.Flags().BoolVar(&replayPaused, "paused", false, "Start paused")
}

// getRun resolves the run named by args or --last.
func getRun(repo *storage.RunRepository, args []string) (*storage.Run, error) {
	if runsLast {
		return repo.GetLast()
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("please provide a run ID or use --last")
	}
	return repo.Get(args[0])
}

func runRunsList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := storage.NewRunRepository(db).List(runsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		fmt.Println("Record one with: cubesolver solve --length 50")
		return nil
	}

	fmt.Printf("Recent runs (showing %d):\n", len(runs))
	fmt.Println()
	fmt.Printf("%-36s  %-20s  %-7s  %-6s  %-10s  %s\n", "ID", "Created", "Status", "Moves", "Time", "Scramble")
	fmt.Println("------------------------------------  --------------------  -------  ------  ----------  --------")

	for _, r := range runs {
		scramble := r.Scramble
		if scramble == "" {
			scramble = "(state file)"
		} else if len(scramble) > 30 {
			scramble = scramble[:27] + "..."
		}
		fmt.Printf("%-36s  %-20s  %-7s  %-6d  %-10s  %s\n",
			r.RunID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			r.TotalMoves,
			formatDuration(time.Duration(r.DurationMs)*time.Millisecond),
			scramble,
		)
	}

	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := getRun(storage.NewRunRepository(db), args)
	if err != nil {
		return err
	}

	solution, err := moves.ParseSequence(run.Solution)
	if err != nil {
		return fmt.Errorf("stored solution: %w", err)
	}

	fmt.Println("Run Details")
	fmt.Println("===========")
	fmt.Println()
	fmt.Printf("ID:      %s\n", run.RunID)
	fmt.Printf("Created: %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Status:  %s\n", run.Status)
	if run.Error != nil {
		fmt.Printf("Error:   %s\n", errorStyle.Render(*run.Error))
	}
	if run.Seed != nil {
		fmt.Printf("Seed:    %d\n", *run.Seed)
	}
	fmt.Printf("Time:    %s\n", formatDuration(time.Duration(run.DurationMs)*time.Millisecond))
	fmt.Println()

	if run.Scramble != "" {
		fmt.Println("Scramble")
		fmt.Println("--------")
		printMoves("  ", run.Scramble)
		fmt.Println()
	}

	fmt.Println("Solution")
	fmt.Println("--------")
	printMoves("  ", run.Solution)
	fmt.Println()

	if len(run.Steps) > 0 {
		fmt.Println("Steps")
		fmt.Println("-----")
		for _, st := range run.Steps {
			fmt.Printf("  %-14s %4d moves  %3d iterations\n", st.StepKey, st.MoveCount, st.Iterations)
		}
		fmt.Println()
	}

	sum := analysis.Summarize(solution)
	fmt.Println("Analysis")
	fmt.Println("--------")
	fmt.Printf("Moves:          %d (%d face turns, %d spins, %d double-layer)\n",
		sum.TotalMoves, sum.FaceTurns, sum.Spins, sum.DoubleLayerTurns)
	fmt.Printf("Optimized:      %d (%.0f%%)\n", sum.OptimizedMoves, sum.Efficiency*100)
	fmt.Printf("Cancellations:  %d\n", sum.Cancellations)
	fmt.Printf("Four in a row:  %d\n", sum.FourInARow)
	if sum.MostUsedFace != "" {
		fmt.Printf("Most used face: %s (%d)\n", sum.MostUsedFace, sum.FaceCounts[sum.MostUsedFace])
	}

	triggers := analysis.AnalyzeTriggers(solution)
	if triggers.TotalTriggers > 0 {
		fmt.Println()
		fmt.Println("Triggers")
		fmt.Println("--------")
		for _, tr := range analysis.Triggers {
			if n := triggers.Counts[tr.Name]; n > 0 {
				fmt.Printf("  %-14s %d\n", tr.Name, n)
			}
		}
		fmt.Printf("  %-14s %d\n", "repeats", triggers.ConsecutiveRepeats)
		fmt.Printf("  %-14s %d\n", "unmatched", triggers.UnmatchedMoves)
	}

	return nil
}

func runRunsStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewRunRepository(db)
	st, err := repo.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Runs:      %d\n", st.Runs)
	fmt.Printf("Solved:    %d\n", st.Solved)
	fmt.Printf("Failed:    %d\n", st.Failed)
	if st.Solved > 0 {
		fmt.Printf("Avg moves: %.1f\n", st.AvgMoves)
		fmt.Printf("Max moves: %d\n", st.MaxMoves)
	}

	runs, err := repo.List(st.Runs)
	if err != nil {
		return err
	}
	perRun := make(map[string]*analysis.NGramReport, len(runs))
	for _, r := range runs {
		seq, err := moves.ParseSequence(r.Solution)
		if err != nil {
			continue
		}
		perRun[r.RunID] = analysis.MineNGrams(seq, 4, 8, 10)
	}
	printNGrams(analysis.MineNGramsAcrossRuns(perRun, 4, 8, 3))
	return nil
}

func printNGrams(report *analysis.NGramReport) {
	if len(report.TopNGrams) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Frequent sequences")
	fmt.Println("------------------")
	sizes := make([]int, 0, len(report.TopNGrams))
	for n := range report.TopNGrams {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	for _, n := range sizes {
		for _, ng := range report.TopNGrams[n] {
			fmt.Printf("  %2d  %6dx  %s\n", n, ng.Count, ng.Notation())
		}
	}
}

// runJSON is the export format of a run.
type runJSON struct {
	RunID     string            `json:"run_id"`
	CreatedAt time.Time         `json:"created_at"`
	Status    string            `json:"status"`
	Error     *string           `json:"error,omitempty"`
	Seed      *int64            `json:"seed,omitempty"`
	Scramble  []string          `json:"scramble"`
	Solution  []string          `json:"solution"`
	Steps     []storage.RunStep `json:"steps"`
	Summary   *analysis.Summary `json:"summary"`
}

func runRunsExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := getRun(storage.NewRunRepository(db), args)
	if err != nil {
		return err
	}

	var output string
	switch strings.ToLower(exportFormat) {
	case "txt":
		output = run.Solution
		if run.Scramble != "" {
			output = run.Scramble + "\n" + run.Solution
		}

	case "json":
		solution, err := moves.ParseSequence(run.Solution)
		if err != nil {
			return fmt.Errorf("stored solution: %w", err)
		}
		data, err := json.MarshalIndent(runJSON{
			RunID:     run.RunID,
			CreatedAt: run.CreatedAt,
			Status:    run.Status,
			Error:     run.Error,
			Seed:      run.Seed,
			Scramble:  strings.Fields(run.Scramble),
			Solution:  strings.Fields(run.Solution),
			Steps:     run.Steps,
			Summary:   analysis.Summarize(solution),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		output = string(data)

	default:
		return fmt.Errorf("unknown format: %s (use txt or json)", exportFormat)
	}

	if exportOutput == "" {
		fmt.Println(output)
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Exported run %s to %s\n", run.RunID, exportOutput)
	return nil
}

func runRunsReplay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	run, err := getRun(storage.NewRunRepository(db), args)
	db.Close()
	if err != nil {
		return err
	}

	if run.Scramble == "" {
		return fmt.Errorf("run %s solved the state file; nothing to replay", run.RunID)
	}
	scramble, err := moves.ParseSequence(run.Scramble)
	if err != nil {
		return fmt.Errorf("stored scramble: %w", err)
	}
	solution, err := moves.ParseSequence(run.Solution)
	if err != nil {
		return fmt.Errorf("stored solution: %w", err)
	}

	start := cube.New()
	scramble.Apply(start)

	sess := newSession()
	if err := sess.Replace(start); err != nil {
		return err
	}
	if err := sess.Enqueue(solution...); err != nil {
		return err
	}

	model := newPlayModel(sess, "Replay "+run.RunID)
	model.replay = true
	model.paused = replayPaused
	if replaySpeed > 0 {
		model.degrees *= float32(replaySpeed)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}
