package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration, database and cube state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("Configuration")
	fmt.Println("-------------")
	fmt.Printf("State file:   %s\n", cfg.StatePath)
	fmt.Printf("Scramble:     %d moves (spins %v, double-layer %v)\n",
		cfg.Scramble.Length, cfg.Scramble.Spins, cfg.Scramble.DoubleLayer)
	fmt.Printf("Solver:       %d iterations/step, %d moves, timeout %s\n",
		cfg.Solver.MaxStepIterations, cfg.Solver.MaxMoves, cfg.Solver.Timeout)
	if cfg.Solver.DumpDir != "" {
		fmt.Printf("Dump dir:     %s\n", cfg.Solver.DumpDir)
	}
	fmt.Printf("Log level:    %s\n", cfg.LogLevel())
	fmt.Println()

	c, err := loadState()
	if err != nil {
		fmt.Printf("Cube:         %s\n", errorStyle.Render(err.Error()))
	} else {
		phase, err := solver.Detect(c)
		if err != nil {
			return err
		}
		fmt.Printf("Cube:         %s\n", phase.DisplayName())
	}
	fmt.Println()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := db.CurrentVersion()
	if err != nil {
		return err
	}
	states, err := storage.NewStateRepository(db).List()
	if err != nil {
		return err
	}
	st, err := storage.NewRunRepository(db).Stats()
	if err != nil {
		return err
	}

	fmt.Println("Database")
	fmt.Println("--------")
	fmt.Printf("Path:         %s\n", db.Path())
	fmt.Printf("Schema:       v%d\n", version)
	fmt.Printf("States:       %d\n", len(states))
	fmt.Printf("Runs:         %d (%d solved, %d failed)\n", st.Runs, st.Solved, st.Failed)
	return nil
}
