// Package cli implements the command-line interface for cubesolver.
package cli

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/config"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	statePath  string
	verbose    bool

	// Loaded in PersistentPreRunE
	cfg *config.Config
	log = logrus.New()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesolver",
	Short: "Rubik's Cube model and layer-by-layer solver",
	Long: `cubesolver - A 3x3x3 Rubik's Cube model with a move engine and a
beginner's layer-by-layer solver.

Scramble and solve from the command line, play with an animated cube in
the terminal, and keep saved states and solver runs in a local database.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.cubesolver/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubesolver/cubesolver.db)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Cube state file (default: cube.rubiks)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	var err error
	if configPath != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return err
	}

	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if statePath != "" {
		cfg.StatePath = statePath
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(cfg.LogLevel())
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithFields(logrus.Fields{
		"config": path,
		"state":  cfg.StatePath,
	}).Debug("configuration loaded")
	return nil
}

func openDB() (*storage.DB, error) {
	path := cfg.Database.Path
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newSolver() *solver.Solver {
	return solver.New(append(cfg.SolverOptions(), solver.WithLogger(log))...)
}

// newRand returns the scramble source and its seed. A zero seed picks one
// from the clock.
func newRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = cfg.Scramble.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}

// printMoves prints notation wrapped to ~60 characters per line.
func printMoves(indent, notation string) {
	var line string
	for _, tok := range strings.Fields(notation) {
		if line != "" && len(line)+len(tok)+1 > 60 {
			fmt.Printf("%s%s\n", indent, line)
			line = ""
		}
		if line == "" {
			line = tok
		} else {
			line += " " + tok
		}
	}
	if line != "" {
		fmt.Printf("%s%s\n", indent, line)
	}
}
