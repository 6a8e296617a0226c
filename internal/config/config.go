// Package config loads the cubesolver YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

// Config holds all cubesolver configuration
type Config struct {
	StatePath string          `yaml:"state_path"`
	Database  DatabaseConfig  `yaml:"database"`
	Scramble  ScrambleConfig  `yaml:"scramble"`
	Solver    SolverConfig    `yaml:"solver"`
	Animation AnimationConfig `yaml:"animation"`
	Log       LogConfig       `yaml:"log"`
}

// DatabaseConfig holds the SQLite location
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ScrambleConfig holds scramble generation settings
type ScrambleConfig struct {
	Length      int   `yaml:"length"`
	Spins       bool  `yaml:"spins"`
	DoubleLayer bool  `yaml:"double_layer"`
	Seed        int64 `yaml:"seed"` // 0 picks a seed from the clock
}

// SolverConfig holds solver limits
type SolverConfig struct {
	MaxStepIterations int           `yaml:"max_step_iterations"`
	MaxMoves          int           `yaml:"max_moves"`
	Timeout           time.Duration `yaml:"timeout"`
	DumpDir           string        `yaml:"dump_dir"`
}

// AnimationConfig holds TUI animation settings
type AnimationConfig struct {
	DegreesPerSecond float64 `yaml:"degrees_per_second"`
	FPS              int     `yaml:"fps"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultPath returns ~/.cubesolver/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubesolver", "config.yaml"), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		StatePath: cube.DefaultStateFile,
		Scramble: ScrambleConfig{
			Length: 50,
			Spins:  true,
		},
		Solver: SolverConfig{
			MaxStepIterations: solver.DefaultMaxStepIterations,
			MaxMoves:          solver.DefaultMaxMoves,
			Timeout:           30 * time.Second,
		},
		Animation: AnimationConfig{
			DegreesPerSecond: 540,
			FPS:              60,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads configuration from a YAML file. Keys missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if zeroed
	def := Default()
	if cfg.StatePath == "" {
		cfg.StatePath = def.StatePath
	}
	if cfg.Scramble.Length <= 0 {
		cfg.Scramble.Length = def.Scramble.Length
	}
	if cfg.Solver.MaxStepIterations <= 0 {
		cfg.Solver.MaxStepIterations = def.Solver.MaxStepIterations
	}
	if cfg.Solver.MaxMoves <= 0 {
		cfg.Solver.MaxMoves = def.Solver.MaxMoves
	}
	if cfg.Animation.DegreesPerSecond <= 0 {
		cfg.Animation.DegreesPerSecond = def.Animation.DegreesPerSecond
	}
	if cfg.Animation.FPS <= 0 {
		cfg.Animation.FPS = def.Animation.FPS
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when path is empty or
// names a file that does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ScrambleOptions returns the move pool settings for scrambles.
func (c *Config) ScrambleOptions() moves.ScrambleOptions {
	return moves.ScrambleOptions{Spins: c.Scramble.Spins, DoubleLayer: c.Scramble.DoubleLayer}
}

// SolverOptions returns solver options for the configured limits.
func (c *Config) SolverOptions() []solver.Option {
	return []solver.Option{
		solver.WithMaxStepIterations(c.Solver.MaxStepIterations),
		solver.WithMaxMoves(c.Solver.MaxMoves),
		solver.WithTimeout(c.Solver.Timeout),
		solver.WithDumpDir(c.Solver.DumpDir),
	}
}

// LogLevel returns the configured logrus level.
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

// TickDegrees returns how far a move turns per animation frame.
func (c *Config) TickDegrees() float32 {
	return float32(c.Animation.DegreesPerSecond / float64(c.Animation.FPS))
}

// FrameInterval returns the time between animation frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Animation.FPS)
}
