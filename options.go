package gocube

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube_solver/internal/solver"
)

// Option configures a solve.
type Option func(*config)

type config struct {
	opts []solver.Option
}

func defaultConfig() *config {
	return &config{}
}

// WithMaxStepIterations bounds how often a single step may retry.
func WithMaxStepIterations(n int) Option {
	return func(c *config) {
		c.opts = append(c.opts, solver.WithMaxStepIterations(n))
	}
}

// WithMaxMoves bounds the length of a solution.
func WithMaxMoves(n int) Option {
	return func(c *config) {
		c.opts = append(c.opts, solver.WithMaxMoves(n))
	}
}

// WithTimeout bounds the time a solve may take.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.opts = append(c.opts, solver.WithTimeout(d))
	}
}

// WithDumpDir saves the working cube to dir when a solve fails.
func WithDumpDir(dir string) Option {
	return func(c *config) {
		c.opts = append(c.opts, solver.WithDumpDir(dir))
	}
}

// WithLogger sets the logger used while solving.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.opts = append(c.opts, solver.WithLogger(l))
	}
}
