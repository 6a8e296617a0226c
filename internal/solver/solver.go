// Package solver implements a beginner's layer-by-layer solver: daisy,
// white cross, white corners, second layer, yellow cross, yellow corners
// and the last layer edges.
//
// The solver works on a private copy of the cube and returns the moves
// that solve it. It mimics a human method and makes no attempt at a short
// solution.
package solver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
)

// Defaults for the solver limits.
const (
	DefaultMaxStepIterations = 64
	DefaultMaxMoves          = 5000
)

// Option configures a Solver.
type Option func(*config)

type config struct {
	maxStepIterations int
	maxMoves          int
	timeout           time.Duration
	dumpDir           string
	logger            logrus.FieldLogger
}

func defaultConfig() *config {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return &config{
		maxStepIterations: DefaultMaxStepIterations,
		maxMoves:          DefaultMaxMoves,
		logger:            logger,
	}
}

// WithMaxStepIterations caps how many times a single step may run.
func WithMaxStepIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxStepIterations = n
		}
	}
}

// WithMaxMoves caps the length of a solution.
func WithMaxMoves(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxMoves = n
		}
	}
}

// WithTimeout bounds the wall-clock time of a Solve call. Zero means no
// limit beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithDumpDir enables diagnostics: when a step hits an invariant
// violation, the working cube is saved under dir before Solve returns.
func WithDumpDir(dir string) Option {
	return func(c *config) {
		c.dumpDir = dir
	}
}

// WithLogger sets the logger for step transitions.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Solver solves cubes. A Solver holds no state between calls and is safe
// for concurrent use.
type Solver struct {
	cfg *config
}

// New creates a solver.
func New(opts ...Option) *Solver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Solver{cfg: cfg}
}

// StepStat summarises one completed step.
type StepStat struct {
	Step       StepID
	Iterations int
	Moves      int
}

// Result is a solution and how it was found.
type Result struct {
	Moves    moves.Sequence
	Steps    []StepStat
	Duration time.Duration
}

// Solve returns a move sequence that takes c to the solved state. c is not
// modified.
func (s *Solver) Solve(ctx context.Context, c *cube.Cube) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if s.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.timeout)
		defer cancel()
	}

	start := time.Now()
	working := c.Clone()
	res := &Result{}
	stack := []StepID{StepDaisy}

	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		log := s.cfg.logger.WithField("step", step.String())
		stepStart := len(res.Moves)
		iter := 0
		fail := func(err error) (*Result, error) {
			res.Duration = time.Since(start)
			return res, &SolveError{Step: step, Iterations: iter, Moves: len(res.Moves), Err: err}
		}

		for {
			iter++
			if err := ctx.Err(); err != nil {
				return fail(err)
			}
			if working.IsSolved() {
				res.Steps = append(res.Steps, StepStat{Step: step, Iterations: iter - 1, Moves: len(res.Moves) - stepStart})
				res.Duration = time.Since(start)
				log.WithField("moves", len(res.Moves)).Debug("solved")
				return res, nil
			}
			if iter > s.cfg.maxStepIterations {
				return fail(ErrIterationLimit)
			}

			out, err := step.Run(ctx, working)
			res.Moves = append(res.Moves, out.Moves...)
			if err != nil {
				serr := &SolveError{Step: step, Iterations: iter, Moves: len(res.Moves), Err: err}
				if errors.Is(err, ErrInvariant) {
					serr.DumpPath = s.dump(working, log)
				}
				res.Duration = time.Since(start)
				return res, serr
			}
			if len(res.Moves) > s.cfg.maxMoves {
				return fail(ErrMoveLimit)
			}

			log.WithFields(logrus.Fields{
				"iteration": iter,
				"moves":     len(out.Moves),
				"outcome":   out.Outcome.String(),
			}).Trace("step ran")

			if out.Outcome == Advance {
				res.Steps = append(res.Steps, StepStat{Step: step, Iterations: iter, Moves: len(res.Moves) - stepStart})
				log.WithFields(logrus.Fields{
					"iteration": iter,
					"moves":     len(res.Moves) - stepStart,
					"next":      out.Next.String(),
				}).Debug("step complete")
				if out.Next != StepDone {
					stack = append(stack, out.Next)
				}
				break
			}
		}
	}

	res.Duration = time.Since(start)
	if !working.IsSolved() {
		return res, &SolveError{Step: StepDone, Moves: len(res.Moves), Err: invariantf("steps exhausted before the cube was solved")}
	}
	return res, nil
}

// dump saves the working cube for offline diagnosis and returns its path,
// or "" when diagnostics are off or the save failed.
func (s *Solver) dump(c *cube.Cube, log logrus.FieldLogger) string {
	if s.cfg.dumpDir == "" {
		return ""
	}
	if err := os.MkdirAll(s.cfg.dumpDir, 0755); err != nil {
		log.WithError(err).Warn("failed to create dump directory")
		return ""
	}
	path := filepath.Join(s.cfg.dumpDir, "failed-"+uuid.NewString()+".rubiks")
	if err := c.Save(path); err != nil {
		log.WithError(err).Warn("failed to save failing cube state")
		return ""
	}
	log.WithField("path", path).Warn("saved failing cube state")
	return path
}

// Solve solves c with default options.
func Solve(ctx context.Context, c *cube.Cube) (*Result, error) {
	return New().Solve(ctx, c)
}
