package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrIterationLimit is returned when a step keeps retrying past the
	// configured limit without making progress.
	ErrIterationLimit = errors.New("solver: step iteration limit exceeded")

	// ErrMoveLimit is returned when the solution grows past the configured
	// number of moves.
	ErrMoveLimit = errors.New("solver: move limit exceeded")

	// ErrInvariant is returned when a step finds the cube in a state its
	// predecessors should have ruled out. It indicates a solver defect.
	ErrInvariant = errors.New("solver: invariant violated")
)

// SolveError carries the step that failed along with the cause.
type SolveError struct {
	Step       StepID
	Iterations int
	Moves      int    // moves applied before the failure
	DumpPath   string // saved working cube, if diagnostics are enabled
	Err        error
}

func (e *SolveError) Error() string {
	msg := fmt.Sprintf("solver: step %s failed after %d iterations and %d moves: %v",
		e.Step, e.Iterations, e.Moves, e.Err)
	if e.DumpPath != "" {
		msg += " (state saved to " + e.DumpPath + ")"
	}
	return msg
}

func (e *SolveError) Unwrap() error {
	return e.Err
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
