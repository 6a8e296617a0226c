package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	RunSolved = "solved"
	RunFailed = "failed"
)

// Run is one recorded solver invocation.
type Run struct {
	RunID      string
	CreatedAt  time.Time
	Scramble   string
	Solution   string
	FaceTurns  int
	Spins      int
	TotalMoves int
	DurationMs int64
	Status     string
	Error      *string
	Seed       *int64
	Steps      []RunStep
}

// RunStep is the per-step breakdown of a run.
type RunStep struct {
	Seq        int
	StepKey    string
	Iterations int
	MoveCount  int
}

// RunStats aggregates recorded runs.
type RunStats struct {
	Runs     int
	Solved   int
	Failed   int
	AvgMoves float64
	MaxMoves int
}

// RunRepository provides CRUD operations for solver runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create stores run and its steps in a single transaction and returns the
// run ID. A zero CreatedAt is set to now.
func (r *RunRepository) Create(run *Run) (string, error) {
	id := uuid.New().String()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	err := r.db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO solve_runs (run_id, created_at, scramble_text, solution_text, face_turns, spins, total_moves, duration_ms, status, error, seed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, run.CreatedAt.Format(time.RFC3339), run.Scramble, run.Solution,
			run.FaceTurns, run.Spins, run.TotalMoves, run.DurationMs, run.Status, run.Error, run.Seed)
		if err != nil {
			return fmt.Errorf("failed to create run: %w", err)
		}

		for i, st := range run.Steps {
			_, err := tx.Exec(`
				INSERT INTO solve_steps (run_id, seq, step_key, iterations, move_count)
				VALUES (?, ?, ?, ?, ?)
			`, id, i, st.StepKey, st.Iterations, st.MoveCount)
			if err != nil {
				return fmt.Errorf("failed to create step %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	run.RunID = id
	return id, nil
}

const runColumns = `run_id, created_at, scramble_text, solution_text, face_turns, spins, total_moves, duration_ms, status, error, seed`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var createdAtStr string
	var scramble, solution sql.NullString
	err := row.Scan(
		&run.RunID, &createdAtStr, &scramble, &solution,
		&run.FaceTurns, &run.Spins, &run.TotalMoves, &run.DurationMs,
		&run.Status, &run.Error, &run.Seed,
	)
	if err != nil {
		return nil, err
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	run.Scramble = scramble.String
	run.Solution = solution.String
	return &run, nil
}

// Get retrieves a run with its steps.
func (r *RunRepository) Get(runID string) (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`SELECT `+runColumns+` FROM solve_runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %q: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Steps, err = r.steps(runID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetLast retrieves the most recent run.
func (r *RunRepository) GetLast() (*Run, error) {
	var runID string
	err := r.db.QueryRow(`
		SELECT run_id FROM solve_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}

	return r.Get(runID)
}

func (r *RunRepository) steps(runID string) ([]RunStep, error) {
	rows, err := r.db.Query(`
		SELECT seq, step_key, iterations, move_count
		FROM solve_steps
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get steps: %w", err)
	}
	defer rows.Close()

	var steps []RunStep
	for rows.Next() {
		var st RunStep
		if err := rows.Scan(&st.Seq, &st.StepKey, &st.Iterations, &st.MoveCount); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// List retrieves recent runs without their steps.
func (r *RunRepository) List(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT `+runColumns+`
		FROM solve_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// Stats aggregates all recorded runs.
func (r *RunRepository) Stats() (RunStats, error) {
	var st RunStats
	var avg sql.NullFloat64
	var maxMoves sql.NullInt64
	err := r.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			AVG(CASE WHEN status = ? THEN total_moves END),
			MAX(CASE WHEN status = ? THEN total_moves END)
		FROM solve_runs
	`, RunSolved, RunSolved, RunSolved).Scan(&st.Runs, &st.Solved, &avg, &maxMoves)
	if err != nil {
		return st, fmt.Errorf("failed to get run stats: %w", err)
	}
	st.Failed = st.Runs - st.Solved
	st.AvgMoves = avg.Float64
	st.MaxMoves = int(maxMoves.Int64)
	return st, nil
}

// Delete deletes a run and its steps (cascading).
func (r *RunRepository) Delete(runID string) error {
	res, err := r.db.Exec("DELETE FROM solve_runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %q: %w", runID, ErrNotFound)
	}
	return nil
}
