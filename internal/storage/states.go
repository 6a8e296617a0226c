package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// SavedState is a named cube snapshot without its blob.
type SavedState struct {
	StateID   string
	Name      string
	CreatedAt time.Time
	Solved    bool
}

// StateRepository stores named cube states.
type StateRepository struct {
	db *DB
}

// NewStateRepository creates a new state repository.
func NewStateRepository(db *DB) *StateRepository {
	return &StateRepository{db: db}
}

// Save stores c under name, replacing any state with the same name, and
// returns the state ID.
func (r *StateRepository) Save(name string, c *cube.Cube) (string, error) {
	blob, err := c.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC()

	_, err = r.db.Exec(`
		INSERT INTO cube_states (state_id, name, created_at, blob, solved)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			state_id = excluded.state_id,
			created_at = excluded.created_at,
			blob = excluded.blob,
			solved = excluded.solved
	`, id, name, createdAt.Format(time.RFC3339), blob, c.IsSolved())

	if err != nil {
		return "", fmt.Errorf("failed to save state: %w", err)
	}

	return id, nil
}

// Load returns the cube stored under name.
func (r *StateRepository) Load(name string) (*cube.Cube, error) {
	var blob []byte
	err := r.db.QueryRow("SELECT blob FROM cube_states WHERE name = ?", name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("state %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	c := cube.New()
	if err := c.UnmarshalBinary(blob); err != nil {
		return nil, fmt.Errorf("state %q: %w", name, err)
	}
	return c, nil
}

// List retrieves saved states, newest first.
func (r *StateRepository) List() ([]SavedState, error) {
	rows, err := r.db.Query(`
		SELECT state_id, name, created_at, solved
		FROM cube_states
		ORDER BY created_at DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	defer rows.Close()

	var states []SavedState
	for rows.Next() {
		var s SavedState
		var createdAtStr string
		if err := rows.Scan(&s.StateID, &s.Name, &createdAtStr, &s.Solved); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		states = append(states, s)
	}

	return states, rows.Err()
}

// Delete removes the state stored under name.
func (r *StateRepository) Delete(name string) error {
	res, err := r.db.Exec("DELETE FROM cube_states WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("state %q: %w", name, ErrNotFound)
	}
	return nil
}
