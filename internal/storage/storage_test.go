package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
	"github.com/SeamusWaldron/gocube_solver/internal/moves"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMigrates(t *testing.T) {
	db := openTestDB(t)

	version, err := db.CurrentVersion()
	require.NoError(t, err)
	require.Equal(t, LatestVersion, version)

	// Reapplying is a no-op.
	require.NoError(t, db.MigrateUp())
	version, err = db.CurrentVersion()
	require.NoError(t, err)
	require.Equal(t, LatestVersion, version)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, path, db.Path())
	_, err = NewStateRepository(db).Save("start", cube.New())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	states, err := NewStateRepository(db).List()
	require.NoError(t, err)
	require.Len(t, states, 1)
}

func TestStateSaveLoad(t *testing.T) {
	repo := NewStateRepository(openTestDB(t))

	c := cube.New()
	seq, err := moves.ParseSequence("R U R' U' x F2")
	require.NoError(t, err)
	seq.Apply(c)

	id, err := repo.Save("sexy", c)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := repo.Load("sexy")
	require.NoError(t, err)
	require.True(t, loaded.Equal(c))

	_, err = repo.Load("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStateSaveReplacesByName(t *testing.T) {
	repo := NewStateRepository(openTestDB(t))

	scrambled := cube.New()
	moves.R.Apply(scrambled)
	_, err := repo.Save("work", scrambled)
	require.NoError(t, err)
	_, err = repo.Save("work", cube.New())
	require.NoError(t, err)
	_, err = repo.Save("other", scrambled)
	require.NoError(t, err)

	states, err := repo.List()
	require.NoError(t, err)
	require.Len(t, states, 2)

	byName := map[string]SavedState{}
	for _, s := range states {
		byName[s.Name] = s
	}
	require.True(t, byName["work"].Solved)
	require.False(t, byName["other"].Solved)
	require.False(t, byName["work"].CreatedAt.IsZero())

	loaded, err := repo.Load("work")
	require.NoError(t, err)
	require.True(t, loaded.IsSolved())
}

func TestStateDelete(t *testing.T) {
	repo := NewStateRepository(openTestDB(t))
	_, err := repo.Save("gone", cube.New())
	require.NoError(t, err)

	require.NoError(t, repo.Delete("gone"))
	require.ErrorIs(t, repo.Delete("gone"), ErrNotFound)
	_, err = repo.Load("gone")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStateLoadCorruptBlob(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`
		INSERT INTO cube_states (state_id, name, created_at, blob, solved)
		VALUES ('x', 'bad', '2024-01-01T00:00:00Z', X'0102', 0)
	`)
	require.NoError(t, err)

	_, err = NewStateRepository(db).Load("bad")
	require.ErrorIs(t, err, cube.ErrCorruptState)
}

func TestRunCreateGet(t *testing.T) {
	repo := NewRunRepository(openTestDB(t))

	seed := int64(42)
	run := &Run{
		Scramble:   "R U F",
		Solution:   "F' U' R'",
		FaceTurns:  3,
		TotalMoves: 3,
		DurationMs: 12,
		Status:     RunSolved,
		Seed:       &seed,
		Steps: []RunStep{
			{StepKey: "daisy", Iterations: 2, MoveCount: 1},
			{StepKey: "white_cross", Iterations: 1, MoveCount: 2},
		},
	}
	id, err := repo.Create(run)
	require.NoError(t, err)
	require.Equal(t, id, run.RunID)

	got, err := repo.Get(id)
	require.NoError(t, err)
	require.Equal(t, "R U F", got.Scramble)
	require.Equal(t, "F' U' R'", got.Solution)
	require.Equal(t, 3, got.FaceTurns)
	require.Equal(t, int64(12), got.DurationMs)
	require.Equal(t, RunSolved, got.Status)
	require.Nil(t, got.Error)
	require.NotNil(t, got.Seed)
	require.Equal(t, seed, *got.Seed)
	require.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Second)
	require.Len(t, got.Steps, 2)
	require.Equal(t, RunStep{Seq: 1, StepKey: "white_cross", Iterations: 1, MoveCount: 2}, got.Steps[1])

	_, err = repo.Get("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRunListStatsDelete(t *testing.T) {
	repo := NewRunRepository(openTestDB(t))

	_, err := repo.GetLast()
	require.ErrorIs(t, err, ErrNotFound)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg := "solve_layer3: iteration limit"
	runs := []*Run{
		{CreatedAt: base, TotalMoves: 100, Status: RunSolved},
		{CreatedAt: base.Add(time.Minute), TotalMoves: 300, Status: RunSolved},
		{CreatedAt: base.Add(2 * time.Minute), TotalMoves: 5001, Status: RunFailed, Error: &msg},
	}
	for _, run := range runs {
		_, err := repo.Create(run)
		require.NoError(t, err)
	}

	list, err := repo.List(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, runs[2].RunID, list[0].RunID)
	require.Equal(t, runs[1].RunID, list[1].RunID)
	require.NotNil(t, list[0].Error)
	require.Equal(t, msg, *list[0].Error)

	last, err := repo.GetLast()
	require.NoError(t, err)
	require.Equal(t, runs[2].RunID, last.RunID)

	st, err := repo.Stats()
	require.NoError(t, err)
	require.Equal(t, RunStats{Runs: 3, Solved: 2, Failed: 1, AvgMoves: 200, MaxMoves: 300}, st)

	require.NoError(t, repo.Delete(runs[0].RunID))
	require.ErrorIs(t, repo.Delete(runs[0].RunID), ErrNotFound)
}

func TestRunDeleteCascadesSteps(t *testing.T) {
	db := openTestDB(t)
	repo := NewRunRepository(db)
	id, err := repo.Create(&Run{Status: RunSolved, Steps: []RunStep{{StepKey: "daisy"}}})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(id))
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM solve_steps WHERE run_id = ?", id).Scan(&n))
	require.Zero(t, n)
}

func TestStatsEmpty(t *testing.T) {
	st, err := NewRunRepository(openTestDB(t)).Stats()
	require.NoError(t, err)
	require.Equal(t, RunStats{}, st)
}
