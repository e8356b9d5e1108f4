package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSaveRun_AssignsID(t *testing.T) {
	s := testStore(t)

	id, err := s.SaveRun(context.Background(), RunRecord{
		Engines:    "google_dorks,gov_il_orgs",
		People:     12,
		Orgs:       4,
		OutputDir:  "output",
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestSaveRun_KeepsExplicitID(t *testing.T) {
	s := testStore(t)

	id, err := s.SaveRun(context.Background(), RunRecord{
		ID:         "run-1",
		Engines:    "linkedin_api",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "run-1", id)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		_, err := s.SaveRun(ctx, RunRecord{
			ID:         id,
			Engines:    "google_dorks",
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
}

func TestListRuns_RoundTripsFields(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	_, err := s.SaveRun(ctx, RunRecord{
		ID:         "run-2",
		Engines:    "google_dorks,gov_il_orgs",
		People:     7,
		Orgs:       3,
		OutputDir:  "output",
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
	})
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "google_dorks,gov_il_orgs", got.Engines)
	assert.Equal(t, 7, got.People)
	assert.Equal(t, 3, got.Orgs)
	assert.Equal(t, "output", got.OutputDir)
	assert.True(t, got.StartedAt.Equal(started))
}

func TestListRuns_Empty(t *testing.T) {
	s := testStore(t)
	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
