package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) TimedJobRepository {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewTimedJobRepository(db, DialectSQLite)
	require.NoError(t, err)
	return repo
}

func TestUpsertOnlyWhenNotLive(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rec := &Record{ID: "a", Name: "job 0", Type: "t", Status: "STARTED", Document: `{"id":"a"}`}
	ok, err := repo.Upsert(ctx, rec)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Upsert(ctx, &Record{ID: "a", Name: "other", Type: "t", Status: "IDLE", Document: "{}"})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "job 0", got.Name)
	assert.True(t, got.Live)

	require.NoError(t, repo.SetLive(ctx, "a", false))
	ok, err = repo.Upsert(ctx, &Record{ID: "a", Name: "again", Type: "t", Status: "STARTED", Document: "{}"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "again", got.Name)
}

func TestDeleteAndCount(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, id := range []string{"a", "b", "c"} {
		_, err := repo.Upsert(ctx, &Record{ID: id, Name: id, Type: "t", Status: "STARTED", Document: "{}"})
		require.NoError(t, err)
	}
	require.NoError(t, repo.SetLive(ctx, "c", false))

	counts, err := repo.CountByStatus(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"STARTED": 2}, counts)

	counts, err = repo.CountByStatus(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"STARTED": 3}, counts)

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.FindByID(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}
