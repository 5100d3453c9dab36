package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "session.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db, "goose_db_version"))
	require.True(t, tableExists(t, db, "storage"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	require.True(t, tableExists(t, db, "storage"))
}

func TestOpen_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "session.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(db).Set(ctx, "auth-storage", []byte("persisted")))
	require.NoError(t, db.Close())

	db, err = Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	v, err := NewSQLiteRepository(db).Get(ctx, "auth-storage")
	require.NoError(t, err)
	require.Equal(t, []byte("persisted"), v)
}
