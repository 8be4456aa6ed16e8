package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lirik/internal/db"
)

func TestOpen(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lirik-db-test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	require.NotNil(t, database)
	defer database.Close()

	for _, table := range []string{"settings", "credentials", "songs", "translations"} {
		var name string
		err = database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		require.Equal(t, table, name)
	}
}

func TestOpen_MigrationsAreRepeatable(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lirik-db-test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	// Reopening runs migrations again; they must be idempotent.
	database, err = db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()

	var count int
	err = database.QueryRow("SELECT COUNT(*) FROM pragma_table_info('songs') WHERE name = 'language'").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestBuildDSN(t *testing.T) {
	dsn := db.BuildDSN("test.db")
	require.Contains(t, dsn, "file:test.db")
	require.Contains(t, dsn, "journal_mode")
	require.Contains(t, dsn, "WAL")
	require.Contains(t, dsn, "foreign_keys")
	// busy_timeout must be in the DSN so every pooled connection has it;
	// without it concurrent writes fail with "database is locked".
	require.Contains(t, dsn, "busy_timeout")
	require.Contains(t, dsn, "30000")
	require.Contains(t, dsn, "synchronous")
	require.Contains(t, dsn, "NORMAL")
}
