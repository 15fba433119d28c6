package db_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emartell/grocery-be/internal/adapters/db"
	"github.com/emartell/grocery-be/test/helpers"
)

func TestResolveStoragePath_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	path, err := db.ResolveStoragePath(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, db.DefaultFileName), path)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolveStoragePath_Deterministic(t *testing.T) {
	dir := t.TempDir()

	first, err := db.ResolveStoragePath(dir, "grocery.db")
	require.NoError(t, err)
	second, err := db.ResolveStoragePath(dir, "grocery.db")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDatabase_OpenClose_Idempotent(t *testing.T) {
	database := helpers.SetupTestDB(t)

	require.NoError(t, database.Open())
	require.NoError(t, database.Open(), "second open must be a no-op")
	assert.NotNil(t, database.Handle())

	require.NoError(t, database.Close())
	require.NoError(t, database.Close(), "second close must be a no-op")
	assert.Nil(t, database.Handle())
}

func TestDatabase_Ping(t *testing.T) {
	database := helpers.SetupTestDB(t)
	assert.NoError(t, database.Ping(context.Background()))
}

func TestDatabase_CreateTableIfAbsent_Idempotent(t *testing.T) {
	database := helpers.SetupTestDB(t)
	ctx := context.Background()

	ddl := `CREATE TABLE IF NOT EXISTS Sample (Id INTEGER PRIMARY KEY, Name TEXT NOT NULL)`
	require.NoError(t, database.CreateTableIfAbsent(ctx, ddl))
	require.NoError(t, database.CreateTableIfAbsent(ctx, ddl))
}

func TestDatabase_RunBatch_CommitsAllOrNothing(t *testing.T) {
	database := helpers.SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, database.CreateTableIfAbsent(ctx,
		`CREATE TABLE IF NOT EXISTS Sample (Id INTEGER PRIMARY KEY, Name TEXT NOT NULL)`))

	// A failing statement in the middle must roll the whole batch back.
	err := database.RunBatch(ctx, []db.Statement{
		{SQL: `INSERT INTO Sample (Id, Name) VALUES (?, ?)`, Args: []interface{}{1, "first"}},
		{SQL: `INSERT INTO Missing (Id) VALUES (?)`, Args: []interface{}{2}},
	})
	require.Error(t, err)

	require.NoError(t, database.Open())
	defer database.Close()

	var count int
	require.NoError(t, database.Handle().
		QueryRowContext(ctx, `SELECT COUNT(*) FROM Sample`).Scan(&count))
	assert.Zero(t, count, "failed batch must not leave partial rows")
}

func TestDatabase_RunBatch_Success(t *testing.T) {
	database := helpers.SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, database.CreateTableIfAbsent(ctx,
		`CREATE TABLE IF NOT EXISTS Sample (Id INTEGER PRIMARY KEY, Name TEXT NOT NULL)`))

	require.NoError(t, database.RunBatch(ctx, []db.Statement{
		{SQL: `INSERT OR IGNORE INTO Sample (Id, Name) VALUES (?, ?)`, Args: []interface{}{1, "first"}},
		{SQL: `INSERT OR IGNORE INTO Sample (Id, Name) VALUES (?, ?)`, Args: []interface{}{2, "second"}},
	}))

	require.NoError(t, database.Open())
	defer database.Close()

	var count int
	require.NoError(t, database.Handle().
		QueryRowContext(ctx, `SELECT COUNT(*) FROM Sample`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestDatabase_ForeignKeysEnforced(t *testing.T) {
	database := helpers.SetupTestDB(t)

	require.NoError(t, database.Open())
	defer database.Close()

	var enabled int
	require.NoError(t, database.Handle().
		QueryRow(`PRAGMA foreign_keys`).Scan(&enabled))
	assert.Equal(t, 1, enabled, "foreign key enforcement must be on for every open")
}

func TestDatabase_Health(t *testing.T) {
	database := helpers.SetupTestDB(t)

	health := database.Health(context.Background())
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, database.Path(), health["path"])
}
