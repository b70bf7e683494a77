package storage

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrack/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Each in-memory connection is its own database; keep the pool at one.
	shared.ConfigureDatabase(db, 1, 1)

	require.NoError(t, shared.RunMigrations(db))
	return db
}

// exerciseStore runs the Store contract against any implementation.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("key", "value"))

	value, ok, err := store.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", value)

	require.NoError(t, store.Set("key", "replaced"))

	value, ok, err = store.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "replaced", value)

	require.NoError(t, store.Delete("key"))

	_, ok, err = store.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	require.NoError(t, store.Delete("never-set"))

	// Empty string is a legal value, distinct from absent.
	require.NoError(t, store.Set("empty", ""))
	value, ok, err = store.Get("empty")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", value)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	t.Run("store contract", func(t *testing.T) {
		db := setupTestDB(t)
		exerciseStore(t, NewSQLite(db, ScopeLocal))
	})

	t.Run("scopes are isolated", func(t *testing.T) {
		db := setupTestDB(t)
		local := NewSQLite(db, ScopeLocal)
		session := NewSQLite(db, ScopeSession)

		require.NoError(t, local.Set("key", "local-value"))
		require.NoError(t, session.Set("key", "session-value"))

		value, ok, err := local.Get("key")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "local-value", value)

		value, ok, err = session.Get("key")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "session-value", value)

		require.NoError(t, session.Delete("key"))

		_, ok, err = session.Get("key")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = local.Get("key")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("errors wrap storage sentinels", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, db.Close())

		store := NewSQLite(db, ScopeLocal)

		_, _, err := store.Get("key")
		require.ErrorIs(t, err, shared.ErrStorageRead)

		err = store.Set("key", "value")
		require.ErrorIs(t, err, shared.ErrStorageWrite)
	})
}
