package iostore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetManager gives each test a fresh global manager.
func resetManager() {
	Manager = &StoreManagerImpl{}
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
}

func TestInitStore(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		resetManager()
		dbPath := filepath.Join(t.TempDir(), "global.db")

		require.NoError(t, InitStore(schema.SQLiteBackend, dbPath))
		assert.NotNil(t, Manager.GetSampleStore())

		// Multiple initializations should be safe (sync.Once)
		assert.NoError(t, InitStore(schema.SQLiteBackend, dbPath))

		CloseStore()
		CloseStore()
		assert.FileExists(t, dbPath)
	})

	t.Run("none backend", func(t *testing.T) {
		resetManager()
		require.NoError(t, InitStore(schema.NoneBackend, ""))
		store := Manager.GetSampleStore()
		require.NotNil(t, store)
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.False(t, status.Connected)
		CloseStore()
	})

	t.Run("no backend", func(t *testing.T) {
		resetManager()
		require.NoError(t, InitStore("", ""))
		assert.Nil(t, Manager.GetSampleStore())
		CloseStore()
	})

	t.Run("bad backend", func(t *testing.T) {
		resetManager()
		err := InitStore(schema.DatabaseBackend("redis"), "")
		assert.ErrorContains(t, err, "failed to initialize sample store")
	})
}

func TestClearStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "clear.db")
	store, err := NewSampleStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine
	assert.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	assert.NoError(t, ClearStore(schema.NoneBackend, "", ""))
	assert.Error(t, ClearStore(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearStore(schema.DatabaseBackend("redis"), "", ""))
}

func TestSQLitePath(t *testing.T) {
	assert.Equal(t, "custom.db", SQLitePath("custom.db"))
	assert.Equal(t, filepath.Base(SQLitePath("")), ".trendline.db")
}
