package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/config"
	"findash/internal/storage"
)

func TestBackendType_IsValid(t *testing.T) {
	assert.True(t, SQLiteBackend.IsValid())
	assert.True(t, MemoryBackend.IsValid())
	assert.False(t, BackendType("sheets").IsValid())
	assert.False(t, BackendType("").IsValid())
}

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	cfg := &config.Config{DataBackend: "sqlite", SQLiteDBPath: "/tmp/x.db"}
	bc, err := FromAppConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, SQLiteBackend, bc.Type)
	assert.Equal(t, "/tmp/x.db", bc.SQLiteDBPath)

	_, err = FromAppConfig(&config.Config{DataBackend: "postgres"})
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.NoError(t, Config{Type: SQLiteBackend, SQLiteDBPath: "a.db"}.Validate())
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: "other"}.Validate())
}

func TestFactory_CreateMemoryStore(t *testing.T) {
	res, err := NewFactory(nil).CreateStore(context.Background(), Config{Type: MemoryBackend})
	require.NoError(t, err)
	_, ok := res.Store.(*storage.MemoryStore)
	assert.True(t, ok)
	assert.NoError(t, res.Cleanup())
}

func TestFactory_CreateSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "findash.db")
	res, err := NewFactory(nil).CreateStore(context.Background(), Config{Type: SQLiteBackend, SQLiteDBPath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Cleanup() })

	ctx := context.Background()
	require.NoError(t, res.Store.Save(ctx, "k", []int{1, 2}))
	var got []int
	found, err := res.Store.Load(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{1, 2}, got)
}

func TestFactory_RejectsInvalidConfig(t *testing.T) {
	_, err := NewFactory(nil).CreateStore(context.Background(), Config{Type: SQLiteBackend})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFactory(nil).CreateStore(ctx, Config{Type: MemoryBackend})
	assert.ErrorIs(t, err, context.Canceled)
}
