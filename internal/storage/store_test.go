package storage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/log"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "findash.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStores_RoundTrip(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": newSQLite(t),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var got []item
			found, err := s.Load(ctx, "items", &got)
			require.NoError(t, err)
			assert.False(t, found, "never-written key must report not found")

			want := []item{{ID: "1", Name: "first"}, {ID: "2", Name: "second"}}
			require.NoError(t, s.Save(ctx, "items", want))

			found, err = s.Load(ctx, "items", &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, want, got)

			// Last write wins.
			require.NoError(t, s.Save(ctx, "items", want[:1]))
			got = nil
			_, err = s.Load(ctx, "items", &got)
			require.NoError(t, err)
			assert.Equal(t, want[:1], got)
		})
	}
}

func TestStores_EmptyCollectionIsFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, "items", []item{}))

	var got []item
	found, err := s.Load(ctx, "items", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, got)
}

func TestMemoryStore_EnvelopeLayout(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Save(context.Background(), "goals", map[string]int{"revenue": 1}))

	raw, ok := s.Raw("goals")
	require.True(t, ok)
	assert.JSONEq(t, `{"schema_version":1,"data":{"revenue":1}}`, string(raw))
}

func TestMemoryStore_LegacyAndCorrupt(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name    string
		raw     string
		want    []item
		corrupt bool
	}{
		{"legacy bare array", `[{"id":"a","name":"x"}]`, []item{{ID: "a", Name: "x"}}, false},
		{"versioned", `{"schema_version":1,"data":[{"id":"b"}]}`, []item{{ID: "b"}}, false},
		{"not json", `not json at all`, nil, true},
		{"truncated", `[{"id":"a"`, nil, true},
		{"wrong shape", `{"schema_version":1,"data":{"id":"a"}}`, nil, true},
		{"future version", `{"schema_version":7,"data":[]}`, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewMemoryStore()
			s.PutRaw("items", []byte(tc.raw))

			var got []item
			found, err := s.Load(ctx, "items", &got)
			assert.True(t, found)
			if tc.corrupt {
				assert.True(t, errors.Is(err, ErrCorrupt), "expected ErrCorrupt, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSQLiteStore_CorruptIsScopedToKey(t *testing.T) {
	ctx := context.Background()
	s := newSQLite(t)
	require.NoError(t, s.Save(ctx, "good", []item{{ID: "1"}}))
	require.NoError(t, s.putRaw(ctx, "bad", SchemaVersion, "{{{"))

	var bad []item
	_, err := s.Load(ctx, "bad", &bad)
	assert.ErrorIs(t, err, ErrCorrupt)

	var good []item
	found, err := s.Load(ctx, "good", &good)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, good, 1)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bad", "good"}, keys)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "findash.db")

	s, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "items", []item{{ID: "kept"}}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer s.Close()

	var got []item
	found, err := s.Load(ctx, "items", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []item{{ID: "kept"}}, got)
}

func TestSQLiteStore_LogsAsStorage(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{
		Component: log.ComponentApp,
		Handler:   slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "findash.db"), logger)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(context.Background(), "items", []item{{ID: "a"}}))
	assert.Contains(t, buf.String(), "component=storage")
	assert.Contains(t, buf.String(), "key=items")
}

func TestLoadOrDefault(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	def := []item{{ID: "default"}}

	got, found, err := LoadOrDefault(ctx, s, "items", def)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, def, got)

	s.PutRaw("items", []byte("garbage"))
	got, found, err = LoadOrDefault(ctx, s, "items", def)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.True(t, found)
	assert.Equal(t, def, got)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	assert.ErrorIs(t, s.Save(ctx, "k", 1), context.Canceled)
	_, err := s.Load(ctx, "k", new(int))
	assert.ErrorIs(t, err, context.Canceled)
}
