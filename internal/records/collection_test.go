package records

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/core"
	"findash/internal/storage"
)

// failingStore loads from an inner store but refuses every save.
type failingStore struct {
	storage.Store
}

func (failingStore) Save(context.Context, string, any) error {
	return errors.New("disk full")
}

// lockedOnceStore fails the first Load the way a busy SQLite file does.
type lockedOnceStore struct {
	storage.Store
	failed bool
}

func (s *lockedOnceStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	if !s.failed {
		s.failed = true
		return false, errors.New("database is locked")
	}
	return s.Store.Load(ctx, key, dst)
}

func vendor(name string) func(id string) core.Vendor {
	return func(id string) core.Vendor { return core.Vendor{ID: id, Name: name} }
}

func TestOpen_SeedsNeverWrittenKey(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	seed := func() []core.Vendor { return []core.Vendor{{ID: "v1", Name: "AWS"}} }

	c, err := Open(ctx, store, Vendors(seed), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, store.Saves(), "seed must be persisted")

	// An emptied collection stays empty on the next open.
	require.NoError(t, store.Save(ctx, core.KeyVendors, []core.Vendor{}))
	c, err = Open(ctx, store, Vendors(seed), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestOpen_CorruptFallsBackToEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	store.PutRaw(core.KeyInvoices, []byte(`{"schema_version":1,"data":"nope"}`))

	c, err := Open(context.Background(), store, Invoices(func() []core.Invoice {
		return []core.Invoice{{ID: "seed"}}
	}), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len(), "corrupt value is not replaced by the seed")
	assert.Equal(t, 0, store.Saves())
}

func TestOpen_LoadErrorKeepsStoredRecords(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	stored := []core.Invoice{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	require.NoError(t, mem.Save(ctx, core.KeyInvoices, stored))
	store := &lockedOnceStore{Store: mem}

	_, err := Open(ctx, store, Invoices(nil), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")

	var got []core.Invoice
	_, err = mem.Load(ctx, core.KeyInvoices, &got)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	c, err := Open(ctx, store, Invoices(nil), nil)
	require.NoError(t, err)
	_, err = c.Add(ctx, func(id string) core.Invoice { return core.Invoice{ID: id, Client: "Acme"} })
	require.NoError(t, err)
	_, err = mem.Load(ctx, core.KeyInvoices, &got)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestOpen_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Open(ctx, storage.NewMemoryStore(), Vendors(nil), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdd_PrependsAndPersists(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c, err := Open(ctx, store, Vendors(nil), nil)
	require.NoError(t, err)

	first, err := c.Add(ctx, vendor("Office Supply Co"))
	require.NoError(t, err)
	second, err := c.Add(ctx, vendor("Landlord Inc"))
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []core.Vendor{second, first}, c.All())

	var stored []core.Vendor
	found, err := store.Load(ctx, core.KeyVendors, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, c.All(), stored)

	got, ok := c.Find(first.ID)
	assert.True(t, ok)
	assert.Equal(t, first, got)
	_, ok = c.Find("missing")
	assert.False(t, ok)
}

func TestAdd_UniqueIDsDespiteCollidingGenerator(t *testing.T) {
	ctx := context.Background()
	opts := Vendors(nil)
	n := 0
	opts.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n%2)
	}
	c, err := Open(ctx, storage.NewMemoryStore(), opts, nil)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		v, err := c.Add(ctx, vendor("x"))
		require.NoError(t, err)
		assert.False(t, seen[v.ID], "duplicate id %s", v.ID)
		seen[v.ID] = true
	}
}

func TestAdd_SaveFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	c, err := Open(ctx, failingStore{storage.NewMemoryStore()}, Vendors(nil), nil)
	require.NoError(t, err)

	v, err := c.Add(ctx, vendor("AWS"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save vendors")
	assert.Equal(t, []core.Vendor{v}, c.All())
}

func TestAll_Idempotent(t *testing.T) {
	ctx := context.Background()
	c, err := Open(ctx, storage.NewMemoryStore(), Vendors(func() []core.Vendor {
		return []core.Vendor{{ID: "a"}, {ID: "b"}}
	}), nil)
	require.NoError(t, err)

	first := c.All()
	first[0].Name = "mutated"
	assert.Equal(t, c.All(), c.All())
	assert.Empty(t, c.All()[0].Name, "All must return a copy")
}
