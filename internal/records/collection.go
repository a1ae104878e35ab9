// Package records holds the in-memory record collections backed by a Store.
// A collection is loaded once and every successful add is written through.
package records

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"findash/internal/log"
	"findash/internal/storage"
)

// Options describes one collection.
type Options[T any] struct {
	// Key is the storage key.
	Key string
	// IDOf returns the record identifier.
	IDOf func(T) string
	// Seed returns the records written when Key has never been stored.
	// Nil means start empty.
	Seed func() []T
	// NewID overrides identifier generation.
	NewID func() string
}

// Collection is an ordered, newest-first list of records of one kind.
// It is safe for concurrent use.
type Collection[T any] struct {
	mu     sync.RWMutex
	items  []T
	ids    map[string]struct{}
	opts   Options[T]
	store  storage.Store
	logger *log.Logger
}

// Open loads the collection from store. A corrupt value is logged and
// replaced with an empty collection; a key that was never written is
// initialized from Seed and persisted. Any other load error is returned,
// so a failed read never leads to the stored records being overwritten.
func Open[T any](ctx context.Context, store storage.Store, opts Options[T], logger *log.Logger) (*Collection[T], error) {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if logger == nil {
		logger = log.Discard()
	}
	c := &Collection[T]{
		opts:   opts,
		store:  store,
		ids:    make(map[string]struct{}),
		logger: logger.WithComponent(log.ComponentRecords).With(log.FieldCollection, opts.Key),
	}

	var items []T
	found, err := store.Load(ctx, opts.Key, &items)
	switch {
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, storage.ErrCorrupt):
		c.logger.WarnContext(ctx, "Stored collection unreadable, starting empty", log.FieldError, err)
		items = nil
	case err != nil:
		c.logger.ErrorContext(ctx, "Failed to load collection", log.FieldError, err)
		return nil, fmt.Errorf("load %s: %w", opts.Key, err)
	case !found && opts.Seed != nil:
		items = opts.Seed()
		if err := store.Save(ctx, opts.Key, items); err != nil {
			c.logger.WarnContext(ctx, "Failed to persist seed records", log.FieldError, err)
		} else {
			c.logger.InfoContext(ctx, "Collection seeded", log.FieldCount, len(items))
		}
	}

	c.items = items
	for _, it := range items {
		c.ids[opts.IDOf(it)] = struct{}{}
	}
	c.logger.DebugContext(ctx, "Collection loaded", log.FieldCount, len(items))
	return c, nil
}

// Add assigns a fresh identifier through build, prepends the record and
// writes the collection. When the write fails the record stays in memory
// and the error is returned.
func (c *Collection[T]) Add(ctx context.Context, build func(id string) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.newIDLocked()
	rec := build(id)

	items := make([]T, 0, len(c.items)+1)
	items = append(items, rec)
	items = append(items, c.items...)
	c.items = items
	c.ids[id] = struct{}{}

	if err := c.store.Save(ctx, c.opts.Key, c.items); err != nil {
		c.logger.ErrorContext(ctx, "Failed to persist collection", log.FieldRecordID, id, log.FieldError, err)
		return rec, fmt.Errorf("save %s: %w", c.opts.Key, err)
	}
	return rec, nil
}

func (c *Collection[T]) newIDLocked() string {
	for attempt := 0; ; attempt++ {
		id := c.opts.NewID()
		if attempt >= 8 {
			id = uuid.NewString()
		}
		if _, taken := c.ids[id]; !taken && id != "" {
			return id
		}
	}
}

// All returns a copy of the records, newest first.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the first record with the given identifier.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if c.opts.IDOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Key() string { return c.opts.Key }
