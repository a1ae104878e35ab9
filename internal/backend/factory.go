package backend

import (
	"context"
	"fmt"

	"findash/internal/log"
	"findash/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new store factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateStore implements Factory.CreateStore
func (f *DefaultFactory) CreateStore(ctx context.Context, config Config) (*StoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteStore(ctx, config)
	case MemoryBackend:
		return f.createMemoryStore(ctx)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteStore(ctx context.Context, config Config) (*StoreResult, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend",
		log.FieldBackend, SQLiteBackend.String(),
		"db_path", config.SQLiteDBPath)

	return &StoreResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryStore(ctx context.Context) (*StoreResult, error) {
	store := storage.NewMemoryStore()

	f.logger.InfoContext(ctx, "Initialized memory backend",
		log.FieldBackend, MemoryBackend.String())

	return &StoreResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}
