package backend

import (
	"context"

	"findash/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// StoreResult contains the store instance and its cleanup function
type StoreResult struct {
	Store   storage.Store
	Cleanup CleanupFunc
}

// Factory creates persistent stores based on configuration
type Factory interface {
	// CreateStore creates a store instance based on the provided config
	CreateStore(ctx context.Context, config Config) (*StoreResult, error)
}

// Config holds configuration for store creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
