package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"findash/internal/log"
)

// SQLiteStore keeps one row per key in the kv_entries table.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string, logger *log.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Single writer; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger.WithComponent(log.ComponentStorage)}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements Store
func (s *SQLiteStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	var (
		version int
		value   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT schema_version, value FROM kv_entries WHERE key = ?`, key).
		Scan(&version, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("select %s: %w", key, err)
	}
	return true, decodeData(key, version, []byte(value), dst)
}

// Save implements Store
func (s *SQLiteStore) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, schema_version, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			schema_version = excluded.schema_version,
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, SchemaVersion, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}

	s.logger.DebugContext(ctx, "Collection saved to SQLite", "key", key, "bytes", len(data))
	return nil
}

// Keys lists every stored key.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// putRaw writes an arbitrary value, bypassing encoding.
func (s *SQLiteStore) putRaw(ctx context.Context, key string, version int, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv_entries (key, schema_version, value, updated_at) VALUES (?, ?, ?, ?)`,
		key, version, value, time.Now().UTC())
	return err
}
