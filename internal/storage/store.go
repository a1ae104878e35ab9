// Package storage persists record collections as versioned JSON values
// keyed by collection name.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion is written with every value. Values without a version are
// read as legacy unversioned data.
const SchemaVersion = 1

// ErrCorrupt marks a stored value that cannot be decoded. It is scoped to a
// single key; callers fall back to their default for that key.
var ErrCorrupt = errors.New("corrupt stored value")

// Store is a durable key-value store of whole collections.
type Store interface {
	// Load decodes the value stored under key into dst. It reports false
	// with a nil error when the key has never been written.
	Load(ctx context.Context, key string, dst any) (bool, error)

	// Save replaces the value stored under key. Last write wins.
	Save(ctx context.Context, key string, value any) error

	Close() error
}

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

func encodeEnvelope(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	return json.Marshal(envelope{SchemaVersion: SchemaVersion, Data: data})
}

func decodeEnvelope(key string, raw []byte, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	// Bare arrays are the unversioned layout.
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return decodeData(key, 0, trimmed, dst)
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return corrupt(key, err)
	}
	if env.SchemaVersion == 0 && env.Data == nil {
		return decodeData(key, 0, trimmed, dst)
	}
	return decodeData(key, env.SchemaVersion, env.Data, dst)
}

func decodeData(key string, version int, data []byte, dst any) error {
	if version > SchemaVersion || version < 0 {
		return corrupt(key, fmt.Errorf("unsupported schema version %d", version))
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return corrupt(key, err)
	}
	return nil
}

func corrupt(key string, err error) error {
	return fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
}

// LoadOrDefault loads key into a fresh T, returning def when the key is
// missing. found reports whether a value was stored. On ErrCorrupt def is
// returned together with the error.
func LoadOrDefault[T any](ctx context.Context, s Store, key string, def T) (value T, found bool, err error) {
	var out T
	found, err = s.Load(ctx, key, &out)
	if err != nil || !found {
		return def, found, err
	}
	return out, true, nil
}
