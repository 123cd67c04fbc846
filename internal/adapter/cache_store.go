package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	m "foundry.dev/pkg/foundry/internal/model"
)

// CacheRecord is one persisted compile result: the content hash of the source
// it was compiled from and the program JSON.
type CacheRecord struct {
	Hash    uint64          `json:"hash"`
	Program json.RawMessage `json:"program"`
}

// CacheStore persists compile records.
type CacheStore interface {
	// Load reads the record at path. A missing record yields an error
	// matching fs.ErrNotExist.
	Load(ctx context.Context, path m.Path) (CacheRecord, error)
	// Save writes the record at path. Readers never observe a partial record.
	Save(ctx context.Context, path m.Path, record CacheRecord) error
}

// JSONCacheStore stores records as JSON files.
type JSONCacheStore struct{}

// NewJSONCacheStore returns a CacheStore writing JSON files.
func NewJSONCacheStore() *JSONCacheStore {
	return &JSONCacheStore{}
}

// Load implements CacheStore.
func (s *JSONCacheStore) Load(ctx context.Context, path m.Path) (CacheRecord, error) {
	if err := ctx.Err(); err != nil {
		return CacheRecord{}, err
	}

	// #nosec G304 - path is derived from the cache directory
	data, err := os.ReadFile(string(path))
	if err != nil {
		return CacheRecord{}, err
	}

	var record CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return CacheRecord{}, fmt.Errorf("decode cache record %s: %w", path, err)
	}

	if len(record.Program) == 0 {
		return CacheRecord{}, fmt.Errorf("decode cache record %s: missing program", path)
	}

	return record, nil
}

// Save implements CacheStore. The record is written to a temporary file in
// the target directory and renamed into place.
func (s *JSONCacheStore) Save(ctx context.Context, path m.Path, record CacheRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}

	dir := filepath.Dir(string(path))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".record-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}

	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return fmt.Errorf("write temp record: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp record: %w", err)
	}

	if err := os.Rename(tmpPath, string(path)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename cache record: %w", err)
	}

	return nil
}
