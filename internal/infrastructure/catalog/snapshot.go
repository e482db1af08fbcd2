package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/medrec/backend/internal/domain"
)

// FileStore persists the catalog snapshot as a flat JSON file so a cold
// start can serve products before the first successful external fetch.
type FileStore struct {
	path string
}

type snapshotFile struct {
	Metadata domain.CacheMetadata `json:"metadata"`
	Products []domain.Product     `json:"products"`
}

// NewFileStore creates a snapshot store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot file. Returns ErrSnapshotNotFound when no snapshot
// has been written yet.
func (s *FileStore) Load() ([]domain.Product, domain.CacheMetadata, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.CacheMetadata{}, domain.ErrSnapshotNotFound
		}
		return nil, domain.CacheMetadata{}, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, domain.CacheMetadata{}, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return snap.Products, snap.Metadata, nil
}

// Save writes the snapshot atomically: the file is written to a temp name in
// the target directory and renamed over the previous snapshot, so readers
// never observe a partially written file.
func (s *FileStore) Save(products []domain.Product, meta domain.CacheMetadata) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(snapshotFile{Metadata: meta, Products: products}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "catalog-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("swap snapshot %s: %w", s.path, err)
	}
	return nil
}
