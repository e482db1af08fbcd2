package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/medrec/backend/internal/domain"
)

func TestFileStore(t *testing.T) {
	t.Run("round-trips products and metadata", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		store := NewFileStore(path)

		products := sampleProducts()
		meta := domain.CacheMetadata{
			LastRefresh:        time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			TTLSeconds:         3600,
			SourceProductCount: len(products),
		}

		if err := store.Save(products, meta); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		loaded, loadedMeta, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !reflect.DeepEqual(loaded, products) {
			t.Errorf("Load() products = %v, want %v", loaded, products)
		}
		if !loadedMeta.LastRefresh.Equal(meta.LastRefresh) {
			t.Errorf("LastRefresh = %v, want %v", loadedMeta.LastRefresh, meta.LastRefresh)
		}
		if loadedMeta.TTLSeconds != meta.TTLSeconds || loadedMeta.SourceProductCount != meta.SourceProductCount {
			t.Errorf("metadata = %+v, want %+v", loadedMeta, meta)
		}
	})

	t.Run("missing snapshot reports ErrSnapshotNotFound", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
		_, _, err := store.Load()
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			t.Errorf("Load() error = %v, want ErrSnapshotNotFound", err)
		}
	})

	t.Run("corrupt snapshot reports a decode error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}

		store := NewFileStore(path)
		if _, _, err := store.Load(); err == nil {
			t.Error("Load() error = nil, want decode error")
		}
	})

	t.Run("save overwrites the previous snapshot atomically", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "catalog.json")
		store := NewFileStore(path)

		if err := store.Save(sampleProducts(), domain.CacheMetadata{}); err != nil {
			t.Fatalf("first Save() error = %v", err)
		}
		updated := []domain.Product{{ID: "9", Name: "Torba", Category: "torby", Price: 60}}
		if err := store.Save(updated, domain.CacheMetadata{SourceProductCount: 1}); err != nil {
			t.Fatalf("second Save() error = %v", err)
		}

		loaded, meta, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !reflect.DeepEqual(loaded, updated) {
			t.Errorf("Load() = %v, want the second snapshot", loaded)
		}
		if meta.SourceProductCount != 1 {
			t.Errorf("SourceProductCount = %d, want 1", meta.SourceProductCount)
		}

		// No temp files may linger after the rename.
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("snapshot dir has %d entries, want only the snapshot", len(entries))
		}
	})

	t.Run("creates the snapshot directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "data", "catalog.json")
		store := NewFileStore(path)

		if err := store.Save(sampleProducts(), domain.CacheMetadata{}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if _, _, err := store.Load(); err != nil {
			t.Errorf("Load() error = %v", err)
		}
	})
}
