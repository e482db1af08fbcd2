package domain

import (
	"context"
	"time"
)

// CacheMetadata describes the provenance of the cached catalog snapshot.
// It is updated exclusively by the product cache's refresh path.
type CacheMetadata struct {
	LastRefresh        time.Time `json:"lastRefresh"`
	TTLSeconds         int       `json:"ttlSeconds"`
	SourceProductCount int       `json:"sourceProductCount"`
}

// CatalogSource fetches the complete product list from an external provider.
// Pagination is handled by the implementation; FetchAll returns a fully
// materialized list.
type CatalogSource interface {
	FetchAll(ctx context.Context) ([]Product, error)
}

// SnapshotStore persists a catalog snapshot between process restarts.
type SnapshotStore interface {
	Load() ([]Product, CacheMetadata, error)
	Save(products []Product, meta CacheMetadata) error
}

// ProductProvider serves the current best-effort catalog snapshot.
type ProductProvider interface {
	Products(ctx context.Context) ([]Product, error)
	ForceRefresh(ctx context.Context) bool
}
