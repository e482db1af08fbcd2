package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/medrec/backend/internal/domain"
)

const (
	defaultTTL          = time.Hour
	defaultFetchTimeout = 30 * time.Second
)

// Config holds configuration for the product cache.
type Config struct {
	TTL          time.Duration
	FetchTimeout time.Duration

	// Clock is injectable for deterministic tests; defaults to time.Now.
	Clock func() time.Time
}

// Cache serves the product catalog with TTL-based staleness tracking.
//
// A snapshot older than the TTL triggers a refresh attempt on the next read;
// if the refresh fails the existing snapshot keeps being served, so
// recommendation requests never hard-fail on a transient upstream outage.
// Readers always see a complete snapshot: the published slice is replaced
// wholesale under the mutex and never mutated afterwards.
type Cache struct {
	source domain.CatalogSource
	store  domain.SnapshotStore
	clock  func() time.Time
	ttl    time.Duration

	fetchTimeout time.Duration

	mu       sync.RWMutex
	products []domain.Product
	meta     domain.CacheMetadata
	loaded   bool

	// refreshMu serializes the single-writer refresh path.
	refreshMu sync.Mutex
}

// New creates a product cache over the given external source and snapshot
// store. Either may be nil: without a source the cache serves the on-disk
// snapshot only, without a store nothing is persisted.
func New(source domain.CatalogSource, store domain.SnapshotStore, config Config) *Cache {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	fetchTimeout := config.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Cache{
		source:       source,
		store:        store,
		clock:        clock,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
	}
}

// Products returns the current best-effort catalog snapshot, loading or
// refreshing it first when needed. It fails only when no catalog could ever
// be loaded.
func (c *Cache) Products(ctx context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	loaded := c.loaded
	stale := c.loaded && c.staleLocked()
	c.mu.RUnlock()

	if !loaded {
		if err := c.initialLoad(ctx); err != nil {
			return nil, err
		}
	} else if stale {
		if err := c.refresh(ctx); err != nil {
			log.Printf("[CACHE] refresh failed, serving stale catalog: %v", err)
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products, nil
}

// ForceRefresh bypasses the TTL check and reloads the catalog from the
// external source. It reports whether the refresh succeeded.
func (c *Cache) ForceRefresh(ctx context.Context) bool {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if err := c.fetchAndPublish(ctx); err != nil {
		log.Printf("[CACHE] forced refresh failed: %v", err)
		return false
	}
	return true
}

// Metadata returns the current cache metadata and whether a catalog has been
// loaded at all.
func (c *Cache) Metadata() (domain.CacheMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.meta, c.loaded
}

// initialLoad performs the cold-start load: external source first, then the
// on-disk snapshot. Both failing means the catalog is unavailable.
func (c *Cache) initialLoad(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have finished the initial load while we waited.
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	fetchErr := c.fetchAndPublish(ctx)
	if fetchErr == nil {
		return nil
	}
	log.Printf("[CACHE] initial fetch failed, trying snapshot: %v", fetchErr)

	if c.store != nil {
		products, meta, err := c.store.Load()
		if err == nil {
			c.mu.Lock()
			c.products = products
			c.meta = meta
			c.loaded = true
			c.mu.Unlock()
			log.Printf("[CACHE] loaded %d products from snapshot (refreshed %s)",
				len(products), meta.LastRefresh.Format(time.RFC3339))
			return nil
		}
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			log.Printf("[CACHE] snapshot load failed: %v", err)
		}
	}

	return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, fetchErr)
}

// refresh reloads the catalog when it is still stale by the time the writer
// lock is acquired.
func (c *Cache) refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// A concurrent reader may have refreshed while we waited.
	c.mu.RLock()
	fresh := c.loaded && !c.staleLocked()
	c.mu.RUnlock()
	if fresh {
		return nil
	}

	return c.fetchAndPublish(ctx)
}

// fetchAndPublish fetches from the external source and atomically swaps the
// published snapshot. Callers must hold refreshMu.
func (c *Cache) fetchAndPublish(ctx context.Context) error {
	if c.source == nil {
		return fmt.Errorf("%w: no catalog source configured", domain.ErrRefreshFailed)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	products, err := c.source.FetchAll(fetchCtx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRefreshFailed, err)
	}

	meta := domain.CacheMetadata{
		LastRefresh:        c.clock(),
		TTLSeconds:         int(c.ttl / time.Second),
		SourceProductCount: len(products),
	}

	if c.store != nil {
		if err := c.store.Save(products, meta); err != nil {
			log.Printf("[CACHE] failed to persist snapshot: %v", err)
		}
	}

	c.mu.Lock()
	c.products = products
	c.meta = meta
	c.loaded = true
	c.mu.Unlock()

	log.Printf("[CACHE] catalog refreshed: %d products", len(products))
	return nil
}

// staleLocked reports whether the snapshot age exceeds the TTL. Callers must
// hold at least a read lock.
func (c *Cache) staleLocked() bool {
	return c.clock().Sub(c.meta.LastRefresh) >= c.ttl
}
