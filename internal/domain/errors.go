package domain

import "errors"

var (
	// ErrInvalidQuery is returned when a recommendation query is empty or whitespace-only
	ErrInvalidQuery = errors.New("query cannot be empty")

	// ErrCatalogUnavailable is returned when no catalog could ever be loaded
	ErrCatalogUnavailable = errors.New("product catalog unavailable")

	// ErrRefreshFailed is returned when a scheduled catalog refresh fails; the
	// cache keeps serving the previous snapshot and never surfaces this to
	// recommendation callers
	ErrRefreshFailed = errors.New("catalog refresh failed")

	// ErrSnapshotNotFound is returned when no on-disk catalog snapshot exists
	ErrSnapshotNotFound = errors.New("catalog snapshot not found")

	// ErrWooAPIFailure is returned when a WooCommerce API request fails
	ErrWooAPIFailure = errors.New("WooCommerce API request failed")
)
