// Package catalog implements the product catalog: a vector index over
// catalog images, its on-disk snapshot and manifest, and the service
// that keeps them consistent with the image directory.
package catalog

import "errors"

var (
	// ErrDimensionMismatch is returned when a vector's length differs
	// from the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrDuplicateID is returned when adding a product whose id is
	// already indexed.
	ErrDuplicateID = errors.New("duplicate product id")
	// ErrNotFound is returned for lookups and removals of unknown ids.
	ErrNotFound = errors.New("product not found")
	// ErrUnsupportedFormat is returned for uploads whose file extension
	// is not an accepted image format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrInvalidID is returned for supplied product ids that cannot be
	// used as a catalog file name.
	ErrInvalidID = errors.New("invalid product id")
	// ErrNotReady is returned for operations that need a built index
	// before the first build has completed.
	ErrNotReady = errors.New("catalog index not ready")
)
