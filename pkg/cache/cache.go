// Package cache provides build artifact caching for plot rendering.
//
// Rendering a plot is deterministic in its spec and data, so encoded
// artifacts can be cached by a hash of both. The CLI uses a file
// cache; library consumers can plug in their own Cache implementation
// or disable caching with NullCache.
package cache

import (
	"context"
	"time"
)

// Cache stores and retrieves rendered artifacts by key.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts carries the render settings that affect an encoded
// artifact beyond the plot spec itself.
type ArtifactKeyOpts struct {
	Format string
	Width  int
	Height int
}

// Keyer generates cache keys for the cacheable products of a build.
type Keyer interface {
	// DataKey identifies a loaded data table by source path and
	// content hash.
	DataKey(path, contentHash string) string

	// PlotKey identifies a built plot by the hash of its spec and
	// the hash of its data.
	PlotKey(specHash, dataHash string) string

	// ArtifactKey identifies an encoded artifact by the plot it
	// renders and the render settings.
	ArtifactKey(plotHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DataKey generates a key for data table caching.
func (k *DefaultKeyer) DataKey(path, contentHash string) string {
	return hashKey("data", path, contentHash)
}

// PlotKey generates a key for built plot caching.
func (k *DefaultKeyer) PlotKey(specHash, dataHash string) string {
	return hashKey("plot", specHash, dataHash)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(plotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", plotHash, opts.Format, opts.Width, opts.Height)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
