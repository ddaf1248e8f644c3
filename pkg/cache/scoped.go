package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts get
// separate cache namespaces.
//
// Example usage:
//
//	// Project-specific keys
//	projKeyer := NewScopedKeyer(NewDefaultKeyer(), "proj:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DataKey generates a prefixed key for data table caching.
func (k *ScopedKeyer) DataKey(path, contentHash string) string {
	return k.prefix + k.inner.DataKey(path, contentHash)
}

// PlotKey generates a prefixed key for built plot caching.
func (k *ScopedKeyer) PlotKey(specHash, dataHash string) string {
	return k.prefix + k.inner.PlotKey(specHash, dataHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(plotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(plotHash, opts)
}
