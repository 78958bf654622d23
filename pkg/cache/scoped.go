package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several configurations
// (for example different API base URLs) can share one backend without
// reading each other's entries.
//
// Example usage:
//
//	testKeyer := NewScopedKeyer(NewDefaultKeyer(), "sisi:")
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

// ResponseKey generates a prefixed key for response caching.
func (k *ScopedKeyer) ResponseKey(namespace, url string) string {
	return k.prefix + k.inner.ResponseKey(namespace, url)
}
