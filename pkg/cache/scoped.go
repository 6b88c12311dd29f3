package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Servers sharing one redis instance use it to keep their namespaces apart.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "codeshot:v1:")
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

// EmojiKey generates a prefixed key for glyph caching.
func (k *ScopedKeyer) EmojiKey(codepoints string) string {
	return k.prefix + k.inner.EmojiKey(codepoints)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(requestHash, opts)
}
