package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Keyer builds cache keys for each entry type.
type Keyer interface {
	// EmojiKey returns the key for a glyph bitmap identified by its
	// normalized code point key (e.g. "1f600" or "1f468-200d-1f4bb").
	EmojiKey(codepoints string) string
	// ArtifactKey returns the key for a rendered image.
	ArtifactKey(requestHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds everything besides the request itself that changes
// the rendered bytes.
type ArtifactKeyOpts struct {
	Format      string `json:"format"`
	Theme       string `json:"theme"`
	ThemeDigest string `json:"themeDigest,omitempty"` // changes when the theme file is edited
	Font        string `json:"font,omitempty"`
	Version     string `json:"version,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// EmojiKey returns "emoji:<codepoints>". Code point keys are already safe,
// so they are not hashed; this keeps redis keys human-readable.
func (DefaultKeyer) EmojiKey(codepoints string) string {
	return "emoji:" + strings.ToLower(codepoints)
}

// ArtifactKey hashes the request hash together with opts.
func (DefaultKeyer) ArtifactKey(requestHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", requestHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
