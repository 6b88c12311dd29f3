// Package emoji finds emoji in text and resolves them to bitmap glyphs.
//
// Emoji are detected per grapheme cluster, so multi-code-point sequences
// (skin tones, ZWJ families, flags, keycaps) are treated as one glyph.
// Each glyph is identified by a key in twemoji file naming: lower-case hex
// code points joined by "-", with U+FE0F dropped unless the sequence
// contains a zero-width joiner.
//
// A [Compositor] resolves keys through an in-memory map, an optional
// persistent [cache.Cache], and finally a [Source] such as the twemoji CDN
// ([HTTPSource]) or a local directory ([DirSource]). Concurrent misses for
// the same key share one fetch, and every fetch is bounded by a timeout.
// Failures are never fatal: callers draw the raw character instead.
package emoji
