// Package highlight turns source code into per-line lists of classified
// tokens.
//
// Lexing is delegated to chroma. Chroma's token types form a hierarchy
// (LiteralStringDouble < LiteralString < Literal); each token is flattened to a
// single [theme.Class] by checking its own type first and then its
// sub-category and category, so the most specific mapping wins. Adjacent
// tokens that flatten to the same class are merged.
//
// Output preserves every input character exactly once, except that CRLF
// and lone CR line endings are normalized to LF before lexing. Newlines
// separate lines and are not part of any token. Empty input yields a
// single empty line.
//
// Unknown languages never fail: the highlighter tries auto-detection and
// then plain text, and reports the degradation in [Result.Fallback].
package highlight
