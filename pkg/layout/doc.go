// Package layout wraps highlighted lines to a content width and computes
// the geometry of a code screenshot.
//
// All values are logical units. The output image is [Scale] times larger;
// use [Geometry.CanvasPixels] for the pixel size.
//
// # Wrapping
//
// With wrapping disabled every source line is one visual line. Otherwise
// tokens are split into words (non-space text plus trailing spaces) and
// packed greedily while the line stays within the content width. A word
// that would overflow starts a new visual line. A word wider than the
// content width on its own is packed grapheme by grapheme, continuing on
// the current line, so no visual line is wider than the content width
// unless it holds a single grapheme that is.
//
// # Geometry
//
//	canvas
//	┌───────────────────────────────┐
//	│ margin                        │
//	│  ┌─window───────────────────┐ │
//	│  │ ● ● ●  chrome            │ │
//	│  │  padding                 │ │
//	│  │  gutter │ content        │ │
//	│  │  padding                 │ │
//	│  └──────────────────────────┘ │
//	└───────────────────────────────┘
//
// The window is as wide as the requested width. Without wrapping it grows
// to fit the widest line, and it is never narrower than the padding plus
// the line-number gutter.
package layout
