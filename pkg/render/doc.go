// Package render rasterizes highlighted code into a PNG screenshot.
//
// # Overview
//
// A [Renderer] ties the other packages together:
//
//  1. [theme.Catalog] resolves the theme (unknown names use the default)
//  2. [highlight.Highlighter] tokenizes the code into classified lines
//  3. [emoji.SplitLine] isolates emoji clusters so they can be drawn as
//     bitmaps
//  4. [layout.Compute] wraps lines and derives the geometry
//  5. [background.Generator] draws the canvas background
//  6. the window, chrome, line numbers and tokens are drawn with gg
//
// Everything is laid out in logical units and drawn at [layout.Scale], so
// the PNG is twice the logical canvas size.
//
//	r := render.New(catalog, highlight.New(), background.New(logger), compositor, fonts.Default(), logger)
//	png, err := r.Render(ctx, render.DefaultRequest())
//
// # Errors
//
// Missing themes, unsupported languages, shader failures and emoji fetch
// failures degrade in place and are listed in [Stats.Warnings]. Only
// SURFACE_ALLOCATION_FAILURE and ENCODING_FAILURE abort a render.
//
// A Renderer holds no per-render state. Concurrent renders each allocate
// their own surface and font face.
package render
