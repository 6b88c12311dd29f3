// Package pkg provides the core libraries for codeshot, which renders
// source code as styled PNG screenshots.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Rendering: [theme], [highlight], [layout], [background], [emoji],
//     [fonts] and [render]
//  2. Infrastructure: [cache], [httputil], [observability], [errors] and
//     [buildinfo]
//  3. Orchestration: [pipeline] (validation, caching, output files)
//
// # Architecture
//
// The data flow for one screenshot:
//
//	source code + request
//	         ↓
//	    [highlight] package (chroma tokens → classified lines)
//	         ↓
//	    [emoji] package (emoji clusters split into their own tokens)
//	         ↓
//	    [layout] package (wrapping + geometry)
//	         ↓
//	    [background] package (flat, gradient or shader texture)
//	         ↓
//	    [render] package (window, chrome, text, glyphs → PNG)
//
// # Quick Start
//
//	catalog := theme.NewCatalog()
//	if err := catalog.Load(theme.Builtin()); err != nil {
//	    log.Fatal(err)
//	}
//	r := render.New(catalog, highlight.New(), background.New(nil), nil, fonts.Default(), nil)
//
//	req := render.DefaultRequest()
//	req.Code = "fmt.Println(\"hello\")"
//	req.Language = "go"
//	png, err := r.Render(context.Background(), req)
//
// For caching and output files, wrap the renderer in a [pipeline.Runner].
//
// [theme]: github.com/matzehuels/codeshot/pkg/theme
// [highlight]: github.com/matzehuels/codeshot/pkg/highlight
// [layout]: github.com/matzehuels/codeshot/pkg/layout
// [background]: github.com/matzehuels/codeshot/pkg/background
// [emoji]: github.com/matzehuels/codeshot/pkg/emoji
// [fonts]: github.com/matzehuels/codeshot/pkg/fonts
// [render]: github.com/matzehuels/codeshot/pkg/render
// [cache]: github.com/matzehuels/codeshot/pkg/cache
// [httputil]: github.com/matzehuels/codeshot/pkg/httputil
// [observability]: github.com/matzehuels/codeshot/pkg/observability
// [errors]: github.com/matzehuels/codeshot/pkg/errors
// [buildinfo]: github.com/matzehuels/codeshot/pkg/buildinfo
// [pipeline]: github.com/matzehuels/codeshot/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/codeshot/pkg/pipeline#Runner
package pkg
