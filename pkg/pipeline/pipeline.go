// Package pipeline runs screenshot requests end to end for the CLI and the
// HTTP server.
//
// A [Runner] validates a [Request], looks the result up in the artifact
// cache, renders on a miss and stores the PNG. Both entry points share it,
// so a screenshot rendered by one is served from cache by the other when
// they share a cache backend.
//
//	runner := pipeline.NewRunner(renderer, cache, nil, logger)
//	req := pipeline.DefaultRequest()
//	req.Code = "fmt.Println(\"hi\")"
//	req.Language = "go"
//	result, err := runner.Execute(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, err := pipeline.WriteTemp("", result.PNG)
package pipeline

import (
	"github.com/matzehuels/codeshot/pkg/render"
)

// Request is a screenshot request. See [render.Request].
type Request = render.Request

// FormatPNG is the only output format.
const FormatPNG = "png"

// DefaultRequest returns a Request with every default applied. JSON and
// flags are overlaid on it, so absent fields keep these values.
func DefaultRequest() Request {
	return render.DefaultRequest()
}

// Result is the output of [Runner.Execute].
type Result struct {
	PNG      []byte
	Width    int
	Height   int
	CacheHit bool

	// Stats is the zero value on a cache hit except for Width and Height.
	Stats render.Stats
}
