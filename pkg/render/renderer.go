package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/codeshot/pkg/background"
	"github.com/matzehuels/codeshot/pkg/emoji"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/fonts"
	"github.com/matzehuels/codeshot/pkg/highlight"
	"github.com/matzehuels/codeshot/pkg/layout"
	"github.com/matzehuels/codeshot/pkg/observability"
	"github.com/matzehuels/codeshot/pkg/theme"
)

// Surface limits. Larger canvases fail with SURFACE_ALLOCATION_FAILURE.
const (
	MaxSide   = 16384
	MaxPixels = 64_000_000
)

// Stats describes a finished render.
type Stats struct {
	Theme       string        `json:"theme"`
	Language    string        `json:"language"`
	Shader      string        `json:"shader"`
	Lines       int           `json:"lines"`
	VisualLines int           `json:"visualLines"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Emoji       int           `json:"emoji"`
	EmojiAsText int           `json:"emojiAsText"`
	Duration    time.Duration `json:"duration"`

	// Warnings are the non-fatal conditions hit during the render.
	Warnings []error `json:"-"`
}

// Renderer produces screenshots. Construct it once and share it.
type Renderer struct {
	catalog     *theme.Catalog
	highlighter *highlight.Highlighter
	generator   *background.Generator
	compositor  *emoji.Compositor
	font        *fonts.Font
	logger      *log.Logger
}

// New returns a Renderer. A nil compositor draws every emoji as text; a
// nil font uses the embedded default; a nil logger discards output.
func New(catalog *theme.Catalog, highlighter *highlight.Highlighter, generator *background.Generator,
	compositor *emoji.Compositor, font *fonts.Font, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if catalog == nil {
		catalog = theme.NewCatalog()
	}
	if highlighter == nil {
		highlighter = highlight.New()
	}
	if generator == nil {
		generator = background.New(logger)
	}
	if font == nil {
		font = fonts.Default()
	}
	return &Renderer{
		catalog:     catalog,
		highlighter: highlighter,
		generator:   generator,
		compositor:  compositor,
		font:        font,
		logger:      logger,
	}
}

// Font returns the font the renderer draws with.
func (r *Renderer) Font() *fonts.Font { return r.font }

// ThemeDigest returns the definition digest of the theme a request naming
// name would be drawn with.
func (r *Renderer) ThemeDigest(name string) string {
	return r.catalog.Resolve(name).Digest()
}

// Render draws req and returns the PNG bytes.
func (r *Renderer) Render(ctx context.Context, req Request) ([]byte, error) {
	data, _, err := r.RenderPNG(ctx, req)
	return data, err
}

// RenderPNG draws req and returns the PNG bytes with render statistics.
func (r *Renderer) RenderPNG(ctx context.Context, req Request) ([]byte, Stats, error) {
	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, req.Theme)

	img, stats, err := r.RenderImage(ctx, req)
	var data []byte
	if err == nil {
		data, err = encode(img)
	}
	stats.Duration = time.Since(start)
	hooks.OnRenderComplete(ctx, stats.Theme, len(data), stats.Duration, err)
	if err != nil {
		return nil, stats, err
	}
	return data, stats, nil
}

// RenderImage draws req onto a new RGBA surface.
func (r *Renderer) RenderImage(ctx context.Context, req Request) (*image.RGBA, Stats, error) {
	var stats Stats
	if err := checkExtent(req); err != nil {
		return nil, stats, err
	}
	warn := func(err error) {
		r.logger.Warn(errors.UserMessage(err), "code", errors.GetCode(err))
		stats.Warnings = append(stats.Warnings, err)
	}

	th, err := r.catalog.Lookup(req.Theme)
	if err != nil {
		warn(err)
		th = r.catalog.Resolve(req.Theme)
	}
	stats.Theme = th.Name

	var bgOverride *colorful.Color
	if req.BackgroundColor != "" {
		if c, err := theme.ParseColor(req.BackgroundColor); err == nil {
			bgOverride = &c
		} else {
			warn(err)
		}
	}

	tok := r.highlighter.Tokenize(req.Code, req.Language)
	if tok.Fallback != nil {
		warn(tok.Fallback)
	}
	stats.Language = tok.Language
	stats.Lines = len(tok.Lines)
	observability.Render().OnTokenize(ctx, req.Language, len(tok.Lines), tok.Fallback != nil)

	lines := make([]highlight.Line, len(tok.Lines))
	var keys []string
	for i, line := range tok.Lines {
		lines[i] = emoji.SplitLine(line)
		for _, t := range lines[i] {
			if t.Emoji {
				keys = append(keys, t.Key)
			}
		}
	}
	stats.Emoji = len(keys)

	fontSize := float64(max(req.FontSize, 0))
	face := r.font.Face(fontSize * layout.Scale)
	defer face.Close()
	m := faceMeasurer{face: face, fontSize: fontSize}

	lay := layout.Compute(lines, layout.Options{
		Width:        float64(req.Width),
		FontSize:     fontSize,
		Padding:      float64(req.Padding),
		LineNumbers:  req.LineNumbers,
		WindowChrome: req.WindowChrome,
		LineWrap:     req.LineWrap,
	}, m)
	stats.VisualLines = len(lay.Lines)

	pw, ph := lay.Geometry.CanvasPixels()
	stats.Width, stats.Height = pw, ph
	if pw > MaxSide || ph > MaxSide || pw*ph > MaxPixels {
		return nil, stats, errors.New(errors.ErrCodeSurfaceAllocation,
			"canvas %dx%d exceeds limits (%d per side, %d pixels)", pw, ph, MaxSide, MaxPixels)
	}

	bgStart := time.Now()
	bg, outcome := r.generator.Render(
		int(math.Ceil(lay.Geometry.Canvas.W)), int(math.Ceil(lay.Geometry.Canvas.H)), th,
		background.Spec{Shader: req.Shader, Params: req.ShaderParams, Background: bgOverride})
	if outcome.Err != nil {
		stats.Warnings = append(stats.Warnings, outcome.Err)
	}
	stats.Shader = outcome.Shader
	observability.Render().OnBackground(ctx, outcome.Shader, outcome.Err != nil, time.Since(bgStart))

	var glyphs map[string]image.Image
	if len(keys) > 0 && r.compositor != nil {
		var err error
		if glyphs, err = r.compositor.Prefetch(ctx, keys); err != nil {
			stats.Warnings = append(stats.Warnings, err)
		}
	}

	surface, err := allocate(pw, ph)
	if err != nil {
		return nil, stats, err
	}

	c := newCanvas(surface, lay.Geometry, th, face, fontSize)
	c.drawBackground(bg)
	c.drawShadow()
	c.drawWindow()
	if req.WindowChrome {
		c.drawChrome()
	}
	stats.EmojiAsText = c.drawLines(lay.Lines, req.LineNumbers, glyphs)

	return surface, stats, nil
}

// checkExtent rejects requests whose window alone would exceed MaxSide:
// the window is at least Width wide, 2·Padding across and one line
// (1.5·FontSize) tall. It runs before any font face or layout is built.
func checkExtent(req Request) error {
	for _, d := range []struct {
		name  string
		value float64
	}{
		{"width", float64(req.Width)},
		{"padding", 2 * float64(req.Padding)},
		{"font size", layout.LineHeightRatio * float64(req.FontSize)},
	} {
		if d.value*layout.Scale > MaxSide {
			return errors.New(errors.ErrCodeSurfaceAllocation,
				"%s %.0f exceeds the %d px canvas limit", d.name, d.value, MaxSide)
		}
	}
	return nil
}

// allocate creates the output surface, converting an allocation panic
// into SURFACE_ALLOCATION_FAILURE.
func allocate(w, h int) (img *image.RGBA, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			img, err = nil, errors.New(errors.ErrCodeSurfaceAllocation, "allocate %dx%d: %v", w, h, rec)
		}
	}()
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodingFailure, err, "encode png")
	}
	return buf.Bytes(), nil
}

// String summarizes stats for logs.
func (s Stats) String() string {
	return fmt.Sprintf("%dx%d theme=%s lang=%s shader=%s lines=%d/%d", s.Width, s.Height, s.Theme, s.Language, s.Shader, s.Lines, s.VisualLines)
}
