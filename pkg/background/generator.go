package background

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/theme"
)

// Shader names.
const (
	Flat      = "flat"
	Gradient  = "gradient"
	Halftone  = "halftone"
	Disruptor = "disruptor"
	Wave      = "wave"
)

type shaderFunc func(u Uniforms, x, y int) colorful.Color

var shaders = map[string]shaderFunc{
	Halftone:  halftone,
	Disruptor: disruptor,
	Wave:      wave,
}

var aliases = map[string]string{
	"none":          Flat,
	"wave-gradient": Wave,
	"wavegradient":  Wave,
	"dither":        Disruptor,
}

// defaults are the per-shader parameters used when neither the request
// nor the theme supplies them.
var defaults = map[string]Params{
	Halftone:  {Intensity: 2.5, Scale: 1},
	Disruptor: {Intensity: 1, Scale: 1},
	Wave:      {Intensity: 1, Scale: 1},
}

// Names returns the procedural shader names, sorted.
func Names() []string {
	names := make([]string, 0, len(shaders))
	for name := range shaders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultParams returns the built-in parameters of the named shader, or
// unit intensity and scale for names without their own.
func DefaultParams(name string) Params {
	if p, ok := defaults[normalize(name)]; ok {
		return p
	}
	return Params{Intensity: 1, Scale: 1}
}

// Spec selects a background.
type Spec struct {
	// Shader is a shader name. Empty uses the theme's shader, if any;
	// "flat" or "none" forces the flat/gradient path.
	Shader string

	// Params overrides the shader parameters. Nil uses the theme's shader
	// defaults, then the shader's own.
	Params *Params

	// Background replaces the theme background color when non-nil.
	Background *colorful.Color
}

// Outcome describes what Render actually drew.
type Outcome struct {
	Shader string // "flat", "gradient", or a shader name

	// Err is a SHADER_RENDER_FAILURE error when a requested shader could
	// not be used.
	Err error
}

// Generator renders backgrounds. It holds no per-render state and is safe
// for concurrent use.
type Generator struct {
	logger *log.Logger
}

// New returns a Generator. A nil logger discards output.
func New(logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{logger: logger}
}

// Render draws a w×h background. It never fails; see [Outcome].
func (g *Generator) Render(w, h int, t theme.Theme, spec Spec) (img *image.RGBA, out Outcome) {
	w, h = max(w, 1), max(h, 1)

	name := normalize(spec.Shader)
	if name == "" && t.Shader != nil {
		name = normalize(t.Shader.Name)
	}
	if name == "" || name == Flat {
		return g.flat(w, h, t, spec.Background)
	}

	fn, ok := shaders[name]
	if !ok {
		return g.fallback(w, h, t, spec.Background,
			errors.New(errors.ErrCodeShaderRenderFailure, "unknown shader %q", spec.Shader))
	}

	p := resolveParams(name, t, spec.Params)
	if !p.Valid() {
		return g.fallback(w, h, t, spec.Background,
			errors.New(errors.ErrCodeShaderRenderFailure, "%s: invalid params %+v", name, p))
	}

	defer func() {
		if r := recover(); r != nil {
			img, out = g.fallback(w, h, t, spec.Background,
				errors.New(errors.ErrCodeShaderRenderFailure, "%s: %v", name, r))
		}
	}()

	u := NewUniforms(w, h, t, p, spec.Background)
	img = image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, func(x, y int) color.RGBA { return toRGBA(fn(u, x, y)) })
	return img, Outcome{Shader: name}
}

func (g *Generator) fallback(w, h int, t theme.Theme, bg *colorful.Color, err error) (*image.RGBA, Outcome) {
	g.logger.Warn("background shader failed, using flat", "err", err)
	img, out := g.flat(w, h, t, bg)
	out.Err = err
	return img, out
}

// flat draws the solid background, or the theme gradient when there is
// one and no background override.
func (g *Generator) flat(w, h int, t theme.Theme, bg *colorful.Color) (*image.RGBA, Outcome) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	if bg == nil && t.Gradient != nil {
		from, to := t.Gradient.From, t.Gradient.To
		rows := make([]color.RGBA, h)
		for y := range rows {
			f := 0.0
			if h > 1 {
				f = float64(y) / float64(h-1)
			}
			rows[y] = toRGBA(from.BlendRgb(to, f))
		}
		fill(img, func(_, y int) color.RGBA { return rows[y] })
		return img, Outcome{Shader: Gradient}
	}

	c := t.Background()
	if bg != nil {
		c = *bg
	}
	solid := toRGBA(c)
	fill(img, func(int, int) color.RGBA { return solid })
	return img, Outcome{Shader: Flat}
}

func resolveParams(name string, t theme.Theme, override *Params) Params {
	if override != nil {
		return *override
	}
	p := defaults[name]
	if s := t.Shader; s != nil && normalize(s.Name) == name {
		if s.Intensity > 0 {
			p.Intensity = s.Intensity
		}
		if s.Scale > 0 {
			p.Scale = s.Scale
		}
	}
	return p
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if a, ok := aliases[name]; ok {
		return a
	}
	return name
}

func fill(img *image.RGBA, at func(x, y int) color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			c := at(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 0xff
		}
	}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s (fallback: %v)", o.Shader, o.Err)
	}
	return o.Shader
}
