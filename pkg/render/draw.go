package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/codeshot/pkg/emoji"
	"github.com/matzehuels/codeshot/pkg/fonts"
	"github.com/matzehuels/codeshot/pkg/layout"
	"github.com/matzehuels/codeshot/pkg/theme"
)

var pngEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// Window decoration, in logical units.
const (
	cornerRadius = 10.0
	shadowOffset = 12.0
	shadowSigma  = 10.0
	shadowAlpha  = 0.45
	dotRadius    = 6.0
	dotInset     = 20.0
	dotSpacing   = 20.0
)

// chromeDots are the close, minimize and zoom buttons.
var chromeDots = [3]color.RGBA{
	{R: 0xff, G: 0x5f, B: 0x56, A: 0xff},
	{R: 0xff, G: 0xbd, B: 0x2e, A: 0xff},
	{R: 0x27, G: 0xc9, B: 0x3f, A: 0xff},
}

// canvas draws layout elements onto one surface. Inputs are logical
// units; s converts them to pixels.
type canvas struct {
	img      *image.RGBA
	dc       *gg.Context
	geo      layout.Geometry
	theme    theme.Theme
	face     font.Face
	fontSize float64
}

func newCanvas(img *image.RGBA, geo layout.Geometry, th theme.Theme, face font.Face, fontSize float64) *canvas {
	return &canvas{
		img:      img,
		dc:       gg.NewContextForRGBA(img),
		geo:      geo,
		theme:    th,
		face:     face,
		fontSize: fontSize,
	}
}

func (c *canvas) s(v float64) float64 { return v * c.geo.Scale }

// drawBackground scales the logical-size background up to the surface.
func (c *canvas) drawBackground(bg image.Image) {
	b := bg.Bounds()
	scale := int(c.geo.Scale)
	scaled := imaging.Resize(bg, b.Dx()*scale, b.Dy()*scale, imaging.Linear)
	c.dc.DrawImage(scaled, 0, 0)
}

// drawShadow renders the window shape on its own surface, blurs it, and
// composites it slightly below the window.
func (c *canvas) drawShadow() {
	win := c.geo.Window
	pad := 3 * shadowSigma
	w := int(math.Ceil(c.s(win.W + 2*pad)))
	h := int(math.Ceil(c.s(win.H + 2*pad)))

	sc := gg.NewContext(w, h)
	sc.SetRGBA(0, 0, 0, shadowAlpha)
	sc.DrawRoundedRectangle(c.s(pad), c.s(pad), c.s(win.W), c.s(win.H), c.s(radius(win)))
	sc.Fill()

	blurred := imaging.Blur(sc.Image(), c.s(shadowSigma))
	c.dc.DrawImage(blurred, int(math.Round(c.s(win.X-pad))), int(math.Round(c.s(win.Y-pad+shadowOffset))))
}

func (c *canvas) drawWindow() {
	win := c.geo.Window
	c.dc.SetColor(c.theme.Background())
	c.dc.DrawRoundedRectangle(c.s(win.X), c.s(win.Y), c.s(win.W), c.s(win.H), c.s(radius(win)))
	c.dc.Fill()
}

// drawChrome draws the title bar and the three traffic-light dots.
func (c *canvas) drawChrome() {
	bar := c.geo.Chrome
	c.dc.SetColor(c.theme.Background().BlendRgb(c.theme.Foreground(), 0.04))
	c.dc.DrawRoundedRectangle(c.s(bar.X), c.s(bar.Y), c.s(bar.W), c.s(bar.H), c.s(radius(bar)))
	c.dc.Fill()
	c.dc.DrawRectangle(c.s(bar.X), c.s(bar.Y+bar.H/2), c.s(bar.W), c.s(bar.H/2))
	c.dc.Fill()

	cy := bar.Y + bar.H/2
	for i, col := range chromeDots {
		c.dc.SetColor(col)
		c.dc.DrawCircle(c.s(bar.X+dotInset+float64(i)*dotSpacing), c.s(cy), c.s(dotRadius))
		c.dc.Fill()
	}
}

// drawLines draws line numbers and tokens. It returns how many emoji were
// drawn as text because no glyph was available.
func (c *canvas) drawLines(lines []layout.VisualLine, numbers bool, glyphs map[string]image.Image) int {
	if c.fontSize <= 0 {
		return 0
	}
	c.dc.SetFontFace(c.face)

	metrics := c.face.Metrics()
	ascent := float64(metrics.Ascent) / 64 / c.geo.Scale
	descent := float64(metrics.Descent) / 64 / c.geo.Scale
	lh := c.geo.LineHeight

	asText := 0
	for i, vl := range lines {
		top := c.geo.Content.Y + float64(i)*lh
		baseline := top + (lh-(ascent+descent))/2 + ascent

		if numbers && vl.Number > 0 {
			label := strconv.Itoa(vl.Number)
			w := fonts.Measure(c.face, label) / c.geo.Scale
			c.dc.SetColor(c.theme.LineNumber())
			c.dc.DrawString(label, c.s(c.geo.Gutter.Right()-w), c.s(baseline))
		}

		for _, run := range vl.Runs {
			x := c.geo.Content.X + run.X
			if run.Token.Emoji {
				if g, ok := glyphs[run.Token.Key]; ok {
					c.drawGlyph(g, x, top, lh)
					continue
				}
				asText++
			}
			c.dc.SetColor(c.theme.Color(run.Token.Class))
			c.dc.DrawString(fonts.ExpandTabs(run.Token.Text), c.s(x), c.s(baseline))
		}
	}
	return asText
}

// drawGlyph scales an emoji bitmap into a square of one emoji advance,
// vertically centered on the line.
func (c *canvas) drawGlyph(g image.Image, x, top, lh float64) {
	size := emoji.AdvanceRatio * c.fontSize
	x0 := int(math.Round(c.s(x)))
	y0 := int(math.Round(c.s(top + (lh-size)/2)))
	side := int(math.Round(c.s(size)))
	dst := image.Rect(x0, y0, x0+side, y0+side)
	xdraw.CatmullRom.Scale(c.img, dst, g, g.Bounds(), xdraw.Over, nil)
}

// radius clamps the corner radius so small rectangles stay well formed.
func radius(r layout.Rect) float64 {
	return math.Max(0, math.Min(cornerRadius, math.Min(r.W, r.H)/2))
}
