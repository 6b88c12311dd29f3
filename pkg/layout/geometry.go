package layout

import "math"

// Rect is an axis-aligned rectangle in logical units.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Geometry is the resolved placement of every element of a screenshot.
type Geometry struct {
	Scale       float64
	OuterMargin float64
	LineHeight  float64

	Canvas  Rect
	Window  Rect
	Chrome  Rect // zero height when window chrome is off
	Gutter  Rect // line-number column, zero width when line numbers are off
	Content Rect
}

// maxPixelSide bounds CanvasPixels so sizes from huge or non-finite
// inputs stay positive and their product fits an int.
const maxPixelSide = math.MaxInt32

// CanvasPixels returns the output image size. Both dimensions are at
// least 1 and at most math.MaxInt32, so oversized geometry is reported as
// too large instead of wrapping around.
func (g Geometry) CanvasPixels() (w, h int) {
	return pixels(g.Canvas.W * g.Scale), pixels(g.Canvas.H * g.Scale)
}

func pixels(v float64) int {
	switch {
	case math.IsNaN(v) || v < 1:
		return 1
	case v >= maxPixelSide:
		return maxPixelSide
	}
	return int(math.Ceil(v))
}

func computeGeometry(opts Options, lines int, widest, numberWidth, gap, lineHeight float64) Geometry {
	pad := opts.Padding
	gutter := numberWidth + gap

	windowW := math.Max(opts.Width, 2*pad+gutter)
	if !opts.LineWrap {
		windowW = math.Max(windowW, widest+2*pad+gutter)
	}
	chrome := 0.0
	if opts.WindowChrome {
		chrome = ChromeHeight
	}
	contentH := float64(lines) * lineHeight
	windowH := contentH + 2*pad + chrome

	window := Rect{X: OuterMargin, Y: OuterMargin, W: windowW, H: windowH}
	top := window.Y + chrome + pad
	left := window.X + pad

	return Geometry{
		Scale:       Scale,
		OuterMargin: OuterMargin,
		LineHeight:  lineHeight,
		Canvas:      Rect{W: windowW + 2*OuterMargin, H: windowH + 2*OuterMargin},
		Window:      window,
		Chrome:      Rect{X: window.X, Y: window.Y, W: windowW, H: chrome},
		Gutter:      Rect{X: left, Y: top, W: numberWidth, H: contentH},
		Content: Rect{
			X: left + gutter,
			Y: top,
			W: windowW - 2*pad - gutter,
			H: contentH,
		},
	}
}
