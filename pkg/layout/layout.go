package layout

import (
	"math"
	"strconv"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/matzehuels/codeshot/pkg/highlight"
)

// Fixed geometry constants, in logical units.
const (
	Scale           = 2.0  // device scale of the output image
	OuterMargin     = 40.0 // space around the window for the shadow
	ChromeHeight    = 36.0 // title bar height when window chrome is on
	LineHeightRatio = 1.5  // line height as a multiple of the font size
	NumberGap       = 1.5  // gap after line numbers, in em
)

// Measurer measures text in logical units.
type Measurer interface {
	Measure(text string) float64
	EmojiAdvance(adjacent bool) float64
	LineHeight() float64
}

// Options are the geometry inputs of a render.
type Options struct {
	Width        float64
	FontSize     float64
	Padding      float64
	LineNumbers  bool
	WindowChrome bool
	LineWrap     bool
}

// Run is a piece of one token placed on a visual line. X is relative to
// the left edge of the content rectangle.
type Run struct {
	Token highlight.Token
	X     float64
	Width float64
}

// VisualLine is one line of output after wrapping.
type VisualLine struct {
	Runs  []Run
	Width float64

	// Number is the 1-based source line number, or 0 for continuation
	// lines produced by wrapping.
	Number int
}

// Layout is the result of Compute.
type Layout struct {
	Lines    []VisualLine
	Geometry Geometry
}

// Compute wraps lines and derives the geometry. It never panics; negative
// options are treated as zero.
func Compute(lines []highlight.Line, opts Options, m Measurer) Layout {
	if len(lines) == 0 {
		lines = []highlight.Line{nil}
	}
	opts.Width = nonNegative(opts.Width)
	opts.FontSize = nonNegative(opts.FontSize)
	opts.Padding = nonNegative(opts.Padding)

	var numberWidth, gap float64
	if opts.LineNumbers {
		numberWidth = m.Measure(strconv.Itoa(len(lines)))
		gap = NumberGap * opts.FontSize
	}
	gutter := numberWidth + gap
	contentWidth := math.Max(0, opts.Width-2*opts.Padding-gutter)

	p := packer{m: m, limit: contentWidth, wrap: opts.LineWrap}
	for i, line := range lines {
		p.line(i+1, line)
	}

	widest := 0.0
	for _, vl := range p.out {
		widest = math.Max(widest, vl.Width)
	}

	geo := computeGeometry(opts, len(p.out), widest, numberWidth, gap, nonNegative(m.LineHeight()))
	return Layout{Lines: p.out, Geometry: geo}
}

// packer accumulates visual lines.
type packer struct {
	m     Measurer
	limit float64
	wrap  bool

	out []VisualLine
	cur VisualLine
}

func (p *packer) line(number int, tokens highlight.Line) {
	p.cur = VisualLine{Number: number}
	for _, tok := range tokens {
		if tok.Emoji {
			p.place(tok, p.m.EmojiAdvance(tok.Adjacent))
			continue
		}
		if !p.wrap {
			p.add(tok, p.m.Measure(tok.Text))
			continue
		}
		for _, word := range words(tok.Text) {
			piece := tok
			piece.Text = word
			p.place(piece, p.m.Measure(word))
		}
	}
	p.flush()
}

// place adds tok with width w, breaking the line first when it would
// overflow. Pieces wider than the limit fall back to grapheme packing.
func (p *packer) place(tok highlight.Token, w float64) {
	switch {
	case !p.wrap || p.cur.Width+w <= p.limit:
		p.add(tok, w)
	case w <= p.limit:
		p.flush()
		p.add(tok, w)
	case tok.Emoji:
		p.breakIfUsed()
		p.add(tok, w)
	default:
		gr := uniseg.NewGraphemes(tok.Text)
		for gr.Next() {
			piece := tok
			piece.Text = gr.Str()
			gw := p.m.Measure(piece.Text)
			if p.cur.Width+gw > p.limit {
				p.breakIfUsed()
			}
			p.add(piece, gw)
		}
	}
}

func (p *packer) add(tok highlight.Token, w float64) {
	runs := p.cur.Runs
	if n := len(runs); n > 0 && !tok.Emoji && !runs[n-1].Token.Emoji && runs[n-1].Token.Class == tok.Class {
		runs[n-1].Token.Text += tok.Text
		runs[n-1].Width += w
	} else {
		p.cur.Runs = append(runs, Run{Token: tok, X: p.cur.Width, Width: w})
	}
	p.cur.Width += w
}

// breakIfUsed starts a new visual line unless the current one is empty.
func (p *packer) breakIfUsed() {
	if len(p.cur.Runs) > 0 {
		p.flush()
	}
}

func (p *packer) flush() {
	p.out = append(p.out, p.cur)
	p.cur = VisualLine{}
}

// words splits s into words, each a run of non-space characters followed
// by the spaces after it. Leading spaces form their own word.
func words(s string) []string {
	var out []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if !space && inSpace && i > start {
			out = append(out, s[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
