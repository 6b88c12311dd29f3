package render

import (
	"golang.org/x/image/font"

	"github.com/matzehuels/codeshot/pkg/emoji"
	"github.com/matzehuels/codeshot/pkg/fonts"
	"github.com/matzehuels/codeshot/pkg/layout"
)

// faceMeasurer measures with a face created at fontSize·Scale and reports
// logical units.
type faceMeasurer struct {
	face     font.Face
	fontSize float64
}

func (m faceMeasurer) Measure(s string) float64 {
	if m.fontSize <= 0 {
		return 0
	}
	return fonts.Measure(m.face, s) / layout.Scale
}

func (m faceMeasurer) EmojiAdvance(adjacent bool) float64 {
	return emoji.Advance(m.fontSize, adjacent)
}

func (m faceMeasurer) LineHeight() float64 {
	return layout.LineHeightRatio * m.fontSize
}
