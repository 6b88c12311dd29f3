package background

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/codeshot/pkg/theme"
)

// Params are the tunable inputs of a shader.
type Params struct {
	Intensity float64 `json:"intensity"`
	Scale     float64 `json:"scale"`
	Time      float64 `json:"time"`
}

// Valid reports whether p can drive a shader: every value finite, scale
// positive and intensity non-negative.
func (p Params) Valid() bool {
	for _, v := range []float64{p.Intensity, p.Scale, p.Time} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return p.Scale > 0 && p.Intensity >= 0
}

// Uniforms are the per-render inputs shared by every pixel of a shader.
type Uniforms struct {
	Width, Height int

	Primary    colorful.Color
	Secondary  colorful.Color
	Accent     colorful.Color
	Background colorful.Color

	Intensity float64
	Scale     float64
	Time      float64
}

// NewUniforms resolves the shader colors of t. Roles default to keyword,
// function, string and background; the theme's shader descriptor may
// override each with a role name or hex color. A non-nil bg replaces the
// background role.
func NewUniforms(w, h int, t theme.Theme, p Params, bg *colorful.Color) Uniforms {
	u := Uniforms{
		Width:      w,
		Height:     h,
		Primary:    t.Color(theme.ClassKeyword),
		Secondary:  t.Color(theme.ClassFunction),
		Accent:     t.Color(theme.ClassString),
		Background: t.Background(),
		Intensity:  p.Intensity,
		Scale:      p.Scale,
		Time:       p.Time,
	}
	if t.Shader != nil {
		for role, dst := range map[string]*colorful.Color{
			"primary":    &u.Primary,
			"secondary":  &u.Secondary,
			"accent":     &u.Accent,
			"background": &u.Background,
		} {
			if value, ok := t.Shader.Colors[role]; ok {
				if c, err := t.RoleColor(value); err == nil {
					*dst = c
				}
			}
		}
	}
	if bg != nil {
		u.Background = *bg
	}
	return u
}

// centered maps a pixel to aspect-corrected coordinates with the origin at
// the canvas center and y spanning [-0.5, 0.5].
func (u Uniforms) centered(x, y int) (float64, float64) {
	w, h := float64(u.Width), float64(u.Height)
	return (float64(x) + 0.5 - 0.5*w) / h, (float64(y) + 0.5 - 0.5*h) / h
}

// normalized maps a pixel to [0, 1]².
func (u Uniforms) normalized(x, y int) (float64, float64) {
	return (float64(x) + 0.5) / float64(u.Width), (float64(y) + 0.5) / float64(u.Height)
}
