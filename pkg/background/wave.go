package background

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// wave draws a vertical gradient through background, secondary, primary
// and accent whose position is bent by a horizontal sine, then adds a
// color ripple, FBM dust and a radial vignette.
func wave(u Uniforms, x, y int) colorful.Color {
	nx, ny := u.normalized(x, y)
	aspect := float64(u.Width) / float64(u.Height)

	freq := 2 * math.Pi * 1.5 * u.Scale
	amp := 0.08 * u.Intensity
	pos := clamp01(ny + amp*math.Sin(nx*freq+u.Time))

	stops := [4]colorful.Color{u.Background, u.Secondary, u.Primary, u.Accent}
	band := math.Min(pos*3, 2.999999)
	i := int(band)
	c := stops[i].BlendRgb(stops[i+1], smooth(band-float64(i)))

	ripple := 0.03 * math.Sin(nx*40*u.Scale+pos*10+u.Time)
	dust := (FBM(nx*8*u.Scale*aspect, ny*8*u.Scale, Octaves) - 0.5) * 0.06

	dist := math.Hypot(nx-0.5, ny-0.5)
	vignette := 1 - smoothstep(0.4, 0.9, dist)*0.45

	return colorful.Color{
		R: clamp01((c.R + ripple + dust) * vignette),
		G: clamp01((c.G + ripple + dust) * vignette),
		B: clamp01((c.B + ripple + dust) * vignette),
	}
}
