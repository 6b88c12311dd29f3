package background

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// halftoneCells is the number of grid cells per canvas height at scale 1.
const halftoneCells = 36.0

// halftone lays a dot grid over a noise field. A pixel is lit when its
// distance to the center of its grid cell is below a radius modulated by
// the noise flow. Lit pixels take the primary color, unlit pixels keep the
// background.
func halftone(u Uniforms, x, y int) colorful.Color {
	px, py := u.centered(x, y)

	flow := FBM(px*1.5+u.Time*0.05, py*1.5-u.Time*0.03, Octaves)

	freq := halftoneCells * u.Scale
	cx, cy := fract(px*freq)-0.5, fract(py*freq)-0.5
	dist := math.Hypot(cx, cy)
	radius := (0.1 + 0.05*math.Sin(flow*2*math.Pi)) * u.Intensity

	// One pixel of antialiasing at the dot edge.
	edge := freq / float64(u.Height)
	lit := 1 - smoothstep(radius-edge, radius, dist)
	if radius <= 0 {
		lit = 0
	}
	return u.Background.BlendRgb(u.Primary, lit)
}
