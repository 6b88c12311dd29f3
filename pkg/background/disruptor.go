package background

import "github.com/lucasb-eyer/go-colorful"

// BayerMatrix is the 4×4 ordered-dither threshold matrix in row-major
// order, with values k/16.
var BayerMatrix = func() [16]float64 {
	order := [16]int{0, 8, 2, 10, 12, 4, 14, 6, 3, 11, 1, 9, 15, 7, 13, 5}
	var m [16]float64
	for i, k := range order {
		m[i] = float64(k) / 16
	}
	return m
}()

// bayer returns the dither threshold for a pixel.
func bayer(x, y int) float64 {
	return BayerMatrix[(y&3)*4+(x&3)]
}

// disruptor blends two domain-warped noise fields into an organic value,
// dithers it against the Bayer matrix, and mixes background, secondary
// and primary from the noise and the dithered bit.
func disruptor(u Uniforms, x, y int) colorful.Color {
	px, py := u.centered(x, y)
	px *= 3 * u.Scale
	py *= 3 * u.Scale

	n1 := FBM(px+u.Time*0.1, py, Octaves)
	n2 := FBM(px*2+n1*1.5+5.2, py*2+n1*1.5+1.3-u.Time*0.1, Octaves)

	organic := clamp01(0.5 + ((n1+n2)*0.5-0.5)*(1+u.Intensity))

	c := u.Background.BlendRgb(u.Secondary, smoothstep(0.2, 0.8, n1))
	if organic > bayer(x, y) {
		c = c.BlendRgb(u.Primary, clamp01(n2*u.Intensity))
	}
	return c
}
