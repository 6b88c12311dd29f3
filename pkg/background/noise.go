package background

import "math"

// Octaves is the number of FBM octaves used by the shaders.
const Octaves = 4

// hash maps an integer lattice point to [0, 1].
func hash(ix, iy int64) float64 {
	h := uint32(ix)*374761393 + uint32(iy)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h) / math.MaxUint32
}

// ValueNoise returns smooth 2D value noise in [0, 1]. Lattice values come
// from an integer hash and are interpolated bilinearly with smoothstep
// weights.
func ValueNoise(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	ix, iy := int64(fx), int64(fy)
	u, v := smooth(x-fx), smooth(y-fy)

	a := hash(ix, iy)
	b := hash(ix+1, iy)
	c := hash(ix, iy+1)
	d := hash(ix+1, iy+1)
	return lerp(lerp(a, b, u), lerp(c, d, u), v)
}

// FBM sums octaves of value noise, halving the amplitude and doubling the
// frequency each octave. The result lies in [0, 1).
func FBM(x, y float64, octaves int) float64 {
	sum, amp, freq := 0.0, 0.5, 1.0
	for range octaves {
		sum += amp * ValueNoise(x*freq, y*freq)
		amp *= 0.5
		freq *= 2
	}
	return sum
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// smoothstep is the GLSL smoothstep.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	return smooth(clamp01((x - edge0) / (edge1 - edge0)))
}

func fract(v float64) float64 { return v - math.Floor(v) }
