package systems

import (
	"github.com/chewxy/math32"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/playablehq/stagfall/config"
)

// HeightField is the deterministic terrain elevation provider. It samples
// fractional Brownian motion over simplex noise, so any world (x, z) maps to
// a stable height without storing a grid. The same seed and parameters always
// produce the same surface.
type HeightField struct {
	noise      opensimplex.Noise
	scale      float64
	octaves    int
	lacunarity float64
	gain       float64
	amplitude  float32
	base       float32
}

// NewHeightField builds a height field from terrain parameters and a seed.
func NewHeightField(seed int64, tc config.TerrainConfig) *HeightField {
	return &HeightField{
		noise:      opensimplex.New(seed),
		scale:      tc.Scale,
		octaves:    tc.Octaves,
		lacunarity: tc.Lacunarity,
		gain:       tc.Gain,
		amplitude:  float32(tc.Amplitude),
		base:       float32(tc.BaseHeight),
	}
}

// HeightAt returns the terrain elevation at ground coordinates (x, z).
// Pure and allocation free; callers sample it every frame per actor.
func (h *HeightField) HeightAt(x, z float32) float32 {
	sum := 0.0
	amp := 1.0
	norm := 0.0
	freq := h.scale

	for o := 0; o < h.octaves; o++ {
		sum += amp * h.noise.Eval2(float64(x)*freq, float64(z)*freq)
		norm += amp
		freq *= h.lacunarity
		amp *= h.gain
	}
	if norm > 0 {
		sum /= norm
	}
	return h.base + h.amplitude*float32(sum)
}

// NormalAt approximates the surface normal at (x, z) by central differences,
// for shading and placing props flush with slopes.
func (h *HeightField) NormalAt(x, z float32) (nx, ny, nz float32) {
	const eps = 0.5
	dx := h.HeightAt(x+eps, z) - h.HeightAt(x-eps, z)
	dz := h.HeightAt(x, z+eps) - h.HeightAt(x, z-eps)

	// Cross product of the two tangents (2*eps, dx, 0) and (0, dz, 2*eps)
	nx = -dx
	ny = 2 * eps
	nz = -dz
	l := nx*nx + ny*ny + nz*nz
	if l > 0 {
		inv := 1 / math32.Sqrt(l)
		nx, ny, nz = nx*inv, ny*inv, nz*inv
	}
	return nx, ny, nz
}
