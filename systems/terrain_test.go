package systems

import (
	"testing"

	"github.com/playablehq/stagfall/config"
)

func testTerrainConfig() config.TerrainConfig {
	return config.TerrainConfig{
		Scale:      0.05,
		Octaves:    4,
		Lacunarity: 2.0,
		Gain:       0.5,
		Amplitude:  3.0,
		BaseHeight: 1.0,
	}
}

func TestHeightField_Deterministic(t *testing.T) {
	a := NewHeightField(42, testTerrainConfig())
	b := NewHeightField(42, testTerrainConfig())

	for x := float32(-50); x <= 50; x += 7.3 {
		for z := float32(-50); z <= 50; z += 7.3 {
			ha, hb := a.HeightAt(x, z), b.HeightAt(x, z)
			if ha != hb {
				t.Fatalf("same seed diverged at (%g, %g): %g vs %g", x, z, ha, hb)
			}
		}
	}
}

func TestHeightField_SeedChangesSurface(t *testing.T) {
	a := NewHeightField(1, testTerrainConfig())
	b := NewHeightField(2, testTerrainConfig())

	differs := false
	for x := float32(-40); x <= 40 && !differs; x += 11 {
		for z := float32(-40); z <= 40; z += 11 {
			if a.HeightAt(x, z) != b.HeightAt(x, z) {
				differs = true
				break
			}
		}
	}
	if !differs {
		t.Error("different seeds produced identical surfaces")
	}
}

func TestHeightField_Continuous(t *testing.T) {
	h := NewHeightField(7, testTerrainConfig())

	// Neighboring samples must not jump; the wander system relies on the
	// surface being smooth at actor step scale.
	const step = 0.05
	prev := h.HeightAt(-30, 12.5)
	for x := float32(-30 + step); x <= 30; x += step {
		cur := h.HeightAt(x, 12.5)
		if d := cur - prev; d > 0.5 || d < -0.5 {
			t.Fatalf("height jumped by %g between x=%g and x=%g", d, x-step, x)
		}
		prev = cur
	}
}

func TestHeightField_WithinAmplitude(t *testing.T) {
	tc := testTerrainConfig()
	h := NewHeightField(99, tc)

	lo := float32(tc.BaseHeight - tc.Amplitude*1.05)
	hi := float32(tc.BaseHeight + tc.Amplitude*1.05)
	for x := float32(-60); x <= 60; x += 3.7 {
		for z := float32(-60); z <= 60; z += 3.7 {
			v := h.HeightAt(x, z)
			if v < lo || v > hi {
				t.Fatalf("height %g at (%g, %g) outside [%g, %g]", v, x, z, lo, hi)
			}
		}
	}
}

func TestHeightField_NormalUnitAndUp(t *testing.T) {
	h := NewHeightField(5, testTerrainConfig())

	for x := float32(-20); x <= 20; x += 9.1 {
		for z := float32(-20); z <= 20; z += 9.1 {
			nx, ny, nz := h.NormalAt(x, z)
			l := nx*nx + ny*ny + nz*nz
			if l < 0.99 || l > 1.01 {
				t.Fatalf("normal at (%g, %g) not unit length: %g", x, z, l)
			}
			if ny <= 0 {
				t.Fatalf("normal at (%g, %g) points down: ny=%g", x, z, ny)
			}
		}
	}
}
