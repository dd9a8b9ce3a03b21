package renderer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/playablehq/stagfall/systems"
)

// terrainRes is the heightmap resolution per side. 128 quads across the
// playfield keeps the mesh under 35k triangles, cheap enough for the ad
// player's embedded WebGL context.
const terrainRes = 129

// Terrain is the ground mesh baked from the analytic heightfield. The mesh
// quantizes heights to 8 bits (about 1.5cm at the default amplitude); actors
// and the shot raycast keep sampling the exact field, so the bake is purely
// cosmetic.
type Terrain struct {
	model    rl.Model
	texture  rl.Texture2D
	position rl.Vector3
}

// NewTerrain bakes the heightfield into a model covering the spawn band plus
// margin on every side. Must run after rl.InitWindow.
func NewTerrain(field *systems.HeightField, bounds systems.Bounds, margin float32) Terrain {
	extent := bounds.RadiusMax + margin
	minX := bounds.StandX - extent
	minZ := bounds.StandZ - extent
	step := 2 * extent / (terrainRes - 1)

	// First pass: sample heights and find the vertical range.
	heights := make([]float32, terrainRes*terrainRes)
	hMin, hMax := math32.Inf(1), math32.Inf(-1)
	for iz := 0; iz < terrainRes; iz++ {
		for ix := 0; ix < terrainRes; ix++ {
			h := field.HeightAt(minX+float32(ix)*step, minZ+float32(iz)*step)
			heights[iz*terrainRes+ix] = h
			if h < hMin {
				hMin = h
			}
			if h > hMax {
				hMax = h
			}
		}
	}
	span := hMax - hMin
	if span < 0.001 {
		span = 0.001 // flat worlds still need a nonzero mesh height
	}

	// Second pass: encode heights as grayscale for GenMeshHeightmap and
	// bake the ground color alongside.
	heightImg := rl.GenImageColor(terrainRes, terrainRes, rl.Black)
	colorImg := rl.GenImageColor(terrainRes, terrainRes, rl.Black)
	for iz := 0; iz < terrainRes; iz++ {
		for ix := 0; ix < terrainRes; ix++ {
			x := minX + float32(ix)*step
			z := minZ + float32(iz)*step
			h := heights[iz*terrainRes+ix]
			v := uint8((h - hMin) / span * 255)
			rl.ImageDrawPixel(heightImg, int32(ix), int32(iz), rl.NewColor(v, v, v, 255))

			_, ny, _ := field.NormalAt(x, z)
			rl.ImageDrawPixel(colorImg, int32(ix), int32(iz), groundColor((h-hMin)/span, 1-ny, ix, iz))
		}
	}

	mesh := rl.GenMeshHeightmap(*heightImg, rl.NewVector3(2*extent, span, 2*extent))
	rl.UnloadImage(heightImg)

	t := Terrain{
		model:    rl.LoadModelFromMesh(mesh),
		texture:  rl.LoadTextureFromImage(colorImg),
		position: rl.NewVector3(minX, hMin, minZ),
	}
	rl.UnloadImage(colorImg)

	rl.SetTextureFilter(t.texture, rl.FilterBilinear)
	mats := t.model.GetMaterials()
	rl.SetMaterialTexture(&mats[0], rl.MapAlbedo, t.texture)
	return t
}

// Draw renders the ground.
func (t Terrain) Draw() {
	rl.DrawModel(t.model, t.position, 1, rl.White)
}

// Unload releases the mesh and texture.
func (t Terrain) Unload() {
	rl.UnloadModel(t.model)
	rl.UnloadTexture(t.texture)
}

// groundColor picks the texel for one heightmap cell: meadow green banded by
// height, rock where the slope steepens, with a small positional dither so
// the field does not read as flat bands.
func groundColor(h01, steep float32, ix, iz int) rl.Color {
	dither := int16((ix*7+iz*13)%5) - 2
	if steep > 0.38 {
		g := clampU8(int16(118)+int16(steep*40)+dither*2, 90, 180)
		return rl.Color{R: g, G: g, B: g - 10, A: 255} // scree gray
	}
	r := clampU8(int16(74)+int16(h01*52)+dither*3, 50, 140)
	g := clampU8(int16(116)+int16(h01*38)+dither*3, 90, 170)
	b := clampU8(int16(54)+int16(h01*18)+dither, 40, 90)
	return rl.Color{R: r, G: g, B: b, A: 255} // meadow green
}

func clampU8(v, lo, hi int16) uint8 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return uint8(v)
}
