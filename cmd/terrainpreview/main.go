// Terrain preview tool - top-down heightfield visualization with sliders
// for the FBM parameters, plus the spawn band overlaid so level tweaks
// keep animals on sensible ground.
//
// Usage: go run ./cmd/terrainpreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/chewxy/math32"

	"github.com/playablehq/stagfall/config"
	"github.com/playablehq/stagfall/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	config.MustInit("")
	cfg := config.Cfg()
	tc := cfg.Terrain
	var seed int64 = 1

	// The preview covers the playfield the windowed build bakes.
	extent := float32(cfg.SpawnRadius.Max) + 15

	heights := make([]float32, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			field := systems.NewHeightField(seed, tc)
			generateHeights(heights, field, cfg, extent)
			updateTexture(texture, heights, tc)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
		drawBandOverlay(cfg, extent)

		var minH, maxH float32 = heights[0], heights[0]
		for _, h := range heights {
			if h < minH {
				minH = h
			}
			if h > maxH {
				maxH = h
			}
		}
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.2fm  Max: %.2fm  Relief: %.2fm", minH, maxH, maxH-minH), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Seed: %d", seed), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, fmtStr string, value float32, min, max float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(fmtStr, min), fmt.Sprintf(fmtStr, max),
				value, min, max,
			)
			rl.DrawText(fmt.Sprintf(fmtStr, v), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			return v
		}

		if v := slider("Scale (base noise frequency)", "%.3f", float32(tc.Scale), 0.005, 0.12); v != float32(tc.Scale) {
			tc.Scale = float64(v)
			needsRegen = true
		}
		if v := slider("Octaves (FBM detail level)", "%.0f", float32(tc.Octaves), 1, 7); int(v) != tc.Octaves {
			tc.Octaves = int(v)
			needsRegen = true
		}
		if v := slider("Lacunarity (frequency per octave)", "%.2f", float32(tc.Lacunarity), 1.5, 3.5); v != float32(tc.Lacunarity) {
			tc.Lacunarity = float64(v)
			needsRegen = true
		}
		if v := slider("Gain (amplitude per octave)", "%.2f", float32(tc.Gain), 0.2, 0.8); v != float32(tc.Gain) {
			tc.Gain = float64(v)
			needsRegen = true
		}
		if v := slider("Amplitude (relief, meters)", "%.1f", float32(tc.Amplitude), 0, 12); v != float32(tc.Amplitude) {
			tc.Amplitude = float64(v)
			needsRegen = true
		}
		if v := slider("Seed", "%.0f", float32(seed), 1, 9999); int64(v) != seed {
			seed = int64(v)
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			tc = cfg.Terrain
			seed = 1
			needsRegen = true
		}
		panelY += 45

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(tc) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(tc) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func yamlLines(tc config.TerrainConfig) []string {
	return []string{
		"terrain:",
		fmt.Sprintf("  scale: %.3f", tc.Scale),
		fmt.Sprintf("  octaves: %d", tc.Octaves),
		fmt.Sprintf("  lacunarity: %.2f", tc.Lacunarity),
		fmt.Sprintf("  gain: %.2f", tc.Gain),
		fmt.Sprintf("  amplitude: %.1f", tc.Amplitude),
		fmt.Sprintf("  base_height: %.1f", tc.BaseHeight),
	}
}

// generateHeights samples the field over the square the game bakes,
// centered on the stand. Row zero is world +Z so the facing direction
// points up on screen, matching the band overlay.
func generateHeights(grid []float32, field *systems.HeightField, cfg *config.Config, extent float32) {
	standX := float32(cfg.Stand.X)
	standZ := float32(cfg.Stand.Z)
	for zi := 0; zi < gridSize; zi++ {
		z := standZ + extent - 2*extent*float32(zi)/float32(gridSize-1)
		for xi := 0; xi < gridSize; xi++ {
			x := standX - extent + 2*extent*float32(xi)/float32(gridSize-1)
			grid[zi*gridSize+xi] = field.HeightAt(x, z)
		}
	}
}

// updateTexture maps heights to a hypsometric ramp: deep green lowland,
// light grass, tan, then gray rock at the peaks.
func updateTexture(texture rl.Texture2D, grid []float32, tc config.TerrainConfig) {
	minH, maxH := grid[0], grid[0]
	for _, h := range grid {
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}
	span := maxH - minH
	if span < 0.001 {
		span = 0.001
	}

	pixels := make([]color.RGBA, len(grid))
	for i, h := range grid {
		v := (h - minH) / span
		var r, g, b uint8
		switch {
		case v < 0.35:
			t := v / 0.35
			r = uint8(40 + t*40)
			g = uint8(90 + t*40)
			b = uint8(40 + t*10)
		case v < 0.7:
			t := (v - 0.35) / 0.35
			r = uint8(80 + t*90)
			g = uint8(130 + t*30)
			b = uint8(50 + t*40)
		default:
			t := (v - 0.7) / 0.3
			r = uint8(170 - t*30)
			g = uint8(160 - t*25)
			b = uint8(90 + t*50)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}

// drawBandOverlay traces the spawn band and sector edges over the preview
// so slope changes can be judged where animals actually walk.
func drawBandOverlay(cfg *config.Config, extent float32) {
	const originX, originY = 10, 10
	center := rl.Vector2{
		X: originX + previewSize/2,
		Y: originY + previewSize/2,
	}
	toPx := func(meters float32) float32 {
		return meters / (2 * extent) * previewSize
	}

	band := rl.Fade(rl.Red, 0.55)
	half := cfg.Derived.HalfAngle
	for _, radius := range []float32{float32(cfg.SpawnRadius.Min), float32(cfg.SpawnRadius.Max)} {
		prev := bandPoint(center, toPx(radius), -half)
		const segs = 32
		for i := 1; i <= segs; i++ {
			a := -half + 2*half*float32(i)/segs
			next := bandPoint(center, toPx(radius), a)
			rl.DrawLineV(prev, next, band)
			prev = next
		}
	}
	for _, a := range []float32{-half, half} {
		rl.DrawLineV(
			bandPoint(center, toPx(float32(cfg.SpawnRadius.Min)), a),
			bandPoint(center, toPx(float32(cfg.SpawnRadius.Max)), a),
			band,
		)
	}
	rl.DrawCircleV(center, 3, rl.Red) // the stand
}

// bandPoint maps a stand-relative polar point into preview pixels. World +Z
// (facing direction) points up on screen.
func bandPoint(center rl.Vector2, radiusPx, angle float32) rl.Vector2 {
	return rl.Vector2{
		X: center.X + radiusPx*math32.Sin(angle),
		Y: center.Y - radiusPx*math32.Cos(angle),
	}
}
