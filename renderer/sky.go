package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawSky paints the 2D backdrop before the 3D pass: a vertical gradient
// with a soft sun disc. Bullet time cools the palette so the slowdown reads
// even before the letterbox bars land.
func drawSky(inFlight bool) {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	top := rl.Color{R: 110, G: 158, B: 222, A: 255}     // zenith blue
	horizon := rl.Color{R: 208, G: 224, B: 238, A: 255} // haze
	if inFlight {
		top = rl.Color{R: 78, G: 108, B: 158, A: 255}
		horizon = rl.Color{R: 158, G: 176, B: 198, A: 255}
	}
	rl.DrawRectangleGradientV(0, 0, w, h, top, horizon)

	if !inFlight {
		sun := rl.Color{R: 255, G: 244, B: 214, A: 255}
		rl.DrawCircleGradient(w*3/4, h/5, float32(h)*0.14, rl.Fade(sun, 0.9), rl.Fade(sun, 0))
	}
}
