package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/playablehq/stagfall/game"
)

// drawTracer renders the bullet in flight: a bright slug, a fading streak
// behind it, and a short muzzle flash right after the trigger.
func drawTracer(fl *game.Flight) {
	pos := vec3(fl.BulletAt())
	start := vec3(fl.Start)

	gold := rl.Color{R: 255, G: 214, B: 120, A: 255}

	// Streak from a short way back to the bullet, brightest at the head.
	travel := fl.TravelFraction()
	const segments = 6
	for i := 0; i < segments; i++ {
		f0 := travel * (1 - 0.04*float32(segments-i))
		f1 := travel * (1 - 0.04*float32(segments-i-1))
		if f0 < 0 {
			f0 = 0
		}
		a := rl.Lerp(0.08, 0.85, float32(i+1)/segments)
		rl.DrawLine3D(lerp3(start, vec3(fl.End), f0), lerp3(start, vec3(fl.End), f1), rl.Fade(gold, a))
	}

	rl.DrawSphere(pos, 0.05, gold)
	rl.DrawSphere(pos, 0.09, rl.Fade(gold, 0.35))

	if fl.Progress() < 0.1 {
		flash := 1 - fl.Progress()/0.1
		rl.DrawSphere(start, 0.12+0.25*flash, rl.Fade(rl.Color{R: 255, G: 240, B: 200, A: 255}, 0.6*flash))
	}
}

func lerp3(a, b rl.Vector3, t float32) rl.Vector3 {
	return rl.Vector3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}
