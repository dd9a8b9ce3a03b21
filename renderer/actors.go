package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/chewxy/math32"

	"github.com/playablehq/stagfall/game"
)

// drawActor renders one animal as a box composite in its local frame:
// origin at the ground under the actor, +Z forward at yaw zero. A dead
// actor rolls onto its side around that ground pivot as Falling runs 0
// to 1.
func drawActor(v game.ActorView, groundY float32) {
	ride := v.Position.Y - groundY

	rl.PushMatrix()
	rl.Translatef(v.Position.X, groundY, v.Position.Z)
	rl.Rotatef(v.Yaw*180/math32.Pi, 0, 1, 0)
	if v.Falling > 0 {
		// Quadratic ease so the collapse accelerates like a real fall.
		rl.Rotatef(-88*v.Falling*v.Falling, 0, 0, 1)
	}

	switch v.Species {
	case "deer":
		drawDeer(ride)
	case "bear":
		drawBear(ride)
	case "rabbit":
		drawRabbit(ride)
	default:
		rl.DrawCubeV(rl.NewVector3(0, ride, 0), rl.NewVector3(0.5, 0.5, 0.5), rl.Gray)
	}
	rl.PopMatrix()
}

func drawDeer(ride float32) {
	coat := rl.Color{R: 158, G: 116, B: 72, A: 255}  // tan
	dark := rl.Color{R: 120, G: 85, B: 52, A: 255}   // legs, neck
	bone := rl.Color{R: 205, G: 194, B: 168, A: 255} // antlers

	rl.DrawCubeV(rl.NewVector3(0, ride, 0), rl.NewVector3(0.42, 0.5, 1.2), coat)
	rl.DrawCubeV(rl.NewVector3(0, ride+0.35, 0.45), rl.NewVector3(0.14, 0.45, 0.14), dark)
	rl.DrawCubeV(rl.NewVector3(0, ride+0.62, 0.58), rl.NewVector3(0.16, 0.2, 0.34), coat)
	rl.DrawCubeV(rl.NewVector3(0, ride+0.1, -0.64), rl.NewVector3(0.1, 0.12, 0.08), dark)
	for _, sx := range []float32{-1, 1} {
		rl.DrawCubeV(rl.NewVector3(sx*0.09, ride+0.85, 0.52), rl.NewVector3(0.04, 0.3, 0.04), bone)
		rl.DrawCubeV(rl.NewVector3(sx*0.13, ride+0.94, 0.52), rl.NewVector3(0.16, 0.04, 0.04), bone)
	}
	drawLegs(0.15, 0.48, ride-0.18, 0.09, dark)
}

func drawBear(ride float32) {
	coat := rl.Color{R: 96, G: 66, B: 44, A: 255}   // dark brown
	dark := rl.Color{R: 70, G: 48, B: 32, A: 255}   // legs
	snout := rl.Color{R: 142, G: 110, B: 78, A: 255}

	rl.DrawCubeV(rl.NewVector3(0, ride, 0), rl.NewVector3(0.68, 0.72, 1.5), coat)
	rl.DrawCubeV(rl.NewVector3(0, ride+0.32, 0.8), rl.NewVector3(0.34, 0.3, 0.34), coat)
	rl.DrawCubeV(rl.NewVector3(0, ride+0.24, 1.04), rl.NewVector3(0.14, 0.13, 0.18), snout)
	for _, sx := range []float32{-1, 1} {
		rl.DrawCubeV(rl.NewVector3(sx*0.12, ride+0.5, 0.74), rl.NewVector3(0.09, 0.09, 0.06), dark)
	}
	drawLegs(0.24, 0.6, ride-0.28, 0.17, dark)
}

func drawRabbit(ride float32) {
	coat := rl.Color{R: 150, G: 142, B: 132, A: 255} // gray-brown
	dark := rl.Color{R: 118, G: 110, B: 102, A: 255}

	rl.DrawCubeV(rl.NewVector3(0, ride, 0), rl.NewVector3(0.24, 0.22, 0.4), coat)
	rl.DrawCubeV(rl.NewVector3(0, ride+0.11, 0.22), rl.NewVector3(0.16, 0.15, 0.16), coat)
	for _, sx := range []float32{-1, 1} {
		rl.DrawCubeV(rl.NewVector3(sx*0.05, ride+0.3, 0.18), rl.NewVector3(0.05, 0.22, 0.03), dark)
	}
	rl.DrawSphere(rl.NewVector3(0, ride, -0.22), 0.055, rl.RayWhite)
	drawLegs(0.08, 0.14, ride-0.08, 0.05, dark)
}

// drawLegs plants four legs from the ground up to topY, inset from the body
// corners by halfW and halfL.
func drawLegs(halfW, halfL, topY, thickness float32, col rl.Color) {
	if topY < 0.05 {
		topY = 0.05
	}
	size := rl.NewVector3(thickness, topY, thickness)
	for _, sx := range []float32{-1, 1} {
		for _, sz := range []float32{-1, 1} {
			rl.DrawCubeV(rl.NewVector3(sx*halfW, topY/2, sz*halfL), size, col)
		}
	}
}
