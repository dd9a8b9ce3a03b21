// Package camera provides the hunting stand view rig, the bullet-time
// orbit camera, and recoil shake.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/playablehq/stagfall/components"
	"github.com/playablehq/stagfall/systems"
)

// Pose is a resolved camera transform, handed to the renderer each frame.
// Exactly one pose is active per frame: the rig's, or the orbit's while a
// bullet is in flight.
type Pose struct {
	Position components.Vec3
	Target   components.Vec3
	Up       components.Vec3
	FOV      float32 // vertical field of view, radians
}

// Rig is the player's view from the hunting stand. The stand never moves;
// only yaw and pitch respond to aim input. Yaw zero faces +Z, positive yaw
// swings toward +X, and pitch is clamped to the configured limits so the
// player cannot aim into the sky or their own feet.
type Rig struct {
	Position components.Vec3
	Yaw      float32
	Pitch    float32
	FOV      float32
	Aspect   float32 // width over height

	SensX, SensY       float32 // radians per pixel of drag
	PitchMin, PitchMax float32
}

// Aim applies pointer drag deltas in pixels. Dragging right swings the
// view toward screen right, dragging down pitches it down.
func (r *Rig) Aim(dxPx, dyPx float32) {
	r.Yaw -= dxPx * r.SensX
	r.Pitch = clampFloat(r.Pitch-dyPx*r.SensY, r.PitchMin, r.PitchMax)
}

// LookAt points the rig directly at a world point, respecting pitch limits.
func (r *Rig) LookAt(p components.Vec3) {
	d := p.Sub(r.Position).Normalize()
	r.Yaw = math32.Atan2(d.X, d.Z)
	r.Pitch = clampFloat(math32.Asin(d.Y), r.PitchMin, r.PitchMax)
}

// Forward returns the unit view direction.
func (r *Rig) Forward() components.Vec3 {
	cp := math32.Cos(r.Pitch)
	return components.Vec3{
		X: cp * math32.Sin(r.Yaw),
		Y: math32.Sin(r.Pitch),
		Z: cp * math32.Cos(r.Yaw),
	}
}

// Right returns the unit screen-right axis. The rig never rolls, so right
// stays on the ground plane.
func (r *Rig) Right() components.Vec3 {
	return components.Vec3{X: -math32.Cos(r.Yaw), Y: 0, Z: math32.Sin(r.Yaw)}
}

// Ray builds the world-space aim ray through a screen offset. The offset is
// normalized device style: (0, 0) is the crosshair at screen center, +x one
// half-screen right, +y one half-screen up.
func (r *Rig) Ray(offsetX, offsetY float32) systems.Ray {
	f := r.Forward()
	right := r.Right()
	up := right.Cross(f)

	tanY := math32.Tan(r.FOV / 2)
	tanX := tanY * r.Aspect
	dir := f.Add(right.Scale(offsetX * tanX)).Add(up.Scale(offsetY * tanY))
	return systems.Ray{Origin: r.Position, Dir: dir.Normalize()}
}

// Pose returns the rig's camera transform.
func (r *Rig) Pose() Pose {
	return Pose{
		Position: r.Position,
		Target:   r.Position.Add(r.Forward()),
		Up:       components.Vec3{Y: 1},
		FOV:      r.FOV,
	}
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
