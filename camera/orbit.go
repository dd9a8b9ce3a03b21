package camera

import (
	"github.com/chewxy/math32"

	"github.com/playablehq/stagfall/components"
)

// Orbit is the bullet-time camera. It circles the projectile at a constant
// angular rate while always looking at it. The rate runs on frame time, not
// flight progress, so an eased bullet never makes the orbit stutter.
type Orbit struct {
	Distance float32
	Height   float32
	Rate     float32 // radians per second
	Tighten  float32 // fraction of Distance shed by full flight progress

	angle float32
}

// Align sets the starting angle, letting a flight open side-on to the
// bullet's travel direction.
func (o *Orbit) Align(angle float32) {
	o.angle = angle
}

// Advance turns the orbit by one frame of wall-clock time.
func (o *Orbit) Advance(dt float32) {
	o.angle += o.Rate * dt
}

// Angle returns the accumulated orbit angle in radians.
func (o *Orbit) Angle() float32 {
	return o.angle
}

// Pose returns the camera transform for the current angle around the
// bullet. As progress approaches 1 the camera pulls in by Tighten,
// ending the flight close over the impact.
func (o *Orbit) Pose(bullet components.Vec3, progress, fov float32) Pose {
	d := o.Distance * (1 - o.Tighten*clamp01(progress))
	return Pose{
		Position: components.Vec3{
			X: bullet.X + math32.Sin(o.angle)*d,
			Y: bullet.Y + o.Height,
			Z: bullet.Z + math32.Cos(o.angle)*d,
		},
		Target: bullet,
		Up:     components.Vec3{Y: 1},
		FOV:    fov,
	}
}
