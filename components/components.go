// Package components defines ECS components for hunt actors.
package components

// Position represents an actor's world position in meters.
// Y is resolved against the terrain height field every frame.
type Position struct {
	X, Y, Z float32
}

// Heading represents an actor's facing yaw around +Y, in radians.
// It is smoothed toward the wander direction rather than snapped.
type Heading struct {
	Angle float32
}

// Wander drives the random-walk motion model.
type Wander struct {
	DirX, DirZ float32 // unit ground-plane travel direction
	Speed      float32 // meters per second
	Retarget   float32 // seconds until direction and speed re-sample
}

// Profile holds the species values resolved from config at spawn time.
// Keeping them on the actor means a live config reload never mutates
// animals already in the field.
type Profile struct {
	Species     string
	Points      int
	HitRadius   float32 // meters, before the forgiveness multiplier
	SpeedMin    float32
	SpeedMax    float32
	RetargetMin float32 // seconds
	RetargetMax float32
	RideHeight  float32 // body origin offset above terrain
	AimHeight   float32 // aim point offset above body origin
}

// Life tracks actor lifecycle state.
type Life struct {
	ID      uint32
	Alive   bool
	Pinned  bool    // frozen while a bullet-time flight resolves against it
	Falling float32 // death tumble progress, 0 (upright) to 1 (down)
	Despawn float32 // seconds until removal once dead
}
