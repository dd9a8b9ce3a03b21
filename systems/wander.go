package systems

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/playablehq/stagfall/components"
)

const (
	// headingSmoothing is the per-frame turn fraction at the 60 fps
	// reference rate. Applied as 1-(1-k)^(dt*60) so turn speed does not
	// depend on frame rate.
	headingSmoothing = 0.12

	// steerHold is how long a boundary correction owns the travel
	// direction before random re-sampling may override it.
	steerHold = 1.2
)

// Bounds is the annulus sector actors are kept inside: a radial band
// [RadiusMin, RadiusMax] meters from the stand, intersected with a wedge
// HalfAngle radians either side of the stand's forward (+Z) axis.
type Bounds struct {
	StandX, StandZ       float32
	RadiusMin, RadiusMax float32
	HalfAngle            float32
	EdgeMargin           float32 // corrections begin this far inside the angular edge
}

// Contains reports whether a ground position is inside the playable sector.
func (b Bounds) Contains(x, z float32) bool {
	rx, rz := x-b.StandX, z-b.StandZ
	r := math32.Hypot(rx, rz)
	if r < b.RadiusMin || r > b.RadiusMax {
		return false
	}
	return math32.Abs(math32.Atan2(rx, rz)) <= b.HalfAngle
}

// AdvanceWander moves one live actor a single frame. dt is the already
// clamped frame delta; timeScale slows the world during bullet time.
// Callers skip pinned actors entirely so a flight target holds still.
//
// Order matters: the position integrates with the direction chosen on a
// previous frame, then timers run, and boundary corrections go last so
// they override a same-frame random re-sample.
func AdvanceWander(
	pos *components.Position,
	heading *components.Heading,
	w *components.Wander,
	prof *components.Profile,
	field *HeightField,
	b Bounds,
	rng *rand.Rand,
	dt, timeScale float32,
) {
	eff := dt * timeScale

	pos.X += w.DirX * w.Speed * eff
	pos.Z += w.DirZ * w.Speed * eff
	pos.Y = field.HeightAt(pos.X, pos.Z) + prof.RideHeight

	// Turn the body toward the travel direction
	target := math32.Atan2(w.DirX, w.DirZ)
	blend := 1 - math32.Pow(1-headingSmoothing, dt*60)
	heading.Angle = normalizeAngle(heading.Angle + normalizeAngle(target-heading.Angle)*blend)

	w.Retarget -= eff
	if w.Retarget <= 0 {
		randomizeCourse(w, prof, rng)
	}
	steerInsideBounds(pos, w, b)
}

// NewWander rolls the initial course for a freshly spawned actor, using the
// same distribution the re-sample uses.
func NewWander(prof *components.Profile, rng *rand.Rand) components.Wander {
	var w components.Wander
	randomizeCourse(&w, prof, rng)
	return w
}

// randomizeCourse picks a fresh uniform direction, a speed inside the
// species band, and the next re-sample delay.
func randomizeCourse(w *components.Wander, prof *components.Profile, rng *rand.Rand) {
	a := rng.Float32() * 2 * math32.Pi
	w.DirX = math32.Sin(a)
	w.DirZ = math32.Cos(a)
	w.Speed = prof.SpeedMin + rng.Float32()*(prof.SpeedMax-prof.SpeedMin)
	w.Retarget = prof.RetargetMin + rng.Float32()*(prof.RetargetMax-prof.RetargetMin)
}

// steerInsideBounds redirects an actor that left the radial band or came
// within the margin of the sector's angular edge. The correction aims at
// the middle of the band along the nearest in-sector bearing, so radial
// violations recover radially and angular ones swing back inside without
// the path ever cutting through the stand. It holds for steerHold seconds
// so the next random re-sample cannot immediately undo it.
func steerInsideBounds(pos *components.Position, w *components.Wander, b Bounds) {
	rx, rz := pos.X-b.StandX, pos.Z-b.StandZ
	r := math32.Hypot(rx, rz)
	theta := math32.Atan2(rx, rz)

	limit := b.HalfAngle - b.EdgeMargin
	outsideBand := r >= b.RadiusMax || r <= b.RadiusMin
	nearEdge := math32.Abs(theta) >= limit
	if !outsideBand && !nearEdge {
		return
	}

	bearing := clampFloat(theta, -limit, limit)
	mid := (b.RadiusMin + b.RadiusMax) / 2
	dx := b.StandX + math32.Sin(bearing)*mid - pos.X
	dz := b.StandZ + math32.Cos(bearing)*mid - pos.Z
	l := math32.Hypot(dx, dz)
	if l == 0 {
		return // already at the steering target
	}
	w.DirX = dx / l
	w.DirZ = dz / l
	if w.Retarget < steerHold {
		w.Retarget = steerHold
	}
}
