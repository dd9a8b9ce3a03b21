package systems

import (
	"github.com/chewxy/math32"

	"github.com/playablehq/stagfall/components"
)

// Ray is a world-space aim ray. Dir must be unit length.
type Ray struct {
	Origin components.Vec3
	Dir    components.Vec3
}

// At returns the point t meters along the ray.
func (r Ray) At(t float32) components.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Candidate is one live actor offered to the target resolver.
type Candidate struct {
	ID        uint32
	AimPoint  components.Vec3
	HitRadius float32
}

// Lock describes the actor a ray resolved onto.
type Lock struct {
	Index     int     // position in the candidate slice
	ID        uint32
	Distance  float32 // meters from the ray origin to the aim point, along the ray
	Deviation float32 // perpendicular miss distance of the ray from the aim point
}

// ResolveTarget projects each candidate's aim point onto the ray and keeps
// those whose perpendicular distance is within the forgiving radius
// (HitRadius * multiplier). Candidates behind the origin never qualify.
// Among qualifiers the one nearest the origin wins, so a small animal in
// front is never stolen by a large one behind it.
//
// The zero ray direction resolves nothing.
func ResolveTarget(ray Ray, multiplier float32, candidates []Candidate) (Lock, bool) {
	best := Lock{Index: -1}
	found := false

	for i, c := range candidates {
		to := c.AimPoint.Sub(ray.Origin)
		t := to.Dot(ray.Dir)
		if t <= 0 {
			continue
		}
		perpSq := to.Dot(to) - t*t
		if perpSq < 0 {
			perpSq = 0 // numeric guard when the ray passes through the point
		}
		reach := c.HitRadius * multiplier
		if perpSq > reach*reach {
			continue
		}
		if !found || t < best.Distance {
			best = Lock{Index: i, ID: c.ID, Distance: t, Deviation: math32.Sqrt(perpSq)}
			found = true
		}
	}
	return best, found
}
