package systems

import (
	"math"
	"testing"

	"github.com/playablehq/stagfall/components"
)

func lookDownNegZ() Ray {
	return Ray{
		Origin: components.Vec3{X: 0, Y: 0, Z: 0},
		Dir:    components.Vec3{X: 0, Y: 0, Z: -1},
	}
}

func TestResolveTarget_ForgivingRadiusHit(t *testing.T) {
	// Aim point 0.8m off the ray axis, radius 1.0 with multiplier 2.0:
	// forgiveness makes this a lock even though the ray misses the body.
	cands := []Candidate{
		{ID: 1, AimPoint: components.Vec3{X: 0, Y: 0.8, Z: -10}, HitRadius: 1.0},
	}
	lock, ok := ResolveTarget(lookDownNegZ(), 2.0, cands)
	if !ok {
		t.Fatal("expected a lock within the forgiving radius")
	}
	if lock.ID != 1 || lock.Index != 0 {
		t.Errorf("locked wrong candidate: %+v", lock)
	}
	if math.Abs(float64(lock.Distance-10)) > 1e-4 {
		t.Errorf("distance = %g, want 10", lock.Distance)
	}
	if math.Abs(float64(lock.Deviation-0.8)) > 1e-4 {
		t.Errorf("deviation = %g, want 0.8", lock.Deviation)
	}
}

func TestResolveTarget_RotatedAwayMisses(t *testing.T) {
	cands := []Candidate{
		{ID: 1, AimPoint: components.Vec3{X: 0, Y: 0.8, Z: -10}, HitRadius: 1.0},
	}
	ray := Ray{Origin: components.Vec3{}, Dir: components.Vec3{X: 1, Y: 0, Z: 0}}
	if _, ok := ResolveTarget(ray, 2.0, cands); ok {
		t.Error("camera rotated 90 degrees away should resolve nothing")
	}
}

func TestResolveTarget_NearestWins(t *testing.T) {
	// The far candidate has a huge radius, the near one barely qualifies.
	// Proximity to the camera decides, not radius.
	cands := []Candidate{
		{ID: 1, AimPoint: components.Vec3{X: 0.9, Y: 0, Z: -30}, HitRadius: 5.0},
		{ID: 2, AimPoint: components.Vec3{X: 0.9, Y: 0, Z: -8}, HitRadius: 0.5},
	}
	lock, ok := ResolveTarget(lookDownNegZ(), 2.0, cands)
	if !ok {
		t.Fatal("expected a lock")
	}
	if lock.ID != 2 {
		t.Errorf("locked ID %d, want nearest candidate 2", lock.ID)
	}
}

func TestResolveTarget_BehindOriginRejected(t *testing.T) {
	cands := []Candidate{
		{ID: 1, AimPoint: components.Vec3{X: 0, Y: 0, Z: 10}, HitRadius: 50},
	}
	if _, ok := ResolveTarget(lookDownNegZ(), 2.0, cands); ok {
		t.Error("candidate behind the ray origin must never resolve")
	}
}

func TestResolveTarget_OutsideReachMisses(t *testing.T) {
	cands := []Candidate{
		{ID: 1, AimPoint: components.Vec3{X: 2.01, Y: 0, Z: -10}, HitRadius: 1.0},
	}
	if _, ok := ResolveTarget(lookDownNegZ(), 2.0, cands); ok {
		t.Error("aim point just outside radius*multiplier should miss")
	}
}

func TestResolveTarget_EmptyCandidates(t *testing.T) {
	if _, ok := ResolveTarget(lookDownNegZ(), 2.0, nil); ok {
		t.Error("no candidates should resolve nothing")
	}
}

func TestResolveTarget_ThroughPointZeroDeviation(t *testing.T) {
	cands := []Candidate{
		{ID: 1, AimPoint: components.Vec3{X: 0, Y: 0, Z: -12.5}, HitRadius: 0.4},
	}
	lock, ok := ResolveTarget(lookDownNegZ(), 1.0, cands)
	if !ok {
		t.Fatal("dead-center aim should lock")
	}
	if lock.Deviation != 0 {
		t.Errorf("deviation = %g, want exactly 0", lock.Deviation)
	}
}
