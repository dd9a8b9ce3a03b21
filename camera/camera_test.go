package camera

import (
	"math"
	"testing"

	"github.com/playablehq/stagfall/components"
)

func testRig() *Rig {
	return &Rig{
		Position: components.Vec3{X: 0, Y: 6, Z: 0},
		FOV:      55 * math.Pi / 180,
		Aspect:   16.0 / 9.0,
		SensX:    0.0035,
		SensY:    0.0030,
		PitchMin: -0.45,
		PitchMax: 0.20,
	}
}

func close3(a, b components.Vec3, eps float32) bool {
	return a.Sub(b).Length() <= eps
}

func TestRigForwardAtRest(t *testing.T) {
	r := testRig()
	f := r.Forward()
	if !close3(f, components.Vec3{Z: 1}, 1e-6) {
		t.Errorf("forward at rest = %+v, want +Z", f)
	}
}

func TestRigRayCenterMatchesForward(t *testing.T) {
	r := testRig()
	r.Yaw = 0.3
	r.Pitch = -0.1

	ray := r.Ray(0, 0)
	if ray.Origin != r.Position {
		t.Errorf("ray origin %+v, want rig position %+v", ray.Origin, r.Position)
	}
	if !close3(ray.Dir, r.Forward(), 1e-5) {
		t.Errorf("center ray dir %+v, want forward %+v", ray.Dir, r.Forward())
	}
}

func TestRigRayOffsetLeansRight(t *testing.T) {
	r := testRig()
	ray := r.Ray(0.5, 0)
	if d := ray.Dir.Dot(r.Right()); d <= 0 {
		t.Errorf("ray with +x offset should lean toward screen right, dot = %g", d)
	}
	if l := ray.Dir.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("ray dir length %g, want unit", l)
	}
}

func TestRigAimDragRight(t *testing.T) {
	r := testRig()
	before := r.Right()
	r.Aim(200, 0)
	if d := r.Forward().Dot(before); d <= 0 {
		t.Errorf("right drag should swing the view toward screen right, dot = %g", d)
	}
}

func TestRigPitchClamped(t *testing.T) {
	r := testRig()
	r.Aim(0, 1e6) // enormous downward drag
	if r.Pitch != r.PitchMin {
		t.Errorf("pitch = %g, want clamped to %g", r.Pitch, r.PitchMin)
	}
	r.Aim(0, -1e6)
	if r.Pitch != r.PitchMax {
		t.Errorf("pitch = %g, want clamped to %g", r.Pitch, r.PitchMax)
	}
}

func TestRigLookAt(t *testing.T) {
	r := testRig()
	p := components.Vec3{X: 5, Y: 6.5, Z: 20}
	r.LookAt(p)

	want := p.Sub(r.Position).Normalize()
	if !close3(r.Forward(), want, 1e-4) {
		t.Errorf("forward after LookAt = %+v, want %+v", r.Forward(), want)
	}
}

// ---------- bullet-time orbit ----------

func TestOrbitConstantRate(t *testing.T) {
	o := Orbit{Distance: 2, Height: 1, Rate: 1.5}
	o.Advance(0.25)
	o.Advance(0.5)
	if got, want := o.Angle(), float32(1.5*0.75); math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("orbit angle = %g, want %g", got, want)
	}
}

func TestOrbitPoseCirclesBullet(t *testing.T) {
	o := Orbit{Distance: 2, Height: 1, Rate: 2}
	bullet := components.Vec3{X: 3, Y: 5, Z: -7}

	for i := 0; i < 10; i++ {
		o.Advance(0.1)
		pose := o.Pose(bullet, 0, 1)
		if pose.Target != bullet {
			t.Fatalf("orbit must look at the bullet, target = %+v", pose.Target)
		}
		dx := pose.Position.X - bullet.X
		dz := pose.Position.Z - bullet.Z
		horiz := math.Hypot(float64(dx), float64(dz))
		if math.Abs(horiz-2) > 1e-4 {
			t.Fatalf("horizontal orbit distance = %g, want 2", horiz)
		}
		if dy := pose.Position.Y - bullet.Y; math.Abs(float64(dy)-1) > 1e-4 {
			t.Fatalf("orbit height = %g, want 1", dy)
		}
	}
}

func TestOrbitTightensWithProgress(t *testing.T) {
	o := Orbit{Distance: 2, Height: 0, Rate: 0, Tighten: 0.4}
	bullet := components.Vec3{}

	pose := o.Pose(bullet, 1, 1)
	horiz := math.Hypot(float64(pose.Position.X), float64(pose.Position.Z))
	if math.Abs(horiz-1.2) > 1e-4 {
		t.Errorf("tightened distance = %g, want 1.2", horiz)
	}

	// Progress beyond 1 must not tighten further
	pose = o.Pose(bullet, 3, 1)
	horiz = math.Hypot(float64(pose.Position.X), float64(pose.Position.Z))
	if math.Abs(horiz-1.2) > 1e-4 {
		t.Errorf("over-progress distance = %g, want clamped 1.2", horiz)
	}
}

// ---------- recoil shake ----------

func TestShakeIdleIsZero(t *testing.T) {
	s := Shake{Amplitude: 0.2, Duration: 0.4, Frequency: 9}
	if s.Active() {
		t.Error("shake should start inactive")
	}
	if off := s.Offset(); off != (components.Vec3{}) {
		t.Errorf("idle offset = %+v, want zero", off)
	}
}

func TestShakeDecaysAndExpires(t *testing.T) {
	s := Shake{Amplitude: 0.2, Duration: 0.4, Frequency: 9}
	s.Trigger()
	if !s.Active() {
		t.Fatal("shake should be active after trigger")
	}

	for i := 0; i < 120; i++ {
		s.Advance(1.0 / 60.0)
		off := s.Offset()
		if l := off.Length(); l > 0.2*1.42 {
			t.Fatalf("offset magnitude %g exceeds amplitude envelope", l)
		}
	}
	if s.Active() {
		t.Error("shake still active after the window elapsed")
	}
	if off := s.Offset(); off != (components.Vec3{}) {
		t.Errorf("expired offset = %+v, want zero", off)
	}
}

func TestShakeApplyDisplacesPositionOnly(t *testing.T) {
	s := Shake{Amplitude: 0.2, Duration: 0.4, Frequency: 9}
	s.Trigger()
	s.Advance(0.05)

	in := Pose{Position: components.Vec3{X: 1}, Target: components.Vec3{Z: 5}}
	out := s.Apply(in)
	if out.Target != in.Target {
		t.Errorf("shake must not move the look target, got %+v", out.Target)
	}
	if out.Position == in.Position {
		t.Error("shake should displace the camera position mid-window")
	}
}
