package game

import (
	"testing"

	"github.com/playablehq/stagfall/components"
	"github.com/playablehq/stagfall/config"
)

func testMachine(t *testing.T) *ShotMachine {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return newShotMachine(cfg)
}

func testFlight() *Flight {
	return &Flight{
		TargetID: 1,
		Species:  "deer",
		Points:   10,
		Start:    components.Vec3{Y: 6},
		End:      components.Vec3{Y: 1, Z: 20},
		Distance: 20.6,
	}
}

func TestShotMachine_EngagedFlow(t *testing.T) {
	m := testMachine(t)
	dt := float32(1.0 / 60.0)

	if m.Phase() != PhaseIdle {
		t.Fatalf("fresh machine phase = %v, want idle", m.Phase())
	}
	if got := m.Fire(testFlight()); got != FireEngaged {
		t.Fatalf("Fire = %v, want engaged", got)
	}
	if m.Phase() != PhaseInFlight {
		t.Fatalf("phase after fire = %v, want in_flight", m.Phase())
	}
	if m.TimeScale() >= 1 {
		t.Fatalf("TimeScale during flight = %g, want the bullet-time scale", m.TimeScale())
	}

	// Run the flight out; the resolution must come exactly once
	resolutions := 0
	for i := 0; i < 200 && m.Phase() == PhaseInFlight; i++ {
		if res := m.Advance(dt, true); res != ResolveNone {
			if res != ResolveHit {
				t.Fatalf("resolution = %v, want hit", res)
			}
			resolutions++
		}
	}
	if resolutions != 1 {
		t.Fatalf("flight resolved %d times, want exactly 1", resolutions)
	}
	if m.Phase() != PhaseCooldown {
		t.Fatalf("phase after flight = %v, want cooldown", m.Phase())
	}
	if m.Flight() != nil {
		t.Fatal("flight must be cleared once resolved")
	}
	if m.TimeScale() != 1 {
		t.Fatalf("TimeScale after flight = %g, want 1", m.TimeScale())
	}

	for i := 0; i < 200 && m.Phase() == PhaseCooldown; i++ {
		m.Advance(dt, false)
	}
	if m.Phase() != PhaseIdle {
		t.Fatalf("phase after cooldown = %v, want idle", m.Phase())
	}
}

func TestShotMachine_MissSkipsFlight(t *testing.T) {
	m := testMachine(t)

	if got := m.Fire(nil); got != FireMiss {
		t.Fatalf("Fire(nil) = %v, want miss", got)
	}
	if m.Phase() != PhaseCooldown {
		t.Fatalf("phase after miss = %v, want cooldown with no flight", m.Phase())
	}
	if m.Flight() != nil {
		t.Fatal("a miss must not create a flight")
	}
	if m.cooldownTotal != m.missCooldown {
		t.Fatalf("miss cooldown = %g, want the short one %g", m.cooldownTotal, m.missCooldown)
	}
}

func TestShotMachine_SpamIgnored(t *testing.T) {
	m := testMachine(t)
	m.Fire(testFlight())
	fl := m.Flight()

	for i := 0; i < 30; i++ {
		if got := m.Fire(testFlight()); got != FireIgnored {
			t.Fatalf("Fire during flight = %v, want ignored", got)
		}
		if got := m.Fire(nil); got != FireIgnored {
			t.Fatalf("Fire(nil) during flight = %v, want ignored", got)
		}
		if m.BeginAim() {
			t.Fatal("BeginAim during flight must be refused")
		}
		m.Advance(1.0/60.0, true)
	}
	if m.Flight() != fl {
		t.Fatal("trigger spam replaced the active flight")
	}

	// Finish the flight, then spam through the cooldown
	for m.Phase() == PhaseInFlight {
		m.Advance(1.0/60.0, true)
	}
	if got := m.Fire(testFlight()); got != FireIgnored {
		t.Fatalf("Fire during cooldown = %v, want ignored", got)
	}
}

func TestShotMachine_TargetGoneResolvesAsMiss(t *testing.T) {
	m := testMachine(t)
	m.Fire(testFlight())

	var res Resolution
	for i := 0; i < 200 && m.Phase() == PhaseInFlight; i++ {
		if r := m.Advance(1.0/60.0, false); r != ResolveNone {
			res = r
		}
	}
	if res != ResolveTargetGone {
		t.Fatalf("resolution with dead target = %v, want target_gone", res)
	}
}

func TestShotMachine_HoldAim(t *testing.T) {
	m := testMachine(t)

	if !m.BeginAim() {
		t.Fatal("BeginAim from idle must succeed")
	}
	if m.Phase() != PhaseAiming {
		t.Fatalf("phase = %v, want aiming", m.Phase())
	}
	if m.BeginAim() {
		t.Fatal("BeginAim while already aiming must be refused")
	}
	if got := m.Fire(testFlight()); got != FireEngaged {
		t.Fatalf("Fire from aiming = %v, want engaged", got)
	}
}

func TestShotMachine_CooldownFraction(t *testing.T) {
	m := testMachine(t)

	if m.CooldownFraction() != 0 {
		t.Fatalf("idle cooldown fraction = %g, want 0", m.CooldownFraction())
	}
	m.Fire(nil)
	if f := m.CooldownFraction(); f != 1 {
		t.Fatalf("fraction at cooldown start = %g, want 1", f)
	}
	m.Advance(m.missCooldown/2, false)
	if f := m.CooldownFraction(); f < 0.45 || f > 0.55 {
		t.Fatalf("fraction at half cooldown = %g, want about 0.5", f)
	}
	m.Advance(m.missCooldown, false)
	if m.Phase() != PhaseIdle || m.CooldownFraction() != 0 {
		t.Fatalf("after full cooldown: phase %v fraction %g", m.Phase(), m.CooldownFraction())
	}
}

func TestShotMachine_ZeroCooldownGoesStraightToIdle(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Shot.MissCooldownMs = 0
	cfg.Refresh()

	m := newShotMachine(cfg)
	if got := m.Fire(nil); got != FireMiss {
		t.Fatalf("Fire(nil) = %v, want miss", got)
	}
	if m.Phase() != PhaseIdle {
		t.Fatalf("phase after zero cooldown = %v, want idle", m.Phase())
	}
}

func TestShotMachine_OrbitRateIndependentOfEasing(t *testing.T) {
	m := testMachine(t)
	m.Fire(testFlight())
	fl := m.Flight()

	// Two equal time slices of very different eased bullet progress must
	// produce the same orbit sweep.
	a0 := fl.Orbit.Angle()
	m.Advance(0.2, true)
	early := fl.Orbit.Angle() - a0

	m.Advance(1.0, true) // deep into the eased tail
	a1 := fl.Orbit.Angle()
	m.Advance(0.2, true)
	late := fl.Orbit.Angle() - a1

	if d := early - late; d > 1e-4 || d < -1e-4 {
		t.Fatalf("orbit sweep varies with progress: early %g late %g", early, late)
	}
}

func TestFlight_BulletTravelEasesOut(t *testing.T) {
	f := testFlight()
	f.Duration = 1.6

	if p := f.BulletAt(); p != f.Start {
		t.Fatalf("bullet at t=0 is %+v, want the muzzle %+v", p, f.Start)
	}

	f.Elapsed = f.Duration / 2
	mid := f.BulletAt()
	travel := mid.Sub(f.Start).Length()
	total := f.End.Sub(f.Start).Length()
	// Ease-out front-loads travel: half the time covers well over half
	// the distance (exactly 1 - 0.5^3 of it).
	if frac := travel / total; frac < 0.87 || frac > 0.88 {
		t.Fatalf("mid-flight travel fraction = %g, want 0.875", frac)
	}

	f.Elapsed = f.Duration
	if p := f.BulletAt(); p != f.End {
		t.Fatalf("bullet at t=end is %+v, want the aim point %+v", p, f.End)
	}
}
