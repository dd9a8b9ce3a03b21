package game

import (
	"github.com/chewxy/math32"
	"github.com/mlange-42/ark/ecs"

	"github.com/playablehq/stagfall/camera"
	"github.com/playablehq/stagfall/components"
	"github.com/playablehq/stagfall/config"
)

// Phase enumerates the shot state machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAiming
	PhaseInFlight
	PhaseCooldown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAiming:
		return "aiming"
	case PhaseInFlight:
		return "in_flight"
	case PhaseCooldown:
		return "cooldown"
	}
	return "unknown"
}

// FireResult is what pulling the trigger produced.
type FireResult uint8

const (
	FireIgnored FireResult = iota // wrong phase; trigger spam lands here
	FireMiss                      // nothing locked, straight to the short cooldown
	FireEngaged                   // bullet-time flight began
)

// Resolution is the outcome of a flight reaching its target point.
type Resolution uint8

const (
	ResolveNone       Resolution = iota
	ResolveHit                   // target was still alive at arrival
	ResolveTargetGone            // target died mid-flight; scored as a miss
)

// Flight is one bullet-time shot session: the bullet's eased travel from
// the muzzle to the aim point captured at fire time. The target is pinned
// for the duration, so the captured end point stays true.
type Flight struct {
	Target    ecs.Entity
	TargetID  uint32
	Species   string
	Points    int
	Start     components.Vec3
	End       components.Vec3
	Distance  float32 // meters from muzzle to aim point at fire time
	Deviation float32 // perpendicular aim error at fire time, for telemetry
	Duration  float32
	Elapsed   float32
	Orbit     camera.Orbit
}

// Progress returns the flight's time fraction in [0, 1].
func (f *Flight) Progress() float32 {
	if f.Duration <= 0 {
		return 1
	}
	p := f.Elapsed / f.Duration
	if p > 1 {
		return 1
	}
	return p
}

// BulletAt returns the bullet's current world position. Travel eases out,
// decelerating into the impact while the orbit keeps its own constant pace.
func (f *Flight) BulletAt() components.Vec3 {
	return f.Start.Lerp(f.End, easeOutCubic(f.Progress()))
}

// TravelFraction returns the eased distance fraction covered so far, for
// renderers that place trail effects along the bullet's path.
func (f *Flight) TravelFraction() float32 {
	return easeOutCubic(f.Progress())
}

func easeOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// ShotMachine sequences Idle -> Aiming -> InFlight -> Cooldown. Every
// transition lives here; the game loop only feeds it frames and trigger
// pulls, so the no-reentry and spam rules hold by construction.
type ShotMachine struct {
	phase         Phase
	flight        *Flight
	cooldown      float32
	cooldownTotal float32

	bulletTime   float32
	bulletScale  float32
	hitCooldown  float32
	missCooldown float32
	orbit        camera.Orbit // per-flight template
}

func newShotMachine(cfg *config.Config) *ShotMachine {
	return &ShotMachine{
		bulletTime:   cfg.Derived.BulletTime,
		bulletScale:  cfg.Derived.BulletScale,
		hitCooldown:  cfg.Derived.Cooldown,
		missCooldown: cfg.Derived.MissCooldown,
		orbit: camera.Orbit{
			Distance: float32(cfg.Shot.Orbit.Distance),
			Height:   float32(cfg.Shot.Orbit.Height),
			Rate:     cfg.Derived.OrbitRate,
			Tighten:  float32(cfg.Shot.Orbit.Tighten),
		},
	}
}

// Phase returns the current machine phase.
func (m *ShotMachine) Phase() Phase {
	return m.phase
}

// Flight returns the active flight, or nil outside InFlight.
func (m *ShotMachine) Flight() *Flight {
	return m.flight
}

// TimeScale returns the factor the rest of the world should advance at:
// the bullet-time scale while a flight runs, 1 otherwise.
func (m *ShotMachine) TimeScale() float32 {
	if m.phase == PhaseInFlight {
		return m.bulletScale
	}
	return 1
}

// CooldownFraction returns how much of the current cooldown remains, in
// [0, 1], for the HUD. Zero outside Cooldown.
func (m *ShotMachine) CooldownFraction() float32 {
	if m.phase != PhaseCooldown || m.cooldownTotal <= 0 {
		return 0
	}
	return m.cooldown / m.cooldownTotal
}

// BeginAim enters the Aiming phase for the hold-to-aim scheme. Only valid
// from Idle; anything else reports false and changes nothing.
func (m *ShotMachine) BeginAim() bool {
	if m.phase != PhaseIdle {
		return false
	}
	m.phase = PhaseAiming
	return true
}

// Fire pulls the trigger. Idle and Aiming accept it; during InFlight or
// Cooldown the pull is silently ignored. A nil target is an immediate miss
// and skips straight to the shorter miss cooldown with no flight.
func (m *ShotMachine) Fire(target *Flight) FireResult {
	if m.phase != PhaseIdle && m.phase != PhaseAiming {
		return FireIgnored
	}
	if target == nil {
		m.enterCooldown(m.missCooldown)
		return FireMiss
	}

	f := *target
	f.Duration = m.bulletTime
	f.Elapsed = 0
	f.Orbit = m.orbit
	// Open the orbit broadside to the bullet's path
	travel := f.End.Sub(f.Start)
	f.Orbit.Align(math32.Atan2(travel.X, travel.Z) + math32.Pi/2)

	m.flight = &f
	m.phase = PhaseInFlight
	return FireEngaged
}

// Advance runs the machine one frame of real, unscaled time. The flight
// clock deliberately ignores the bullet-time scale: the cinematic runs at
// full speed while the world crawls. When a flight completes this frame it
// returns the resolution exactly once, using targetAlive to decide between
// a hit and the defensive dead-target miss.
func (m *ShotMachine) Advance(dt float32, targetAlive bool) Resolution {
	switch m.phase {
	case PhaseInFlight:
		m.flight.Elapsed += dt
		m.flight.Orbit.Advance(dt)
		if m.flight.Elapsed < m.flight.Duration {
			return ResolveNone
		}
		m.flight = nil
		m.enterCooldown(m.hitCooldown)
		if targetAlive {
			return ResolveHit
		}
		return ResolveTargetGone

	case PhaseCooldown:
		m.cooldown -= dt
		if m.cooldown <= 0 {
			m.phase = PhaseIdle
		}
	}
	return ResolveNone
}

func (m *ShotMachine) enterCooldown(d float32) {
	m.phase = PhaseCooldown
	m.cooldown = d
	m.cooldownTotal = d
	if d <= 0 {
		m.phase = PhaseIdle
	}
}
