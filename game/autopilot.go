package game

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// Autopilot trigger discipline
const (
	// pilotTurnRate is the exponential approach rate toward the mark.
	pilotTurnRate = 9.0

	// pilotSettleTolerance is how close to the mark counts as settled.
	pilotSettleTolerance = 0.01 // radians

	// pilotSettleTime is the dwell on a settled sight before firing.
	pilotSettleTime = 0.12

	// pilotForceFireTime fires a settled sight even without a lock, so a
	// large aim error produces an honest miss instead of a stall.
	pilotForceFireTime = 1.2
)

// Autopilot plays a session without a player: it swings the rig toward the
// nearest live animal with a deliberate aim error, fires once the sight
// settles, and waits out flights and cooldowns. Headless runs and the tuner
// drive sessions through it, down the same Input path a touch screen uses.
type Autopilot struct {
	game *Game
	rng  *rand.Rand

	// AimError is the half-width of the angular error band injected into
	// every acquisition, in radians. Zero snipes; a few degrees misses
	// the way a thumb does.
	AimError float32

	targetID    uint32
	jitterYaw   float32
	jitterPitch float32
	settled     float32
}

// NewAutopilot creates a pilot for the given session. The pilot keeps its
// own rng so its errors never disturb the world's random sequence.
func NewAutopilot(g *Game, seed int64, aimError float32) *Autopilot {
	return &Autopilot{
		game:     g,
		rng:      rand.New(rand.NewSource(seed)),
		AimError: aimError,
	}
}

// Step produces one frame of synthetic input. Call it before Update with
// the same dt.
func (p *Autopilot) Step(dt float32) Input {
	g := p.game
	if g.session.Terminal() || g.machine.Phase() == PhaseInFlight {
		return Input{}
	}

	quarry, ok := p.acquire()
	if !ok {
		return Input{}
	}

	rig := g.rig
	to := quarry.AimPoint.Sub(rig.Position)
	dist := to.Length()
	if dist <= 0 {
		return Input{}
	}

	wantYaw := normalizeAngle(math32.Atan2(to.X, to.Z) + p.jitterYaw)
	wantPitch := clampFloat(
		math32.Asin(clampFloat(to.Y/dist, -1, 1))+p.jitterPitch,
		rig.PitchMin, rig.PitchMax,
	)

	errYaw := normalizeAngle(wantYaw - rig.Yaw)
	errPitch := wantPitch - rig.Pitch

	k := 1 - math32.Exp(-pilotTurnRate*dt)
	in := Input{
		AimDX: -errYaw * k / rig.SensX,
		AimDY: -errPitch * k / rig.SensY,
	}

	if math32.Abs(errYaw)+math32.Abs(errPitch) < pilotSettleTolerance {
		p.settled += dt
	} else {
		p.settled = 0
	}

	if g.machine.Phase() != PhaseIdle {
		return in
	}

	_, locked := g.CurrentLock()
	if (locked && p.settled >= pilotSettleTime) || p.settled >= pilotForceFireTime {
		// Press and release on the same frame satisfies both schemes
		in.TriggerPressed = true
		in.TriggerReleased = true
		p.rollJitter()
		p.settled = 0
	}
	return in
}

// acquire picks the nearest live animal and re-rolls the aim error when
// the pick changes.
func (p *Autopilot) acquire() (ActorView, bool) {
	var best ActorView
	bestDist := float32(math32.MaxFloat32)
	found := false

	p.game.reg.Each(func(v ActorView) {
		if !v.Alive {
			return
		}
		d := v.AimPoint.Sub(p.game.rig.Position).Length()
		if d < bestDist {
			best = v
			bestDist = d
			found = true
		}
	})

	if found && best.ID != p.targetID {
		p.targetID = best.ID
		p.rollJitter()
		p.settled = 0
	}
	return best, found
}

func (p *Autopilot) rollJitter() {
	p.jitterYaw = (p.rng.Float32()*2 - 1) * p.AimError
	p.jitterPitch = (p.rng.Float32()*2 - 1) * p.AimError
}
