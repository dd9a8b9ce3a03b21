package game

import (
	"log/slog"

	"github.com/chewxy/math32"

	"github.com/playablehq/stagfall/components"
	"github.com/playablehq/stagfall/systems"
	"github.com/playablehq/stagfall/telemetry"
)

// Update runs one frame. dt is real seconds since the last frame; the
// bullet-time scale is applied internally, so callers always pass wall time.
func (g *Game) Update(dt float32, in Input) {
	if dt > MaxFrameDt {
		dt = MaxFrameDt
	}
	if dt < 0 {
		dt = 0
	}

	g.perf.StartTick()
	g.tick++
	g.elapsed += float64(dt)

	g.shake.Advance(dt)

	if g.machine.Phase() == PhaseInFlight {
		g.advanceFlight(dt)
	} else {
		g.advanceNormal(dt, in)
	}

	// Terminal delay, then the end card fires exactly once
	if g.session.TickTerminal(dt, g.cfg.Derived.CtaDelay) {
		slog.Info("session_complete",
			"score", g.session.Score,
			"kills", g.session.Kills,
			"shots", g.collector.TotalShots(),
		)
		if g.hooks.SessionComplete != nil {
			g.hooks.SessionComplete(g.session.Score)
		}
	}

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushWindowIfDue()
	g.perf.EndTick()
}

// advanceFlight runs a bullet-time frame: the world crawls, the flight
// clock runs at full speed, and a completed flight resolves exactly once.
func (g *Game) advanceFlight(dt float32) {
	fl := g.machine.Flight()

	g.perf.StartPhase(telemetry.PhaseMotion)
	g.advanceActors(dt, g.machine.TimeScale())

	g.perf.StartPhase(telemetry.PhaseShot)
	res := g.machine.Advance(dt, g.reg.Valid(fl.Target))
	if res != ResolveNone {
		g.resolveFlight(res, fl)
	}
}

// advanceNormal runs a regular frame: cooldown ticks first so a pull on
// the expiry frame fires, then aim, motion, targeting, assist, trigger.
func (g *Game) advanceNormal(dt float32, in Input) {
	g.perf.StartPhase(telemetry.PhaseShot)
	g.machine.Advance(dt, false)

	if in.AimDX != 0 || in.AimDY != 0 {
		g.rig.Aim(in.AimDX, in.AimDY)
	}

	g.perf.StartPhase(telemetry.PhaseMotion)
	g.advanceActors(dt, 1)

	g.perf.StartPhase(telemetry.PhaseTargeting)
	g.refreshLock()
	g.applyAssist(dt)

	g.perf.StartPhase(telemetry.PhaseShot)
	g.handleTrigger(in)
}

// refreshLock rebuilds the candidate list and resolves the crosshair ray
// against it. Dead and pinned actors never qualify.
func (g *Game) refreshLock() {
	g.candidates = g.candidates[:0]
	g.candEnts = g.candEnts[:0]

	query := g.reg.filter.Query()
	for query.Next() {
		pos, _, _, prof, life := query.Get()
		if !life.Alive || life.Pinned {
			continue
		}
		g.candidates = append(g.candidates, systems.Candidate{
			ID:        life.ID,
			AimPoint:  components.Vec3{X: pos.X, Y: pos.Y + prof.AimHeight, Z: pos.Z},
			HitRadius: prof.HitRadius,
		})
		g.candEnts = append(g.candEnts, query.Entity())
	}

	lock, ok := systems.ResolveTarget(g.rig.Ray(0, 0), g.cfg.Derived.HitMultiplier, g.candidates)
	g.locked = ok
	if ok {
		g.lock = lock
		g.lockEntity = g.candEnts[lock.Index]
	}
}

// applyAssist pulls the view toward the locked aim point. The pull is a
// framerate-independent exponential and only engages inside the assist
// cone; the next frame's raycast stays authoritative for what a shot hits.
func (g *Game) applyAssist(dt float32) {
	if !g.cfg.Aim.Assist.Enabled || !g.locked {
		return
	}

	offAngle := math32.Atan2(g.lock.Deviation, g.lock.Distance)
	if offAngle > g.cfg.Derived.AssistCone {
		return
	}

	aim := g.candidates[g.lock.Index].AimPoint
	to := aim.Sub(g.rig.Position)
	dist := to.Length()
	if dist <= 0 {
		return
	}

	desiredYaw := math32.Atan2(to.X, to.Z)
	desiredPitch := math32.Asin(clampFloat(to.Y/dist, -1, 1))

	k := 1 - math32.Exp(-float32(g.cfg.Aim.Assist.Strength)*dt)
	g.rig.Yaw = normalizeAngle(g.rig.Yaw + normalizeAngle(desiredYaw-g.rig.Yaw)*k)
	g.rig.Pitch = clampFloat(g.rig.Pitch+(desiredPitch-g.rig.Pitch)*k, g.rig.PitchMin, g.rig.PitchMax)
}
