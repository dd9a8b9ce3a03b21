package game

import (
	"log/slog"

	"github.com/playablehq/stagfall/telemetry"
)

// Input is one frame of player intent, already normalized by the platform
// layer: drag deltas in pixels, trigger edges as booleans. The game never
// reads the windowing library directly, so headless runs and tests drive
// the same path as a touch screen.
type Input struct {
	AimDX float32
	AimDY float32

	TriggerPressed  bool // edge: went down this frame
	TriggerReleased bool // edge: went up this frame
}

// handleTrigger maps trigger edges onto the shot machine according to the
// configured scheme. Tap fires on press; hold begins aiming on press and
// fires on release. Pulls in the wrong phase are silently ignored by the
// machine, which is what makes trigger spam free.
func (g *Game) handleTrigger(in Input) {
	if g.session.Terminal() {
		// The end card owns input once the session is over
		return
	}

	if g.cfg.Aim.Scheme == "hold" {
		if in.TriggerPressed {
			g.machine.BeginAim()
		}
		// Only a release that was actually aiming fires; a press swallowed
		// by a cooldown stays swallowed.
		if in.TriggerReleased && g.machine.Phase() == PhaseAiming {
			g.fire()
		}
		return
	}

	if in.TriggerPressed {
		g.fire()
	}
}

// fire pulls the trigger with whatever the crosshair last resolved.
func (g *Game) fire() {
	var target *Flight
	if g.locked {
		if view, ok := g.reg.View(g.lockEntity); ok {
			aim := g.candidates[g.lock.Index].AimPoint
			ray := g.rig.Ray(0, 0)
			target = &Flight{
				Target:    g.lockEntity,
				TargetID:  view.ID,
				Species:   view.Species,
				Points:    view.Points,
				Start:     ray.At(muzzleOffset),
				End:       aim,
				Distance:  g.lock.Distance,
				Deviation: g.lock.Deviation,
			}
		}
	}

	switch g.machine.Fire(target) {
	case FireIgnored:
		return

	case FireMiss:
		g.shake.Trigger()
		if g.hooks.ShotFired != nil {
			g.hooks.ShotFired()
		}
		if g.hooks.Miss != nil {
			g.hooks.Miss()
		}
		g.recordShot(telemetry.OutcomeMiss, nil)
		slog.Info("shot_missed", "tick", g.tick)

	case FireEngaged:
		g.shake.Trigger()
		// Freeze the quarry so the captured aim point stays true
		if life := g.reg.lifeMap.Get(g.lockEntity); life != nil {
			life.Pinned = true
		}
		if g.hooks.ShotFired != nil {
			g.hooks.ShotFired()
		}
		slog.Info("shot_fired",
			"tick", g.tick,
			"species", target.Species,
			"distance", target.Distance,
			"aim_error", target.Deviation,
		)
	}
}
