package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/playablehq/stagfall/systems"
	"github.com/playablehq/stagfall/telemetry"
)

// advanceActors runs one motion frame. Live actors wander at the given time
// scale, the pinned quarry holds still, dead actors play their tumble and
// count down to removal. Structural changes are collected during the query
// and applied after it ends; mutating archetypes mid-iteration is not safe.
func (g *Game) advanceActors(dt, timeScale float32) {
	var despawned []ecs.Entity

	query := g.reg.filter.Query()
	for query.Next() {
		pos, head, wander, prof, life := query.Get()

		if life.Alive {
			if life.Pinned {
				continue
			}
			systems.AdvanceWander(pos, head, wander, prof, g.field, g.bounds, g.rng, dt, timeScale)
			continue
		}

		scaled := dt * timeScale
		life.Falling += scaled / fallDuration
		if life.Falling > 1 {
			life.Falling = 1
		}
		life.Despawn -= scaled
		if life.Despawn <= 0 {
			despawned = append(despawned, query.Entity())
		}
	}

	if len(despawned) == 0 {
		return
	}
	for _, e := range despawned {
		g.reg.Remove(e)
	}
	g.refill()
}

// refill replaces cleared carcasses: the next entry of the spawn list in
// fixed mode, a top-up back to the configured population otherwise. A
// terminal session stays as it is; the end card needs no more animals.
func (g *Game) refill() {
	if g.session.Terminal() {
		return
	}

	if g.spawner.Fixed() {
		if _, ok := g.spawner.SpawnFixed(g.reg, g.session.Kills); !ok {
			if !g.spawnsExhausted {
				g.spawnsExhausted = true
				slog.Warn("spawn_points_exhausted",
					"kills", g.session.Kills,
					"spawn_points", len(g.cfg.SpawnPoints),
				)
			}
			return
		}
		return
	}

	for g.reg.AliveCount() < g.cfg.Population.Initial {
		g.spawner.SpawnRandom(g.reg)
	}
}

// resolveFlight applies a completed flight's outcome: scoring, hooks,
// telemetry, and the target's death sequence on a hit; a defensive miss
// when the target vanished mid-flight.
func (g *Game) resolveFlight(res Resolution, fl *Flight) {
	switch res {
	case ResolveHit:
		g.reg.MarkDead(fl.Target)
		if life := g.reg.lifeMap.Get(fl.Target); life != nil {
			life.Pinned = false
			life.Despawn = g.cfg.Derived.RespawnDelay
		}
		reached := g.session.RecordKill(fl.Points)

		view, _ := g.reg.View(fl.Target)
		if g.hooks.Hit != nil {
			g.hooks.Hit(view, fl.Points)
		}
		if g.hooks.ScoreChanged != nil {
			g.hooks.ScoreChanged(g.session.Score)
		}
		g.recordShot(telemetry.OutcomeHit, fl)
		slog.Info("hit_confirmed",
			"tick", g.tick,
			"species", fl.Species,
			"points", fl.Points,
			"score", g.session.Score,
			"kills", g.session.Kills,
		)
		if reached {
			slog.Info("kill_target_reached", "kills", g.session.Kills, "score", g.session.Score)
		}

	case ResolveTargetGone:
		// Should not happen while flights pin their target; kept so a
		// future despawn path cannot award points for a gone animal.
		slog.Warn("flight_target_gone", "tick", g.tick, "species", fl.Species)
		if g.hooks.Miss != nil {
			g.hooks.Miss()
		}
		g.recordShot(telemetry.OutcomeTargetGone, fl)
	}
}
