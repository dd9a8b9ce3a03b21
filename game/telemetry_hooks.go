package game

import (
	"log/slog"

	"github.com/playablehq/stagfall/telemetry"
)

// recordShot books one trigger pull everywhere it lands: the window
// collector, shots.csv, and the highlight detector. fl is nil for a shot
// that never engaged a target.
func (g *Game) recordShot(outcome telemetry.Outcome, fl *Flight) {
	rec := telemetry.ShotRecord{
		Session:    g.session.ID.String(),
		Tick:       g.tick,
		TimeSec:    g.elapsed,
		Outcome:    outcome,
		ScoreAfter: g.session.Score,
	}
	if fl != nil {
		rec.Species = fl.Species
		rec.Points = fl.Points
		rec.Distance = fl.Distance
		rec.AimError = fl.Deviation
	}

	g.collector.Record(rec)
	if err := g.output.WriteShot(rec); err != nil {
		slog.Error("failed to write shot", "error", err)
	}

	for _, h := range g.highlights.Check(rec) {
		h.LogHighlight()
		if err := g.output.WriteHighlight(h); err != nil {
			slog.Error("failed to write highlight", "error", err)
		}
	}
}

// flushWindowIfDue closes the current stats window when its time is up and
// writes it out. Windows follow session time, so bullet time does not
// stretch them.
func (g *Game) flushWindowIfDue() {
	if !g.collector.ShouldFlush(g.elapsed) {
		return
	}

	stats := g.collector.Flush(g.elapsed, g.tick, g.reg.AliveCount())
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteWindow(stats); err != nil {
		slog.Error("failed to write window stats", "error", err)
	}
	if err := g.output.WritePerf(perfStats, g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Summary builds the lifetime aggregate for the session as it stands.
func (g *Game) Summary() telemetry.SessionSummary {
	return g.collector.Summary(
		g.session.ID.String(),
		g.seed,
		g.elapsed,
		g.tick,
		g.session.Score,
		g.session.Kills,
		g.session.Target,
		g.session.Terminal(),
	)
}

// Close ends the session: final highlights, the summary file, an optional
// world snapshot, and the CSV files. Safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true

	summary := g.Summary()
	summary.LogSummary()

	for _, h := range g.highlights.Finish(g.tick, g.elapsed, g.session.Terminal()) {
		h.LogHighlight()
		if err := g.output.WriteHighlight(h); err != nil {
			slog.Error("failed to write highlight", "error", err)
		}
	}

	if err := g.output.WriteSummary(summary); err != nil {
		slog.Error("failed to write summary", "error", err)
	}

	if g.snapshotDir != "" {
		path, err := telemetry.SaveSnapshot(g.snapshot(), g.snapshotDir)
		if err != nil {
			slog.Error("failed to save snapshot", "error", err)
		} else {
			slog.Info("snapshot saved", "path", path, "tick", g.tick)
		}
	}

	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// snapshot captures every actor for the end-of-run snapshot file.
func (g *Game) snapshot() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		Session: g.session.ID.String(),
		Seed:    g.seed,
		Tick:    g.tick,
		TimeSec: g.elapsed,
		Score:   g.session.Score,
		Kills:   g.session.Kills,
	}

	query := g.reg.filter.Query()
	for query.Next() {
		pos, head, wander, prof, life := query.Get()
		snap.Actors = append(snap.Actors, telemetry.ActorState{
			ID:      life.ID,
			Species: prof.Species,
			X:       pos.X,
			Y:       pos.Y,
			Z:       pos.Z,
			Yaw:     head.Angle,
			DirX:    wander.DirX,
			DirZ:    wander.DirZ,
			Speed:   wander.Speed,
			Alive:   life.Alive,
		})
	}

	return snap
}
