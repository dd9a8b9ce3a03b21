package game

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/playablehq/stagfall/config"
)

const frame = float32(1.0 / 60.0)

// e2eConfig loads the defaults with flat ground, so aim geometry in tests
// is exact.
func e2eConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Terrain.Amplitude = 0
	return cfg
}

type hookCounts struct {
	shots, hits, misses, completes int
	lastScore, finalScore          int
	hitSpecies                     []string
}

func countingHooks(c *hookCounts) Hooks {
	return Hooks{
		ShotFired:    func() { c.shots++ },
		Hit:          func(a ActorView, points int) { c.hits++; c.hitSpecies = append(c.hitSpecies, a.Species) },
		Miss:         func() { c.misses++ },
		ScoreChanged: func(s int) { c.lastScore = s },
		SessionComplete: func(s int) {
			c.completes++
			c.finalScore = s
		},
	}
}

func nearestAlive(g *Game) (ActorView, bool) {
	var best ActorView
	bestD := float32(math32.MaxFloat32)
	ok := false
	g.Each(func(v ActorView) {
		if !v.Alive {
			return
		}
		if d := v.AimPoint.Sub(g.rig.Position).Length(); d < bestD {
			best, bestD, ok = v, d, true
		}
	})
	return best, ok
}

func TestGame_FixedSpawnSessionCompletes(t *testing.T) {
	cfg := e2eConfig(t)
	cfg.SpawnPoints = []config.SpawnPointConfig{
		{Species: "deer", X: 4, Z: 16, HeadingDeg: 45},
		{Species: "bear", X: -6, Z: 14, HeadingDeg: 200},
	}
	cfg.Session.TerminationTarget = 0 // default to the list length
	cfg.Refresh()

	var counts hookCounts
	g, err := New(cfg, Options{Seed: 7, Hooks: countingHooks(&counts)})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	if g.AliveCount() != 1 {
		t.Fatalf("fixed mode starts with %d actors, want 1", g.AliveCount())
	}

	for i := 0; i < 60*120 && !g.Session().EndCardShown(); i++ {
		if v, ok := nearestAlive(g); ok && g.Phase() == PhaseIdle {
			g.rig.LookAt(v.AimPoint)
			g.Update(frame, Input{TriggerPressed: true, TriggerReleased: true})
			continue
		}
		g.Update(frame, Input{})
	}

	if counts.completes != 1 {
		t.Fatalf("session completed %d times, want exactly once", counts.completes)
	}
	if counts.hits != 2 || counts.misses != 0 {
		t.Fatalf("hits %d misses %d, want 2 and 0", counts.hits, counts.misses)
	}
	if len(counts.hitSpecies) != 2 || counts.hitSpecies[0] != "deer" || counts.hitSpecies[1] != "bear" {
		t.Fatalf("kill order %v, want the spawn list order [deer bear]", counts.hitSpecies)
	}
	if g.Session().Kills != 2 {
		t.Fatalf("kills = %d, want 2", g.Session().Kills)
	}
	if counts.finalScore != 35 {
		t.Fatalf("final score = %d, want deer 10 + bear 25 = 35", counts.finalScore)
	}
}

func TestGame_TriggerSpamFiresOnce(t *testing.T) {
	cfg := e2eConfig(t)
	cfg.SpawnPoints = []config.SpawnPointConfig{
		{Species: "deer", X: 0, Z: 18},
	}
	cfg.Session.TerminationTarget = 0
	cfg.Refresh()

	var counts hookCounts
	g, err := New(cfg, Options{Seed: 3, Hooks: countingHooks(&counts)})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}

	sawFlight := false
	for i := 0; i < 60*30 && !g.Session().EndCardShown(); i++ {
		if v, ok := nearestAlive(g); ok && g.Phase() == PhaseIdle {
			g.rig.LookAt(v.AimPoint)
		}
		// Hammer the trigger every single frame
		g.Update(frame, Input{TriggerPressed: true, TriggerReleased: true})
		if g.Phase() == PhaseInFlight {
			sawFlight = true
		}
	}

	if !sawFlight {
		t.Fatal("the engaged shot never entered flight")
	}
	if counts.shots != 1 {
		t.Fatalf("trigger spam produced %d shots, want 1", counts.shots)
	}
	if counts.hits != 1 || counts.completes != 1 {
		t.Fatalf("hits %d completes %d, want 1 and 1", counts.hits, counts.completes)
	}
	if got := g.collector.TotalShots(); got != 1 {
		t.Fatalf("telemetry recorded %d shots, want 1", got)
	}
}

func TestGame_MissPathNeverEntersFlight(t *testing.T) {
	cfg := e2eConfig(t)

	var counts hookCounts
	g, err := New(cfg, Options{Seed: 5, Hooks: countingHooks(&counts)})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}

	// Face away from the sector: nothing to lock
	g.rig.Yaw = math32.Pi
	g.Update(frame, Input{TriggerPressed: true, TriggerReleased: true})

	if counts.misses != 1 || counts.hits != 0 || counts.shots != 1 {
		t.Fatalf("after empty shot: shots %d hits %d misses %d, want 1, 0, 1", counts.shots, counts.hits, counts.misses)
	}
	if g.Phase() != PhaseCooldown {
		t.Fatalf("phase after miss = %v, want cooldown with no flight", g.Phase())
	}
	if g.Flight() != nil {
		t.Fatal("a miss must not start a flight")
	}
	if counts.lastScore != 0 || g.Session().Score != 0 {
		t.Fatalf("miss changed the score to %d", g.Session().Score)
	}

	// The short cooldown drains back to idle without ever entering flight
	for i := 0; i < 60 && g.Phase() != PhaseIdle; i++ {
		g.Update(frame, Input{})
		if g.Phase() == PhaseInFlight {
			t.Fatal("miss path entered flight")
		}
	}
	if g.Phase() != PhaseIdle {
		t.Fatal("miss cooldown never drained")
	}
	if g.Session().Terminal() {
		t.Fatal("misses must not end the session")
	}
}

func TestGame_PinnedTargetHoldsStillThenFalls(t *testing.T) {
	cfg := e2eConfig(t)
	cfg.SpawnPoints = []config.SpawnPointConfig{
		{Species: "deer", X: 2, Z: 20, HeadingDeg: 10},
	}
	cfg.Session.TerminationTarget = 0
	cfg.Refresh()

	g, err := New(cfg, Options{Seed: 11})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}

	v, _ := nearestAlive(g)
	g.rig.LookAt(v.AimPoint)
	g.Update(frame, Input{TriggerPressed: true, TriggerReleased: true})
	fl := g.Flight()
	if fl == nil {
		t.Fatal("expected an engaged flight")
	}

	pinned, _ := g.reg.View(fl.Target)
	for i := 0; i < 200 && g.Phase() == PhaseInFlight; i++ {
		g.Update(frame, Input{})
		if g.Phase() != PhaseInFlight {
			break
		}
		now, ok := g.reg.View(fl.Target)
		if !ok {
			t.Fatal("pinned target vanished mid-flight")
		}
		if now.Position != pinned.Position {
			t.Fatalf("pinned target moved from %+v to %+v", pinned.Position, now.Position)
		}
	}

	// Death tumble progresses to flat, then the carcass despawns
	dead, ok := g.reg.View(fl.Target)
	if !ok || dead.Alive {
		t.Fatal("target must be dead after the flight resolves")
	}
	maxFall := float32(0)
	for i := 0; i < 600; i++ {
		g.Update(frame, Input{})
		v, ok := g.reg.View(fl.Target)
		if !ok {
			break
		}
		if v.Falling > maxFall {
			maxFall = v.Falling
		}
	}
	if _, ok := g.reg.View(fl.Target); ok {
		t.Fatal("carcass never despawned")
	}
	if maxFall < 0.99 || maxFall > 1 {
		t.Fatalf("fall progress peaked at %g, want it to reach 1", maxFall)
	}
}

func TestGame_BulletTimeSlowsBystanders(t *testing.T) {
	cfg := e2eConfig(t)

	g, err := New(cfg, Options{Seed: 21})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}

	v, ok := nearestAlive(g)
	if !ok {
		t.Fatal("no actors spawned")
	}
	g.rig.LookAt(v.AimPoint)
	g.Update(frame, Input{TriggerPressed: true, TriggerReleased: true})
	if g.Phase() != PhaseInFlight {
		t.Fatalf("phase after aimed shot = %v, want in_flight", g.Phase())
	}
	targetID := g.Flight().TargetID

	var bystander ActorView
	found := false
	g.Each(func(a ActorView) {
		if a.Alive && a.ID != targetID && !found {
			bystander = a
			found = true
		}
	})
	if !found {
		t.Fatal("expected a bystander besides the target")
	}

	start := bystander.Position
	for i := 0; i < 200 && g.Phase() == PhaseInFlight; i++ {
		g.Update(frame, Input{})
	}

	var end ActorView
	g.Each(func(a ActorView) {
		if a.ID == bystander.ID {
			end = a
		}
	})
	drift := end.Position.Sub(start).Length()
	if drift <= 0 {
		t.Fatal("bystander froze entirely; only the target is pinned")
	}
	// A full flight at the default 0.08 scale allows at most ~0.5m even
	// for the fastest species; unscaled motion would cover well over 1m.
	if drift > 0.8 {
		t.Fatalf("bystander drifted %gm during bullet time, want a crawl", drift)
	}
}

func TestGame_HoldSchemeFiresOnRelease(t *testing.T) {
	cfg := e2eConfig(t)
	cfg.Aim.Scheme = "hold"
	cfg.SpawnPoints = []config.SpawnPointConfig{
		{Species: "bear", X: 0, Z: 16},
	}
	cfg.Session.TerminationTarget = 0
	cfg.Refresh()

	var counts hookCounts
	g, err := New(cfg, Options{Seed: 13, Hooks: countingHooks(&counts)})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}

	v, _ := nearestAlive(g)
	g.rig.LookAt(v.AimPoint)

	g.Update(frame, Input{TriggerPressed: true})
	if g.Phase() != PhaseAiming {
		t.Fatalf("phase after press = %v, want aiming", g.Phase())
	}
	if counts.shots != 0 {
		t.Fatal("hold scheme fired on press")
	}

	g.Update(frame, Input{}) // held
	if g.Phase() != PhaseAiming {
		t.Fatalf("phase while held = %v, want aiming", g.Phase())
	}

	g.Update(frame, Input{TriggerReleased: true})
	if counts.shots != 1 {
		t.Fatalf("shots after release = %d, want 1", counts.shots)
	}
	if g.Phase() != PhaseInFlight {
		t.Fatalf("phase after release = %v, want in_flight", g.Phase())
	}
}

func TestGame_AutopilotCompletesDefaultSession(t *testing.T) {
	cfg := e2eConfig(t)

	var counts hookCounts
	g, err := New(cfg, Options{Seed: 17, Hooks: countingHooks(&counts)})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	pilot := NewAutopilot(g, 99, 0)

	for i := 0; i < 60*180 && !g.Session().EndCardShown(); i++ {
		in := pilot.Step(frame)
		g.Update(frame, in)
	}

	if !g.Session().Terminal() {
		t.Fatalf("autopilot never finished: %d/%d kills after the frame budget",
			g.Session().Kills, g.Session().Target)
	}
	if counts.completes != 1 {
		t.Fatalf("session completed %d times, want exactly once", counts.completes)
	}
	if g.Session().Kills != cfg.Derived.KillTarget {
		t.Fatalf("kills = %d, want the target %d", g.Session().Kills, cfg.Derived.KillTarget)
	}
	if counts.hits != cfg.Derived.KillTarget {
		t.Fatalf("hit hooks = %d, want %d", counts.hits, cfg.Derived.KillTarget)
	}
	if counts.finalScore <= 0 || counts.finalScore != g.Session().Score {
		t.Fatalf("final score %d disagrees with session score %d", counts.finalScore, g.Session().Score)
	}
}

func TestGame_SpawnExhaustionHoldsState(t *testing.T) {
	cfg := e2eConfig(t)
	cfg.SpawnPoints = []config.SpawnPointConfig{
		{Species: "deer", X: 0, Z: 18},
	}
	cfg.Session.TerminationTarget = 2 // more kills than spawn points
	cfg.Refresh()

	var counts hookCounts
	g, err := New(cfg, Options{Seed: 23, Hooks: countingHooks(&counts)})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}

	for i := 0; i < 60*15; i++ {
		if v, ok := nearestAlive(g); ok && g.Phase() == PhaseIdle {
			g.rig.LookAt(v.AimPoint)
			g.Update(frame, Input{TriggerPressed: true, TriggerReleased: true})
			continue
		}
		g.Update(frame, Input{})
	}

	if counts.hits != 1 {
		t.Fatalf("hits = %d, want the single spawn point's 1", counts.hits)
	}
	if g.AliveCount() != 0 {
		t.Fatalf("alive count = %d after exhaustion, want 0", g.AliveCount())
	}
	if !g.spawnsExhausted {
		t.Fatal("exhaustion was never flagged")
	}
	if g.Session().Terminal() || counts.completes != 0 {
		t.Fatal("an exhausted session must hold state, not complete")
	}
}

func TestGame_FrameDtClamped(t *testing.T) {
	cfg := e2eConfig(t)
	g, err := New(cfg, Options{Seed: 1})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}

	g.Update(10, Input{}) // a resumed background tab
	if e := g.Elapsed(); e > float64(MaxFrameDt)+1e-6 {
		t.Fatalf("elapsed after a 10s frame = %g, want the %g clamp", e, MaxFrameDt)
	}

	before := g.Elapsed()
	g.Update(-1, Input{})
	if g.Elapsed() != before {
		t.Fatalf("negative dt advanced time from %g to %g", before, g.Elapsed())
	}
	if g.Tick() != 2 {
		t.Fatalf("tick = %d, want 2", g.Tick())
	}
}

func TestGame_DeterministicForSeed(t *testing.T) {
	run := func() [][4]float32 {
		cfg := e2eConfig(t)
		g, err := New(cfg, Options{Seed: 42})
		if err != nil {
			t.Fatalf("creating game: %v", err)
		}
		for i := 0; i < 600; i++ {
			g.Update(frame, Input{})
		}
		var out [][4]float32
		g.Each(func(v ActorView) {
			out = append(out, [4]float32{v.Position.X, v.Position.Y, v.Position.Z, v.Yaw})
		})
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("actor counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("actor %d diverged: %v vs %v", i, a[i], b[i])
		}
	}
}
