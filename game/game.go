// Package game owns one hunting session: the actor registry, wander motion,
// aim resolution, the shot state machine, scoring, and telemetry. One Update
// call is one frame; rendering and input sampling live with the caller.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/mlange-42/ark/ecs"

	"github.com/playablehq/stagfall/camera"
	"github.com/playablehq/stagfall/components"
	"github.com/playablehq/stagfall/config"
	"github.com/playablehq/stagfall/systems"
	"github.com/playablehq/stagfall/telemetry"
)

// Frame constants
const (
	// MaxFrameDt caps a frame delta so a backgrounded tab cannot teleport
	// actors or swallow a whole cooldown when it resumes.
	MaxFrameDt = 0.1

	// fallDuration is the death tumble length in seconds.
	fallDuration = 1.2

	// muzzleOffset pushes the tracer start out of the near plane.
	muzzleOffset = 0.6
)

// longShotFraction of the outer spawn radius qualifies a hit as a
// long-shot highlight.
const longShotFraction = 0.85

// normalizeAngle wraps angle to [-pi, pi].
func normalizeAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a < -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}

// Game holds the complete session state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	reg     *Registry
	spawner *Spawner
	field   *systems.HeightField
	bounds  systems.Bounds

	rig     *camera.Rig
	shake   *camera.Shake
	machine *ShotMachine
	session *Session
	hooks   Hooks

	collector  *telemetry.Collector
	highlights *telemetry.HighlightDetector
	output     *telemetry.OutputManager
	perf       *telemetry.PerfCollector

	logStats    bool
	snapshotDir string
	seed        int64

	// Crosshair state, refreshed every non-flight frame
	lock       systems.Lock
	lockEntity ecs.Entity
	locked     bool
	candidates []systems.Candidate
	candEnts   []ecs.Entity

	spawnsExhausted bool

	tick    int64
	elapsed float64
	closed  bool
}

// Options configure a session beyond what config carries.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 uses the config window
	SnapshotDir    string  // end-of-session world snapshot, empty disables
	OutputDir      string  // CSV/JSON run output, empty disables
	Hooks          Hooks
}

// NewGameWithOptions creates a session from the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	return New(config.Cfg(), opts)
}

// New creates a session from an explicit config. The config is snapshotted,
// so later edits to the caller's copy do not leak into a running session.
func New(cfg *config.Config, opts Options) (*Game, error) {
	cfg = cfg.Snapshot()

	rng := rand.New(rand.NewSource(opts.Seed))
	field := systems.NewHeightField(opts.Seed, cfg.Terrain)

	bounds := systems.Bounds{
		StandX:     float32(cfg.Stand.X),
		StandZ:     float32(cfg.Stand.Z),
		RadiusMin:  float32(cfg.SpawnRadius.Min),
		RadiusMax:  float32(cfg.SpawnRadius.Max),
		HalfAngle:  cfg.Derived.HalfAngle,
		EdgeMargin: cfg.Derived.EdgeMargin,
	}

	reg := NewRegistry()
	spawner := newSpawner(cfg, field, rng, bounds)

	windowSec := cfg.Telemetry.WindowSec
	if opts.StatsWindowSec > 0 {
		windowSec = opts.StatsWindowSec
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	standX := float32(cfg.Stand.X)
	standZ := float32(cfg.Stand.Z)
	standY := field.HeightAt(standX, standZ) + float32(cfg.Stand.Height)

	rig := &camera.Rig{
		Position: components.Vec3{X: standX, Y: standY, Z: standZ},
		FOV:      cfg.Derived.FOV,
		Aspect:   float32(cfg.Screen.Width) / float32(cfg.Screen.Height),
		SensX:    float32(cfg.Aim.SensitivityX),
		SensY:    float32(cfg.Aim.SensitivityY),
		PitchMin: cfg.Derived.PitchMin,
		PitchMax: cfg.Derived.PitchMax,
	}

	shake := &camera.Shake{
		Amplitude: float32(cfg.Shake.Amplitude),
		Duration:  cfg.Derived.ShakeDuration,
		Frequency: float32(cfg.Shake.Frequency),
	}

	g := &Game{
		cfg:         cfg,
		rng:         rng,
		reg:         reg,
		spawner:     spawner,
		field:       field,
		bounds:      bounds,
		rig:         rig,
		shake:       shake,
		machine:     newShotMachine(cfg),
		session:     newSession(cfg.Derived.KillTarget),
		hooks:       opts.Hooks,
		collector:   telemetry.NewCollector(windowSec),
		highlights:  telemetry.NewHighlightDetector(float32(cfg.SpawnRadius.Max)*longShotFraction, 3),
		output:      output,
		perf:        telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		logStats:    opts.LogStats,
		snapshotDir: opts.SnapshotDir,
		seed:        opts.Seed,
	}

	g.spawnInitialPopulation()

	mode := "random"
	if g.spawner.Fixed() {
		mode = "fixed"
	}
	slog.Info("session_started",
		"session", g.session.ID.String(),
		"seed", opts.Seed,
		"kill_target", g.session.Target,
		"spawn_mode", mode,
		"actors", g.reg.AliveCount(),
	)

	return g, nil
}

// spawnInitialPopulation places the opening actors: the first entry of the
// spawn list, or the configured population of weighted-random actors.
func (g *Game) spawnInitialPopulation() {
	if g.spawner.Fixed() {
		g.spawner.SpawnFixed(g.reg, 0)
		return
	}
	for i := 0; i < g.cfg.Population.Initial; i++ {
		g.spawner.SpawnRandom(g.reg)
	}
}

// Session returns the live session record.
func (g *Game) Session() *Session {
	return g.session
}

// Phase returns the shot machine phase.
func (g *Game) Phase() Phase {
	return g.machine.Phase()
}

// CooldownFraction returns the remaining cooldown in [0, 1] for the HUD.
func (g *Game) CooldownFraction() float32 {
	return g.machine.CooldownFraction()
}

// Flight returns the active bullet-time flight, or nil.
func (g *Game) Flight() *Flight {
	return g.machine.Flight()
}

// CurrentLock returns the actor under the crosshair, if any.
func (g *Game) CurrentLock() (ActorView, bool) {
	if !g.locked {
		return ActorView{}, false
	}
	return g.reg.View(g.lockEntity)
}

// CameraPose returns this frame's camera: the orbit cinematic during a
// flight, the stand rig otherwise, recoil shake applied to both.
func (g *Game) CameraPose() camera.Pose {
	if fl := g.machine.Flight(); fl != nil {
		pose := fl.Orbit.Pose(fl.BulletAt(), fl.Progress(), g.cfg.Derived.FOV)
		return g.shake.Apply(pose)
	}
	return g.shake.Apply(g.rig.Pose())
}

// Rig returns the player's aim rig.
func (g *Game) Rig() *camera.Rig {
	return g.rig
}

// Terrain returns the session's height field.
func (g *Game) Terrain() *systems.HeightField {
	return g.field
}

// Bounds returns the wander sector.
func (g *Game) Bounds() systems.Bounds {
	return g.bounds
}

// Each calls fn with a view of every actor, dead ones included.
func (g *Game) Each(fn func(ActorView)) {
	g.reg.Each(fn)
}

// AliveCount returns the number of live actors.
func (g *Game) AliveCount() int {
	return g.reg.AliveCount()
}

// Tick returns the frame counter.
func (g *Game) Tick() int64 {
	return g.tick
}

// Elapsed returns session time in seconds, dt-clamped like the simulation.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// Perf returns the frame-timing collector so the caller can record the
// render phase and wall-clock frame spacing.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perf
}

// Seed returns the session seed.
func (g *Game) Seed() int64 {
	return g.seed
}

// Config returns the session's config snapshot.
func (g *Game) Config() *config.Config {
	return g.cfg
}
