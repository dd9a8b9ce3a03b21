package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/playablehq/stagfall/config"
	"github.com/playablehq/stagfall/game"
	"github.com/playablehq/stagfall/renderer"
	"github.com/playablehq/stagfall/telemetry"
	"github.com/playablehq/stagfall/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run one session without graphics under the autopilot")
	logStats := flag.Bool("log-stats", false, "Output windowed stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for end-of-session snapshots")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	aimError := flag.Float64("aim-error", 0.012, "Autopilot aim error in radians (headless only)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
	}

	if *headless {
		runHeadless(opts, *maxTicks, float32(*aimError))
		return
	}
	runWindowed(opts, *maxTicks)
}

// runHeadless drives one full session with the autopilot at a fixed 60Hz
// step. No raylib calls happen on this path.
func runHeadless(opts game.Options, maxTicks int64, aimError float32) {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	pilot := game.NewAutopilot(g, opts.Seed+1, aimError)
	const dt = float32(1.0 / 60.0)

	slog.Info("starting headless session",
		"seed", opts.Seed,
		"aim_error", aimError,
		"max_ticks", maxTicks,
	)

	for {
		g.Update(dt, pilot.Step(dt))

		if g.Session().EndCardShown() {
			return
		}
		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

// sessionFx is per-session presentation state fed by game hooks: the hit
// flash, the floating score pop, and whether the controls hint still shows.
type sessionFx struct {
	hitFlash float32
	popText  string
	popAge   float32
	hasShot  bool
}

func (fx *sessionFx) advance(dt float32) {
	fx.hitFlash -= dt * 2.2
	if fx.hitFlash < 0 {
		fx.hitFlash = 0
	}
	fx.popAge += dt
}

// runWindowed is the playable build: raylib window, mouse aim standing in
// for touch drag, HUD and end card over the 3D scene.
func runWindowed(opts game.Options, maxTicks int64) {
	cfg := config.Cfg()
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Stagfall")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	var (
		g     *game.Game
		scene *renderer.Scene
		fx    sessionFx
	)
	hud := ui.NewHUD()
	endCard := ui.NewEndCard()

	start := func(seed int64) error {
		o := opts
		o.Seed = seed
		o.Hooks = game.Hooks{
			Hit: func(_ game.ActorView, points int) {
				fx.hitFlash = 1
				fx.popText = fmt.Sprintf("+%d", points)
				fx.popAge = 0
			},
			ShotFired: func() { fx.hasShot = true },
		}
		ng, err := game.New(config.Cfg(), o)
		if err != nil {
			return err
		}
		if g != nil {
			g.Close()
		}
		if scene != nil {
			scene.Unload()
		}
		g = ng
		scene = renderer.NewScene(g)
		fx = sessionFx{}
		endCard.Reset()
		return nil
	}
	if err := start(opts.Seed); err != nil {
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}
	defer func() {
		g.Close()
		scene.Unload()
	}()

	rl.DisableCursor()
	cursorFree := false

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()

		var in game.Input
		if !cursorFree {
			in = readInput()
		}
		g.Update(dt, in)
		scene.Update(g, dt)
		fx.advance(dt)

		// The end card needs the cursor back; aiming needs it captured.
		if done := g.Session().EndCardShown(); done != cursorFree {
			if done {
				rl.EnableCursor()
			} else {
				rl.DisableCursor()
			}
			cursorFree = done
		}

		renderStart := time.Now()
		rl.BeginDrawing()
		scene.Draw(g)
		hud.Draw(buildHUD(g, &fx, opts.LogStats))

		if cursorFree {
			endCard.Update(dt)
			s := g.Session()
			switch endCard.Draw(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), s.Score, s.Kills, s.Target) {
			case ui.EndCardReplay:
				if err := start(time.Now().UnixNano()); err != nil {
					slog.Error("failed to restart session", "error", err)
					return
				}
			case ui.EndCardDownload:
				slog.Info("cta_clicked",
					"session", s.ID.String(),
					"score", s.Score,
					"kills", s.Kills,
				)
			}
		}
		rl.EndDrawing()
		g.Perf().AddPhase(telemetry.PhaseRender, time.Since(renderStart))
		g.Perf().RecordFrame()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}

// readInput samples one frame of mouse input. On a desktop build the mouse
// stands in for the touch drag: raw delta for aim, left button for the
// trigger.
func readInput() game.Input {
	d := rl.GetMouseDelta()
	return game.Input{
		AimDX:           d.X,
		AimDY:           d.Y,
		TriggerPressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		TriggerReleased: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
	}
}

// buildHUD snapshots the game into one frame of HUD data.
func buildHUD(g *game.Game, fx *sessionFx, debug bool) ui.HUDData {
	s := g.Session()
	data := ui.HUDData{
		ScreenWidth:  int32(rl.GetScreenWidth()),
		ScreenHeight: int32(rl.GetScreenHeight()),
		Score:        s.Score,
		Kills:        s.Kills,
		Target:       s.Target,
		Cooldown:     g.CooldownFraction(),
		HitFlash:     fx.hitFlash,
		PopText:      fx.popText,
		PopAge:       fx.popAge,
		ShowHint:     !fx.hasShot && !s.Terminal(),
	}
	if fl := g.Flight(); fl != nil {
		data.InFlight = true
		data.FlightProgress = fl.Progress()
	}
	if v, ok := g.CurrentLock(); ok {
		data.Locked = true
		data.LockSpecies = v.Species
		data.LockPoints = v.Points
		data.LockDistance = v.AimPoint.Sub(g.Rig().Position).Length()
	}
	if debug {
		data.Debug = fmt.Sprintf("fps %d  tick %d  alive %d", rl.GetFPS(), g.Tick(), g.AliveCount())
	}
	return data
}
