// Package main runs batches of headless autopilot sessions and aggregates
// the funnel numbers designers watch: completion rate, time to finish, and
// accuracy across a skill spread. The best runs land in a hall of fame so
// interesting seeds can be replayed in the windowed build.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/playablehq/stagfall/config"
	"github.com/playablehq/stagfall/game"
	"github.com/playablehq/stagfall/telemetry"
)

// sessionRow is one line of sessions.csv.
type sessionRow struct {
	Index       int     `csv:"session"`
	Seed        int64   `csv:"seed"`
	AimError    float64 `csv:"aim_error"`
	Completed   bool    `csv:"completed"`
	DurationSec float64 `csv:"duration_sec"`
	Ticks       int64   `csv:"ticks"`
	Score       int     `csv:"score"`
	Kills       int     `csv:"kills"`
	Shots       int     `csv:"shots"`
	Accuracy    float64 `csv:"accuracy"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	sessions := flag.Int("sessions", 20, "Number of sessions to run")
	seed := flag.Int64("seed", 0, "Base seed (0 = time-based)")
	aimError := flag.Float64("aim-error", 0.012, "Mean autopilot aim error in radians")
	aimSpread := flag.Float64("aim-spread", 0.5, "Per-session aim error spread as a fraction of the mean")
	maxTicks := flag.Int64("max-ticks", 36000, "Per-session tick cap (10 minutes at 60Hz)")
	hallSize := flag.Int("hall", 5, "Hall of fame size")
	outputDir := flag.String("output", "", "Directory for sessions.csv and hall_of_fame.json")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	spreadRng := rand.New(rand.NewSource(baseSeed))

	hall := telemetry.NewHallOfFame(*hallSize)
	rows := make([]sessionRow, 0, *sessions)
	var completions, durations, accuracies, scores, shots []float64

	slog.Info("batch_started",
		"sessions", *sessions,
		"base_seed", baseSeed,
		"aim_error", *aimError,
		"aim_spread", *aimSpread,
	)

	for i := 0; i < *sessions; i++ {
		// Spread pilot skill across the batch so the numbers cover weak
		// and strong players, not just one synthetic skill level.
		ae := *aimError * (1 + *aimSpread*(spreadRng.Float64()*2-1))
		if ae < 0 {
			ae = 0
		}
		runSeed := baseSeed + int64(i)*9973

		sum, err := runSession(runSeed, float32(ae), *maxTicks)
		if err != nil {
			slog.Error("session failed", "session", i, "error", err)
			os.Exit(1)
		}
		hall.Consider(sum)

		rows = append(rows, sessionRow{
			Index:       i,
			Seed:        runSeed,
			AimError:    ae,
			Completed:   sum.Completed,
			DurationSec: sum.DurationSec,
			Ticks:       sum.Ticks,
			Score:       sum.Score,
			Kills:       sum.Kills,
			Shots:       sum.Shots,
			Accuracy:    sum.Accuracy,
		})

		completed := 0.0
		if sum.Completed {
			completed = 1
		}
		completions = append(completions, completed)
		durations = append(durations, sum.DurationSec)
		accuracies = append(accuracies, sum.Accuracy)
		scores = append(scores, float64(sum.Score))
		shots = append(shots, float64(sum.Shots))
	}

	slog.Info("batch_complete",
		"sessions", *sessions,
		"completion_rate", stat.Mean(completions, nil),
		"mean_duration_sec", stat.Mean(durations, nil),
		"mean_accuracy", stat.Mean(accuracies, nil),
		"mean_shots", stat.Mean(shots, nil),
		"score_mean", stat.Mean(scores, nil),
		"score_std", stat.StdDev(scores, nil),
	)
	if top, ok := hall.Top(); ok {
		slog.Info("best_session",
			"seed", top.Seed,
			"score", top.Score,
			"accuracy", top.Accuracy,
			"duration_sec", top.Duration,
		)
	}

	if *outputDir == "" {
		return
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	csvPath := filepath.Join(*outputDir, "sessions.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		slog.Error("failed to create sessions.csv", "error", err)
		os.Exit(1)
	}
	if err := gocsv.Marshal(rows, f); err != nil {
		f.Close()
		slog.Error("failed to write sessions.csv", "error", err)
		os.Exit(1)
	}
	f.Close()

	hallPath := filepath.Join(*outputDir, "hall_of_fame.json")
	if err := hall.Save(hallPath); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s and %s\n", csvPath, hallPath)
}

// runSession plays one full session under the autopilot at a fixed 60Hz
// step and returns its summary.
func runSession(seed int64, aimError float32, maxTicks int64) (telemetry.SessionSummary, error) {
	g, err := game.NewGameWithOptions(game.Options{Seed: seed})
	if err != nil {
		return telemetry.SessionSummary{}, err
	}
	defer g.Close()

	pilot := game.NewAutopilot(g, seed+1, aimError)
	const dt = float32(1.0 / 60.0)
	for !g.Session().EndCardShown() {
		g.Update(dt, pilot.Step(dt))
		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
	return g.Summary(), nil
}
