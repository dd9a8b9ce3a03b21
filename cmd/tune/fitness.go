package main

import (
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/playablehq/stagfall/config"
	"github.com/playablehq/stagfall/game"
	"github.com/playablehq/stagfall/telemetry"
)

// Funnel targets. An ad session should finish in about a minute, complete
// for nearly everyone, and still miss often enough that hits feel earned.
const (
	targetCompletion  = 0.95
	targetAccuracy    = 0.60
	targetDurationSec = 60.0
)

// skillLevels are the autopilot aim errors in radians that one evaluation
// covers: shaky, average, and sharp players.
var skillLevels = [...]float32{0.022, 0.012, 0.005}

// FitnessEvaluator runs headless autopilot sessions and scores a parameter
// vector against the funnel targets.
type FitnessEvaluator struct {
	params   *ParamVector
	maxTicks int64
	seeds    []int64
	baseCfg  *config.Config

	mu       sync.Mutex
	lastRate float64 // completion rate from the most recent Evaluate
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		maxTicks: maxTicks,
		seeds:    seeds,
		baseCfg:  baseCfg,
	}
}

// LastRate returns the completion rate from the most recent evaluation.
func (fe *FitnessEvaluator) LastRate() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastRate
}

// Evaluate scores one parameter vector (lower = better): weighted squared
// error against the completion, accuracy, and duration targets, averaged
// over every seed and skill level.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseCfg.Snapshot()
	fe.params.ApplyToConfig(cfg, x)

	// Sessions are independent, so seeds and skill levels run in parallel.
	// New snapshots the config per session.
	sums := make([]telemetry.SessionSummary, len(fe.seeds)*len(skillLevels))
	var wg sync.WaitGroup
	slot := 0
	for _, seed := range fe.seeds {
		for _, ae := range skillLevels {
			wg.Add(1)
			go func(i int, s int64, aimErr float32) {
				defer wg.Done()
				sums[i] = fe.runSession(cfg, s, aimErr)
			}(slot, seed, ae)
			slot++
		}
	}
	wg.Wait()

	completions := make([]float64, len(sums))
	accuracies := make([]float64, len(sums))
	durations := make([]float64, len(sums))
	for i, s := range sums {
		if s.Completed {
			completions[i] = 1
		}
		accuracies[i] = s.Accuracy
		durations[i] = s.DurationSec
	}

	rate := stat.Mean(completions, nil)
	acc := stat.Mean(accuracies, nil)
	dur := stat.Mean(durations, nil)

	fe.mu.Lock()
	fe.lastRate = rate
	fe.mu.Unlock()

	// Completion dominates: an ad that players cannot finish fails no
	// matter how good the shot feel is.
	dc := rate - targetCompletion
	da := acc - targetAccuracy
	dd := (dur - targetDurationSec) / targetDurationSec
	return 4*dc*dc + da*da + dd*dd
}

// runSession plays one capped headless session and returns its summary.
// Sessions that hit the tick cap come back incomplete with the capped
// duration, which the duration term then punishes.
func (fe *FitnessEvaluator) runSession(cfg *config.Config, seed int64, aimError float32) telemetry.SessionSummary {
	g, err := game.New(cfg, game.Options{Seed: seed})
	if err != nil {
		// Score a failed start as a full-penalty run instead of killing
		// the sweep.
		return telemetry.SessionSummary{DurationSec: float64(fe.maxTicks) / 60}
	}
	defer g.Close()

	pilot := game.NewAutopilot(g, seed+1, aimError)
	const dt = float32(1.0 / 60.0)
	for !g.Session().EndCardShown() && g.Tick() < fe.maxTicks {
		g.Update(dt, pilot.Step(dt))
	}
	return g.Summary()
}
