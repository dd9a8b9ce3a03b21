package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated shot statistics for a time window.
type WindowStats struct {
	WindowEndTick int64   `csv:"window_end"`
	TimeSec       float64 `csv:"time"`

	// Shot counts during window
	Shots  int `csv:"shots"`
	Hits   int `csv:"hits"`
	Misses int `csv:"misses"`

	HitRate     float64 `csv:"hit_rate"`
	ScoreGained int     `csv:"score_gained"`

	// Engagement quality (engaged shots only)
	MeanDistance float64 `csv:"mean_distance"`
	AimErrP50    float64 `csv:"aim_err_p50"`
	AimErrP90    float64 `csv:"aim_err_p90"`

	// World state at window end
	AliveActors int `csv:"alive_actors"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeAimStats calculates mean distance and aim-error percentiles from
// the engaged shots of a window.
func ComputeAimStats(distances, aimErrors []float64) (meanDist, p50, p90 float64) {
	if n := len(distances); n > 0 {
		var sum float64
		for _, d := range distances {
			sum += d
		}
		meanDist = sum / float64(n)
	}

	n := len(aimErrors)
	if n == 0 {
		return meanDist, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, aimErrors)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return meanDist, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("time", s.TimeSec),
		slog.Int("shots", s.Shots),
		slog.Int("hits", s.Hits),
		slog.Int("misses", s.Misses),
		slog.Float64("hit_rate", s.HitRate),
		slog.Int("score_gained", s.ScoreGained),
		slog.Float64("mean_distance", s.MeanDistance),
		slog.Float64("aim_err_p50", s.AimErrP50),
		slog.Float64("aim_err_p90", s.AimErrP90),
		slog.Int("alive_actors", s.AliveActors),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"time", s.TimeSec,
		"shots", s.Shots,
		"hits", s.Hits,
		"misses", s.Misses,
		"hit_rate", s.HitRate,
		"score_gained", s.ScoreGained,
		"mean_distance", s.MeanDistance,
		"aim_err_p50", s.AimErrP50,
		"aim_err_p90", s.AimErrP90,
		"alive_actors", s.AliveActors,
	)
}
