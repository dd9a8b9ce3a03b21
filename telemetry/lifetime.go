package telemetry

import "log/slog"

// SessionSummary aggregates a full session, written to summary.json at close.
type SessionSummary struct {
	Session     string  `json:"session"`
	Seed        int64   `json:"seed"`
	DurationSec float64 `json:"duration_sec"`
	Ticks       int64   `json:"ticks"`

	Shots    int     `json:"shots"`
	Hits     int     `json:"hits"`
	Misses   int     `json:"misses"`
	Accuracy float64 `json:"accuracy"`

	Score      int  `json:"score"`
	Kills      int  `json:"kills"`
	KillTarget int  `json:"kill_target"`
	Completed  bool `json:"completed"`

	MeanAimError float64 `json:"mean_aim_error"`
	LongestHit   float64 `json:"longest_hit"`
}

// Summary builds the session summary from the collector's lifetime counters.
// Score, kills, and outcome come from the caller; accuracy and aim quality
// come from the accumulated shots.
func (c *Collector) Summary(session string, seed int64, durationSec float64, ticks int64, score, kills, killTarget int, completed bool) SessionSummary {
	s := SessionSummary{
		Session:     session,
		Seed:        seed,
		DurationSec: durationSec,
		Ticks:       ticks,
		Shots:       c.totalShots,
		Hits:        c.totalHits,
		Misses:      c.totalMisses,
		Score:       score,
		Kills:       kills,
		KillTarget:  killTarget,
		Completed:   completed,
		LongestHit:  c.longestHit,
	}
	if c.totalShots > 0 {
		s.Accuracy = float64(c.totalHits) / float64(c.totalShots)
	}
	if c.totalEngaged > 0 {
		// Engaged shots are the only ones with a measured deviation.
		s.MeanAimError = c.sumAimErr / float64(c.totalEngaged)
	}
	return s
}

// LogSummary logs the session summary using slog.
func (s SessionSummary) LogSummary() {
	slog.Info("session_summary",
		"session", s.Session,
		"seed", s.Seed,
		"duration_sec", s.DurationSec,
		"ticks", s.Ticks,
		"shots", s.Shots,
		"hits", s.Hits,
		"misses", s.Misses,
		"accuracy", s.Accuracy,
		"score", s.Score,
		"kills", s.Kills,
		"kill_target", s.KillTarget,
		"completed", s.Completed,
		"mean_aim_error", s.MeanAimError,
		"longest_hit", s.LongestHit,
	)
}
