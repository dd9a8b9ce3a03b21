package telemetry

// Collector accumulates shot records within time windows and produces
// WindowStats. It also keeps lifetime counters for the session summary.
type Collector struct {
	windowSec   float64
	windowStart float64

	// Current window
	shots       int
	hits        int
	misses      int
	scoreGained int
	distances   []float64
	aimErrors   []float64

	// Lifetime
	totalShots   int
	totalHits    int
	totalMisses  int
	totalEngaged int
	sumAimErr    float64
	longestHit   float64
}

// NewCollector creates a shot collector.
// windowSec: how long each stats window lasts in session seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 10
	}
	return &Collector{windowSec: windowSec}
}

// Record accumulates one shot into the current window.
func (c *Collector) Record(rec ShotRecord) {
	c.shots++
	c.totalShots++

	switch rec.Outcome {
	case OutcomeHit:
		c.hits++
		c.totalHits++
		c.scoreGained += rec.Points
		if d := float64(rec.Distance); d > c.longestHit {
			c.longestHit = d
		}
	default:
		// A vanished target still counts against accuracy.
		c.misses++
		c.totalMisses++
	}

	if rec.Engaged() {
		c.distances = append(c.distances, float64(rec.Distance))
		c.aimErrors = append(c.aimErrors, float64(rec.AimError))
		c.totalEngaged++
		c.sumAimErr += float64(rec.AimError)
	}
}

// ShouldFlush returns true if enough session time has passed to flush the window.
func (c *Collector) ShouldFlush(elapsedSec float64) bool {
	return elapsedSec-c.windowStart >= c.windowSec
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the current tick and the live actor count.
func (c *Collector) Flush(elapsedSec float64, tick int64, aliveActors int) WindowStats {
	var hitRate float64
	if c.shots > 0 {
		hitRate = float64(c.hits) / float64(c.shots)
	}

	meanDist, p50, p90 := ComputeAimStats(c.distances, c.aimErrors)

	stats := WindowStats{
		WindowEndTick: tick,
		TimeSec:       elapsedSec,
		Shots:         c.shots,
		Hits:          c.hits,
		Misses:        c.misses,
		HitRate:       hitRate,
		ScoreGained:   c.scoreGained,
		MeanDistance:  meanDist,
		AimErrP50:     p50,
		AimErrP90:     p90,
		AliveActors:   aliveActors,
	}

	c.shots = 0
	c.hits = 0
	c.misses = 0
	c.scoreGained = 0
	c.distances = c.distances[:0]
	c.aimErrors = c.aimErrors[:0]
	c.windowStart = elapsedSec

	return stats
}

// TotalShots returns the lifetime shot count.
func (c *Collector) TotalShots() int { return c.totalShots }

// TotalHits returns the lifetime hit count.
func (c *Collector) TotalHits() int { return c.totalHits }
