package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeAimStats(t *testing.T) {
	distances := []float64{10, 20, 30}
	aimErrors := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

	meanDist, p50, p90 := ComputeAimStats(distances, aimErrors)

	if math.Abs(meanDist-20) > 0.001 {
		t.Errorf("mean distance = %v, want 20", meanDist)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
}

func TestComputeAimStatsEmpty(t *testing.T) {
	meanDist, p50, p90 := ComputeAimStats(nil, nil)

	if meanDist != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty input should return all zeros")
	}
}

func TestCollector_FlushComputesRates(t *testing.T) {
	c := NewCollector(10)

	c.Record(ShotRecord{Outcome: OutcomeHit, Species: "deer", Points: 10, Distance: 15, AimError: 0.2})
	c.Record(ShotRecord{Outcome: OutcomeHit, Species: "bear", Points: 25, Distance: 25, AimError: 0.6})
	c.Record(ShotRecord{Outcome: OutcomeMiss})

	stats := c.Flush(10.0, 600, 3)

	if stats.Shots != 3 {
		t.Errorf("expected 3 shots, got %d", stats.Shots)
	}
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("expected 2 hits / 1 miss, got %d / %d", stats.Hits, stats.Misses)
	}
	if math.Abs(stats.HitRate-2.0/3.0) > 0.001 {
		t.Errorf("hit rate = %v, want 2/3", stats.HitRate)
	}
	if stats.ScoreGained != 35 {
		t.Errorf("score gained = %d, want 35", stats.ScoreGained)
	}
	if math.Abs(stats.MeanDistance-20) > 0.001 {
		t.Errorf("mean distance = %v, want 20", stats.MeanDistance)
	}
	if stats.AliveActors != 3 {
		t.Errorf("alive actors = %d, want 3", stats.AliveActors)
	}
}

func TestCollector_FlushResetsWindow(t *testing.T) {
	c := NewCollector(10)

	c.Record(ShotRecord{Outcome: OutcomeHit, Points: 10, Distance: 15, AimError: 0.2})
	c.Flush(10.0, 600, 1)

	stats := c.Flush(20.0, 1200, 1)
	if stats.Shots != 0 || stats.Hits != 0 || stats.ScoreGained != 0 {
		t.Errorf("expected empty second window, got %+v", stats)
	}
}

func TestCollector_ShouldFlush(t *testing.T) {
	c := NewCollector(10)

	if c.ShouldFlush(9.9) {
		t.Error("should not flush before window elapses")
	}
	if !c.ShouldFlush(10.0) {
		t.Error("should flush once window elapses")
	}

	c.Flush(10.0, 600, 0)
	if c.ShouldFlush(19.9) {
		t.Error("flush should reset the window start")
	}
}

func TestCollector_TargetGoneCountsAsMiss(t *testing.T) {
	c := NewCollector(10)

	c.Record(ShotRecord{Outcome: OutcomeTargetGone, Species: "deer", Distance: 12, AimError: 0.3})

	stats := c.Flush(10.0, 600, 1)
	if stats.Misses != 1 {
		t.Errorf("target_gone should count as a miss, got %d misses", stats.Misses)
	}
	// But it was an engaged shot, so it carries aim quality
	if stats.MeanDistance != 12 {
		t.Errorf("engaged distance should be recorded, got %v", stats.MeanDistance)
	}
}

func TestCollector_SummaryAggregatesLifetime(t *testing.T) {
	c := NewCollector(5)

	c.Record(ShotRecord{Outcome: OutcomeHit, Points: 10, Distance: 30, AimError: 0.4})
	c.Flush(5.0, 300, 1)
	c.Record(ShotRecord{Outcome: OutcomeMiss})
	c.Record(ShotRecord{Outcome: OutcomeHit, Points: 25, Distance: 18, AimError: 0.2})

	s := c.Summary("abc", 42, 12.5, 750, 35, 2, 3, false)

	if s.Shots != 3 || s.Hits != 2 || s.Misses != 1 {
		t.Errorf("lifetime counts wrong: %+v", s)
	}
	if math.Abs(s.Accuracy-2.0/3.0) > 0.001 {
		t.Errorf("accuracy = %v, want 2/3", s.Accuracy)
	}
	if math.Abs(s.MeanAimError-0.3) > 0.001 {
		t.Errorf("mean aim error = %v, want 0.3", s.MeanAimError)
	}
	if s.LongestHit != 30 {
		t.Errorf("longest hit = %v, want 30", s.LongestHit)
	}
	if s.Completed {
		t.Error("session should not be marked completed")
	}
}
