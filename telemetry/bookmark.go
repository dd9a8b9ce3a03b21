package telemetry

import (
	"fmt"
	"log/slog"
)

// HighlightKind identifies the type of highlight.
type HighlightKind string

const (
	HighlightLongShot     HighlightKind = "long_shot"
	HighlightQuickDouble  HighlightKind = "quick_double"
	HighlightCleanSession HighlightKind = "clean_session"
)

// Highlight marks a moment worth surfacing in the end card or replays.
type Highlight struct {
	Kind        HighlightKind `csv:"kind"`
	Tick        int64         `csv:"tick"`
	TimeSec     float64       `csv:"time"`
	Species     string        `csv:"species"`
	Distance    float32       `csv:"distance"`
	Description string        `csv:"description"`
}

// LogHighlight logs the highlight using slog.
func (h Highlight) LogHighlight() {
	slog.Info("highlight",
		"kind", string(h.Kind),
		"tick", h.Tick,
		"time", h.TimeSec,
		"species", h.Species,
		"distance", h.Distance,
		"description", h.Description,
	)
}

// HighlightDetector detects notable shots as they resolve.
type HighlightDetector struct {
	longShotDist float32
	doubleWindow float64

	lastHitTime float64
	hasLastHit  bool
	misses      int
}

// NewHighlightDetector creates a detector.
// longShotDist: hit distance that qualifies as a long shot.
// doubleWindow: max seconds between two hits to count as a quick double.
func NewHighlightDetector(longShotDist float32, doubleWindow float64) *HighlightDetector {
	if doubleWindow <= 0 {
		doubleWindow = 3
	}
	return &HighlightDetector{
		longShotDist: longShotDist,
		doubleWindow: doubleWindow,
	}
}

// Check analyzes a resolved shot and returns any triggered highlights.
func (hd *HighlightDetector) Check(rec ShotRecord) []Highlight {
	var highlights []Highlight

	if rec.Outcome != OutcomeHit {
		hd.misses++
		return nil
	}

	if hd.longShotDist > 0 && rec.Distance >= hd.longShotDist {
		highlights = append(highlights, Highlight{
			Kind:        HighlightLongShot,
			Tick:        rec.Tick,
			TimeSec:     rec.TimeSec,
			Species:     rec.Species,
			Distance:    rec.Distance,
			Description: fmt.Sprintf("%s dropped at %.1fm", rec.Species, rec.Distance),
		})
	}

	if hd.hasLastHit && rec.TimeSec-hd.lastHitTime <= hd.doubleWindow {
		highlights = append(highlights, Highlight{
			Kind:        HighlightQuickDouble,
			Tick:        rec.Tick,
			TimeSec:     rec.TimeSec,
			Species:     rec.Species,
			Distance:    rec.Distance,
			Description: fmt.Sprintf("two hits %.1fs apart", rec.TimeSec-hd.lastHitTime),
		})
	}

	hd.lastHitTime = rec.TimeSec
	hd.hasLastHit = true

	return highlights
}

// Finish returns a clean-session highlight when the run ended without a miss.
func (hd *HighlightDetector) Finish(tick int64, timeSec float64, completed bool) []Highlight {
	if !completed || hd.misses > 0 || !hd.hasLastHit {
		return nil
	}
	return []Highlight{{
		Kind:        HighlightCleanSession,
		Tick:        tick,
		TimeSec:     timeSec,
		Description: "target reached without a miss",
	}}
}
