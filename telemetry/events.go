// Package telemetry provides shot tracking, session aggregates, highlights, and run output.
package telemetry

// Outcome classifies how a shot resolved.
type Outcome string

const (
	// OutcomeHit is a shot that engaged a target and landed.
	OutcomeHit Outcome = "hit"
	// OutcomeMiss is a trigger pull with no target under the crosshair.
	OutcomeMiss Outcome = "miss"
	// OutcomeTargetGone is an engaged shot whose target vanished mid-flight.
	OutcomeTargetGone Outcome = "target_gone"
)

// ShotRecord is a single trigger pull, written to shots.csv.
type ShotRecord struct {
	Session    string  `csv:"session"`
	Tick       int64   `csv:"tick"`
	TimeSec    float64 `csv:"time"`
	Outcome    Outcome `csv:"outcome"`
	Species    string  `csv:"species"`
	Points     int     `csv:"points"`
	Distance   float32 `csv:"distance"`
	AimError   float32 `csv:"aim_error"`
	ScoreAfter int     `csv:"score_after"`
}

// Engaged reports whether the shot locked a target when fired.
func (r ShotRecord) Engaged() bool {
	return r.Outcome != OutcomeMiss
}
