// Package main provides CMA-ES tuning of the difficulty parameters that
// shape the hunt's funnel: assist, forgiveness, pacing, and animal speed.
package main

import (
	"github.com/playablehq/stagfall/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard difficulty parameter set. Geometry
// (sector, radii, stand) stays fixed; these are the knobs that trade
// challenge against completion rate without moving the level.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "hit_radius_mult", Path: "shot.hit_radius_multiplier", Min: 1.2, Max: 3.5, Default: 2.2},
			{Name: "assist_strength", Path: "aim.assist.strength", Min: 0, Max: 12, Default: 6},
			{Name: "assist_cone_deg", Path: "aim.assist.cone_deg", Min: 4, Max: 18, Default: 10},
			{Name: "cooldown_ms", Path: "shot.cooldown_ms", Min: 400, Max: 1500, Default: 900},
			{Name: "speed_min", Path: "animal_speed.min", Min: 0.5, Max: 1.8, Default: 1.0},
			{Name: "speed_max", Path: "animal_speed.max", Min: 1.2, Max: 3.2, Default: 2.2},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config. Order must match
// Specs order. Refresh recomputes the derived values the game reads.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	v := pv.Clamp(values)

	cfg.Shot.HitRadiusMultiplier = v[0]
	cfg.Aim.Assist.Strength = v[1]
	cfg.Aim.Assist.ConeDeg = v[2]
	cfg.Shot.CooldownMs = int(v[3])
	cfg.AnimalSpeed.Min = v[4]
	cfg.AnimalSpeed.Max = v[5]
	if cfg.AnimalSpeed.Max < cfg.AnimalSpeed.Min {
		cfg.AnimalSpeed.Max = cfg.AnimalSpeed.Min
	}

	cfg.Refresh()
}
