package game

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/mlange-42/ark/ecs"

	"github.com/playablehq/stagfall/components"
	"github.com/playablehq/stagfall/config"
	"github.com/playablehq/stagfall/systems"
)

const deg = math32.Pi / 180

// Spawner places new actors: at weighted-random sector positions, or along
// the fixed ordered spawn list when one is configured.
type Spawner struct {
	cfg    *config.Config
	field  *systems.HeightField
	rng    *rand.Rand
	bounds systems.Bounds
}

func newSpawner(cfg *config.Config, field *systems.HeightField, rng *rand.Rand, bounds systems.Bounds) *Spawner {
	return &Spawner{cfg: cfg, field: field, rng: rng, bounds: bounds}
}

// Fixed reports whether spawning follows the ordered spawn list.
func (s *Spawner) Fixed() bool {
	return len(s.cfg.SpawnPoints) > 0
}

// SpawnRandom places one weighted-random-species actor uniformly in the
// sector band, inside the angular margin so it does not start its life in
// a steering correction.
func (s *Spawner) SpawnRandom(reg *Registry) ecs.Entity {
	sp := s.cfg.Species[s.pickSpecies()]

	limit := s.bounds.HalfAngle - s.bounds.EdgeMargin
	theta := (s.rng.Float32()*2 - 1) * limit
	radius := s.bounds.RadiusMin + s.rng.Float32()*(s.bounds.RadiusMax-s.bounds.RadiusMin)
	x := s.bounds.StandX + math32.Sin(theta)*radius
	z := s.bounds.StandZ + math32.Cos(theta)*radius
	yaw := s.rng.Float32() * 2 * math32.Pi

	return s.place(reg, sp, x, z, yaw)
}

// SpawnFixed places the actor for one entry of the spawn list. Reports
// false when the index is past the end, which callers treat as the list
// being exhausted.
func (s *Spawner) SpawnFixed(reg *Registry, index int) (ecs.Entity, bool) {
	if index < 0 || index >= len(s.cfg.SpawnPoints) {
		return ecs.Entity{}, false
	}
	pt := s.cfg.SpawnPoints[index]
	sp := s.cfg.Species[s.cfg.Derived.SpeciesIndex[pt.Species]]
	e := s.place(reg, sp, float32(pt.X), float32(pt.Z), float32(pt.HeadingDeg)*deg)
	return e, true
}

func (s *Spawner) place(reg *Registry, sp config.SpeciesConfig, x, z, yaw float32) ecs.Entity {
	prof := profileFor(sp, s.cfg)
	pos := components.Position{
		X: x,
		Y: s.field.HeightAt(x, z) + prof.RideHeight,
		Z: z,
	}
	wander := systems.NewWander(&prof, s.rng)
	entity, _ := reg.Add(pos, yaw, prof, wander)
	return entity
}

// pickSpecies draws a species index by configured chance. Chances are
// renormalized at load, but the draw works for any positive weights.
func (s *Spawner) pickSpecies() int {
	total := 0.0
	for _, sp := range s.cfg.Species {
		total += sp.Chance
	}
	r := s.rng.Float64() * total
	for i, sp := range s.cfg.Species {
		r -= sp.Chance
		if r < 0 {
			return i
		}
	}
	return len(s.cfg.Species) - 1
}

// profileFor resolves a species config into the per-actor profile, baking
// the global speed band scaled by the species multiplier.
func profileFor(sp config.SpeciesConfig, cfg *config.Config) components.Profile {
	return components.Profile{
		Species:     sp.Name,
		Points:      sp.Points,
		HitRadius:   float32(sp.HitRadius),
		SpeedMin:    float32(cfg.AnimalSpeed.Min * sp.SpeedScale),
		SpeedMax:    float32(cfg.AnimalSpeed.Max * sp.SpeedScale),
		RetargetMin: float32(sp.RetargetMin),
		RetargetMax: float32(sp.RetargetMax),
		RideHeight:  float32(sp.RideHeight),
		AimHeight:   float32(sp.AimHeight),
	}
}
