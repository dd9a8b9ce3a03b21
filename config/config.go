// Package config provides configuration loading and access for the hunt.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"github.com/agnivade/levenshtein"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen      ScreenConfig       `yaml:"screen"`
	Stand       StandConfig        `yaml:"stand"`
	Sector      SectorConfig       `yaml:"sector"`
	SpawnRadius BandConfig         `yaml:"spawn_radius"`
	AnimalSpeed BandConfig         `yaml:"animal_speed"`
	Species     []SpeciesConfig    `yaml:"species"`
	Population  PopulationConfig   `yaml:"population"`
	SpawnPoints []SpawnPointConfig `yaml:"spawn_points"`
	Shot        ShotConfig         `yaml:"shot"`
	Aim         AimConfig          `yaml:"aim"`
	Session     SessionConfig      `yaml:"session"`
	Terrain     TerrainConfig      `yaml:"terrain"`
	Shake       ShakeConfig        `yaml:"shake"`
	Telemetry   TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// StandConfig places the hunting stand. The camera sits Height above the
// terrain at (X, Z) and faces +Z at yaw zero.
type StandConfig struct {
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Height float64 `yaml:"height"`
	FOVDeg float64 `yaml:"fov_deg"` // vertical field of view
}

// SectorConfig bounds the angular wedge of terrain actors may occupy,
// measured either side of the stand's forward axis.
type SectorConfig struct {
	HalfAngleDeg  float64 `yaml:"half_angle_deg"`
	EdgeMarginDeg float64 `yaml:"edge_margin_deg"` // steering begins this far inside the edge
}

// BandConfig is a closed [Min, Max] interval.
type BandConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SpeciesConfig defines one animal species. Chance values are renormalized
// to sum to 1 after loading, so relative weights are enough.
type SpeciesConfig struct {
	Name        string  `yaml:"name"`
	Chance      float64 `yaml:"chance"`
	Points      int     `yaml:"points"`
	HitRadius   float64 `yaml:"hit_radius"`   // meters, before the forgiveness multiplier
	SpeedScale  float64 `yaml:"speed_scale"`  // multiplies the global animal_speed band
	RetargetMin float64 `yaml:"retarget_min"` // seconds between wander re-samples
	RetargetMax float64 `yaml:"retarget_max"`
	RideHeight  float64 `yaml:"ride_height"` // body origin above terrain
	AimHeight   float64 `yaml:"aim_height"`  // aim point above body origin
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
}

// SpawnPointConfig is one entry of the fixed, ordered spawn list. When any
// spawn points are configured, they replace random spawning entirely.
type SpawnPointConfig struct {
	Species    string  `yaml:"species"`
	X          float64 `yaml:"x"`
	Z          float64 `yaml:"z"`
	HeadingDeg float64 `yaml:"heading_deg"`
}

// ShotConfig holds shot timing and the bullet-time cinematic parameters.
type ShotConfig struct {
	BulletTimeMs        int         `yaml:"bullet_time_ms"`
	BulletTimeScale     float64     `yaml:"bullet_time_scale"` // world time multiplier while in flight
	CooldownMs          int         `yaml:"cooldown_ms"`
	MissCooldownMs      int         `yaml:"miss_cooldown_ms"`
	HitRadiusMultiplier float64     `yaml:"hit_radius_multiplier"`
	Orbit               OrbitConfig `yaml:"orbit"`
}

// OrbitConfig shapes the bullet-time camera path around the projectile.
type OrbitConfig struct {
	Distance float64 `yaml:"distance"`
	Height   float64 `yaml:"height"`
	RateDeg  float64 `yaml:"rate_deg"` // orbit angular rate, degrees per second
	Tighten  float64 `yaml:"tighten"`  // fraction of distance shed by full flight progress
}

// AimConfig holds input mapping and aim assist parameters.
type AimConfig struct {
	Scheme       string       `yaml:"scheme"` // "tap" or "hold"
	SensitivityX float64      `yaml:"sensitivity_x"`
	SensitivityY float64      `yaml:"sensitivity_y"`
	PitchMinDeg  float64      `yaml:"pitch_min_deg"`
	PitchMaxDeg  float64      `yaml:"pitch_max_deg"`
	Assist       AssistConfig `yaml:"assist"`
}

// AssistConfig holds aim assist parameters. Assist only nudges the view;
// the raycast stays authoritative for hit decisions.
type AssistConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Strength float64 `yaml:"strength"` // exponential pull rate toward the locked target, 1/s
	ConeDeg  float64 `yaml:"cone_deg"` // assist engages within this angle of an actor
}

// SessionConfig holds session termination parameters.
type SessionConfig struct {
	TerminationTarget int `yaml:"termination_target"` // kills to end the session; 0 = spawn point count
	RespawnDelayMs    int `yaml:"respawn_delay_ms"`
	CtaDelayMs        int `yaml:"cta_delay_ms"`
}

// TerrainConfig holds height field generation parameters.
type TerrainConfig struct {
	Scale      float64 `yaml:"scale"`      // base noise frequency, 1/meters
	Octaves    int     `yaml:"octaves"`    // FBM octaves (detail level)
	Lacunarity float64 `yaml:"lacunarity"` // frequency multiplier per octave
	Gain       float64 `yaml:"gain"`       // amplitude multiplier per octave
	Amplitude  float64 `yaml:"amplitude"`  // peak-to-base height range in meters
	BaseHeight float64 `yaml:"base_height"`
}

// ShakeConfig holds recoil camera shake parameters.
type ShakeConfig struct {
	Amplitude  float64 `yaml:"amplitude"` // meters at full strength
	DurationMs int     `yaml:"duration_ms"`
	Frequency  float64 `yaml:"frequency"` // oscillations per second
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowSec float64 `yaml:"window_sec"`
}

// DerivedConfig holds computed values derived from the loaded config.
// Durations are seconds, angles radians, everything float32 for the
// simulation hot path.
type DerivedConfig struct {
	BulletTime    float32
	BulletScale   float32
	Cooldown      float32
	MissCooldown  float32
	RespawnDelay  float32
	CtaDelay      float32
	ShakeDuration float32
	HalfAngle     float32
	EdgeMargin    float32
	OrbitRate     float32
	PitchMin      float32
	PitchMax      float32
	AssistCone    float32
	HitMultiplier float32
	FOV           float32
	KillTarget    int              // termination target after spawn list defaulting
	SpeciesIndex  map[string]uint8 // name -> index into Species
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

const deg = math.Pi / 180

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.BulletTime = float32(c.Shot.BulletTimeMs) / 1000
	c.Derived.BulletScale = float32(c.Shot.BulletTimeScale)
	c.Derived.Cooldown = float32(c.Shot.CooldownMs) / 1000
	c.Derived.MissCooldown = float32(c.Shot.MissCooldownMs) / 1000
	c.Derived.RespawnDelay = float32(c.Session.RespawnDelayMs) / 1000
	c.Derived.CtaDelay = float32(c.Session.CtaDelayMs) / 1000
	c.Derived.ShakeDuration = float32(c.Shake.DurationMs) / 1000
	c.Derived.HalfAngle = float32(c.Sector.HalfAngleDeg * deg)
	c.Derived.EdgeMargin = float32(c.Sector.EdgeMarginDeg * deg)
	c.Derived.OrbitRate = float32(c.Shot.Orbit.RateDeg * deg)
	c.Derived.PitchMin = float32(c.Aim.PitchMinDeg * deg)
	c.Derived.PitchMax = float32(c.Aim.PitchMaxDeg * deg)
	c.Derived.AssistCone = float32(c.Aim.Assist.ConeDeg * deg)
	c.Derived.HitMultiplier = float32(c.Shot.HitRadiusMultiplier)
	c.Derived.FOV = float32(c.Stand.FOVDeg * deg)

	// Apply per-species defaults for fields left at zero
	for i := range c.Species {
		sp := &c.Species[i]
		if sp.SpeedScale == 0 {
			sp.SpeedScale = 1.0
		}
		if sp.RetargetMin == 0 {
			sp.RetargetMin = 1.0
		}
		if sp.RetargetMax == 0 {
			sp.RetargetMax = sp.RetargetMin + 1.5
		}
	}

	// Renormalize spawn chances so relative weights are enough
	var sum float64
	for _, sp := range c.Species {
		sum += sp.Chance
	}
	if sum > 0 && sum != 1 {
		for i := range c.Species {
			c.Species[i].Chance /= sum
		}
	}

	// Build species index for fast lookup
	c.Derived.SpeciesIndex = make(map[string]uint8, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Name] = uint8(i)
	}

	// A fixed spawn list defaults the kill target to its length
	c.Derived.KillTarget = c.Session.TerminationTarget
	if c.Derived.KillTarget <= 0 && len(c.SpawnPoints) > 0 {
		c.Derived.KillTarget = len(c.SpawnPoints)
	}
}

// Refresh recomputes derived values after direct field edits. The tuner
// calls it after applying a parameter vector; Load calls it for everyone
// else.
func (c *Config) Refresh() {
	c.computeDerived()
}

// Validate checks the loaded configuration for values the game cannot run
// with. It is called by Load; errors are fatal at startup.
func (c *Config) Validate() error {
	if len(c.Species) == 0 {
		return fmt.Errorf("species table is empty")
	}
	for i, sp := range c.Species {
		if sp.Name == "" {
			return fmt.Errorf("species[%d]: name is required", i)
		}
		if sp.Chance < 0 {
			return fmt.Errorf("species %q: chance must not be negative", sp.Name)
		}
		if sp.HitRadius <= 0 {
			return fmt.Errorf("species %q: hit_radius must be positive", sp.Name)
		}
		if sp.SpeedScale <= 0 {
			return fmt.Errorf("species %q: speed_scale must be positive", sp.Name)
		}
		if sp.RetargetMin <= 0 || sp.RetargetMax < sp.RetargetMin {
			return fmt.Errorf("species %q: retarget interval [%g, %g] is not a positive range",
				sp.Name, sp.RetargetMin, sp.RetargetMax)
		}
	}
	for i, sp := range c.SpawnPoints {
		if _, ok := c.Derived.SpeciesIndex[sp.Species]; !ok {
			return fmt.Errorf("spawn_points[%d]: unknown species %q%s", i, sp.Species, c.suggestSpecies(sp.Species))
		}
	}
	if c.AnimalSpeed.Min <= 0 || c.AnimalSpeed.Max < c.AnimalSpeed.Min {
		return fmt.Errorf("animal_speed [%g, %g] is not a positive range", c.AnimalSpeed.Min, c.AnimalSpeed.Max)
	}
	if c.SpawnRadius.Min <= 0 || c.SpawnRadius.Max <= c.SpawnRadius.Min {
		return fmt.Errorf("spawn_radius [%g, %g] is not a positive range", c.SpawnRadius.Min, c.SpawnRadius.Max)
	}
	if c.Sector.HalfAngleDeg <= 0 || c.Sector.HalfAngleDeg > 180 {
		return fmt.Errorf("sector half_angle_deg %g must be in (0, 180]", c.Sector.HalfAngleDeg)
	}
	if c.Sector.EdgeMarginDeg < 0 || c.Sector.EdgeMarginDeg >= c.Sector.HalfAngleDeg {
		return fmt.Errorf("sector edge_margin_deg %g must be in [0, half_angle_deg)", c.Sector.EdgeMarginDeg)
	}
	if c.Shot.BulletTimeMs <= 0 {
		return fmt.Errorf("shot bullet_time_ms must be positive")
	}
	if c.Shot.BulletTimeScale <= 0 || c.Shot.BulletTimeScale > 1 {
		return fmt.Errorf("shot bullet_time_scale %g must be in (0, 1]", c.Shot.BulletTimeScale)
	}
	if c.Shot.CooldownMs < 0 || c.Shot.MissCooldownMs < 0 {
		return fmt.Errorf("shot cooldowns must not be negative")
	}
	if c.Shot.HitRadiusMultiplier <= 0 {
		return fmt.Errorf("shot hit_radius_multiplier must be positive")
	}
	if c.Aim.Scheme != "tap" && c.Aim.Scheme != "hold" {
		return fmt.Errorf("aim scheme %q must be \"tap\" or \"hold\"", c.Aim.Scheme)
	}
	if c.Aim.PitchMinDeg >= c.Aim.PitchMaxDeg {
		return fmt.Errorf("aim pitch limits [%g, %g] are inverted", c.Aim.PitchMinDeg, c.Aim.PitchMaxDeg)
	}
	if len(c.SpawnPoints) == 0 {
		if c.Population.Initial < 1 {
			return fmt.Errorf("population initial must be at least 1")
		}
		if c.Derived.KillTarget <= 0 {
			return fmt.Errorf("session termination_target must be positive")
		}
	}
	if c.Terrain.Octaves < 1 {
		return fmt.Errorf("terrain octaves must be at least 1")
	}
	if c.Terrain.Scale <= 0 || c.Terrain.Lacunarity < 1 || c.Terrain.Gain <= 0 {
		return fmt.Errorf("terrain scale/lacunarity/gain must be positive (lacunarity >= 1)")
	}
	if c.Telemetry.WindowSec <= 0 {
		return fmt.Errorf("telemetry window_sec must be positive")
	}
	return nil
}

// suggestSpecies returns a " (did you mean ...)" hint when a close species
// name exists, for typo diagnostics in spawn point references.
func (c *Config) suggestSpecies(name string) string {
	best := ""
	bestDist := 4 // suggestions beyond 3 edits are noise
	for _, sp := range c.Species {
		if d := levenshtein.ComputeDistance(name, sp.Name); d < bestDist {
			best, bestDist = sp.Name, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

// Snapshot returns a deep copy of the configuration. Each session keeps its
// own snapshot, so edits to the global config never reach a session already
// in progress.
func (c *Config) Snapshot() *Config {
	out := &Config{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("config: snapshot: %v", err))
	}
	return out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
