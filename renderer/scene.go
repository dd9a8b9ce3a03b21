// Package renderer draws the hunt with raylib: terrain, animals, the bullet
// tracer, and impact dust. It owns GPU resources and per-frame draw calls;
// all state it draws comes from the game's read-only views, so headless
// builds never touch this package.
package renderer

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/chewxy/math32"

	"github.com/playablehq/stagfall/camera"
	"github.com/playablehq/stagfall/components"
	"github.com/playablehq/stagfall/game"
)

// worldMargin extends the terrain mesh past the spawn band so the horizon
// is never a hard edge.
const worldMargin = 15.0

// Scene owns everything drawn in 3D.
type Scene struct {
	terrain Terrain
	props   []prop
	burst   ImpactBurst

	// flight edge detection for the impact burst
	flightWasActive bool
	lastBulletEnd   rl.Vector3
}

// NewScene builds the terrain model and scatters the dressing for one
// session. Must run after rl.InitWindow.
func NewScene(g *game.Game) *Scene {
	s := &Scene{
		terrain: NewTerrain(g.Terrain(), g.Bounds(), worldMargin),
	}
	rng := rand.New(rand.NewSource(g.Seed()))
	s.props = scatterProps(g.Terrain(), g.Bounds(), rng)
	return s
}

// Update advances render-side state: impact detection and particles. It
// polls the flight rather than hooking the game, so the renderer can never
// stall the simulation.
func (s *Scene) Update(g *game.Game, dt float32) {
	if fl := g.Flight(); fl != nil {
		s.flightWasActive = true
		s.lastBulletEnd = vec3(fl.End)
	} else if s.flightWasActive {
		s.flightWasActive = false
		s.burst.Spawn(s.lastBulletEnd)
	}
	s.burst.Advance(dt)
}

// Draw renders one frame: sky, then the 3D pass under the game's camera.
func (s *Scene) Draw(g *game.Game) {
	pose := g.CameraPose()
	inFlight := g.Flight() != nil

	drawSky(inFlight)

	rl.BeginMode3D(toCamera(pose))
	s.terrain.Draw()
	for i := range s.props {
		s.props[i].draw()
	}
	g.Each(func(v game.ActorView) {
		groundY := g.Terrain().HeightAt(v.Position.X, v.Position.Z)
		drawActor(v, groundY)
	})
	if fl := g.Flight(); fl != nil {
		drawTracer(fl)
	}
	s.burst.Draw()
	rl.EndMode3D()
}

// Unload releases the scene's GPU resources.
func (s *Scene) Unload() {
	s.terrain.Unload()
}

// toCamera converts a game pose into the raylib camera. Pose FOV is in
// radians; raylib wants degrees.
func toCamera(p camera.Pose) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(p.Position),
		Target:     vec3(p.Target),
		Up:         vec3(p.Up),
		Fovy:       p.FOV * 180 / math32.Pi,
		Projection: rl.CameraPerspective,
	}
}

func vec3(v components.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}
