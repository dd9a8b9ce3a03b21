package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/playablehq/stagfall/components"
)

// Registry owns the live animal actors. Actor identity is a registry-scoped
// uint32 that collaborators (renderer, telemetry, hooks) may hold across
// frames; the ECS entity handle stays internal to the game package.
type Registry struct {
	world  *ecs.World
	mapper *ecs.Map5[
		components.Position,
		components.Heading,
		components.Wander,
		components.Profile,
		components.Life,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Heading,
		components.Wander,
		components.Profile,
		components.Life,
	]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	headMap *ecs.Map1[components.Heading]
	profMap *ecs.Map1[components.Profile]
	lifeMap *ecs.Map1[components.Life]

	nextID uint32
	alive  int
}

// ActorView is the read-only record collaborators receive. The renderer
// positions its node from it, telemetry rows quote it.
type ActorView struct {
	ID       uint32
	Species  string
	Points   int
	Position components.Vec3
	Yaw      float32
	Alive    bool
	Falling  float32 // death tumble progress, 0 to 1
	AimPoint components.Vec3
}

// NewRegistry creates an empty actor registry.
func NewRegistry() *Registry {
	world := ecs.NewWorld()
	return &Registry{
		world: world,
		mapper: ecs.NewMap5[
			components.Position,
			components.Heading,
			components.Wander,
			components.Profile,
			components.Life,
		](world),
		filter: ecs.NewFilter5[
			components.Position,
			components.Heading,
			components.Wander,
			components.Profile,
			components.Life,
		](world),
		posMap:  ecs.NewMap1[components.Position](world),
		headMap: ecs.NewMap1[components.Heading](world),
		profMap: ecs.NewMap1[components.Profile](world),
		lifeMap: ecs.NewMap1[components.Life](world),
		nextID:  1,
	}
}

// Add creates an actor and returns its entity and stable id.
func (r *Registry) Add(pos components.Position, yaw float32, prof components.Profile, wander components.Wander) (ecs.Entity, uint32) {
	id := r.nextID
	r.nextID++

	heading := components.Heading{Angle: yaw}
	life := components.Life{ID: id, Alive: true}
	entity := r.mapper.NewEntity(&pos, &heading, &wander, &prof, &life)
	r.alive++
	return entity, id
}

// Remove deletes an actor. Safe to call twice with the same entity; the
// second call is a no-op.
func (r *Registry) Remove(e ecs.Entity) {
	if !r.world.Alive(e) {
		return
	}
	if life := r.lifeMap.Get(e); life != nil && life.Alive {
		r.alive--
	}
	r.mapper.Remove(e)
}

// MarkDead flips an actor to dead exactly once and returns whether this
// call was the one that did it.
func (r *Registry) MarkDead(e ecs.Entity) bool {
	if !r.world.Alive(e) {
		return false
	}
	life := r.lifeMap.Get(e)
	if life == nil || !life.Alive {
		return false
	}
	life.Alive = false
	r.alive--
	return true
}

// AliveCount returns the number of actors that are alive (dead actors
// playing their fall are excluded).
func (r *Registry) AliveCount() int {
	return r.alive
}

// Valid reports whether the entity still exists and its actor is alive.
func (r *Registry) Valid(e ecs.Entity) bool {
	if !r.world.Alive(e) {
		return false
	}
	life := r.lifeMap.Get(e)
	return life != nil && life.Alive
}

// View returns the read-only record for an entity.
func (r *Registry) View(e ecs.Entity) (ActorView, bool) {
	if !r.world.Alive(e) {
		return ActorView{}, false
	}
	pos := r.posMap.Get(e)
	head := r.headMap.Get(e)
	prof := r.profMap.Get(e)
	life := r.lifeMap.Get(e)
	if pos == nil || head == nil || prof == nil || life == nil {
		return ActorView{}, false
	}
	return makeView(pos, head, prof, life), true
}

// Each calls fn with a view of every actor, dead ones included so the
// renderer can draw the death tumble.
func (r *Registry) Each(fn func(ActorView)) {
	query := r.filter.Query()
	for query.Next() {
		pos, head, _, prof, life := query.Get()
		fn(makeView(pos, head, prof, life))
	}
}

func makeView(pos *components.Position, head *components.Heading, prof *components.Profile, life *components.Life) ActorView {
	p := components.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z}
	return ActorView{
		ID:       life.ID,
		Species:  prof.Species,
		Points:   prof.Points,
		Position: p,
		Yaw:      head.Angle,
		Alive:    life.Alive,
		Falling:  life.Falling,
		AimPoint: components.Vec3{X: p.X, Y: p.Y + prof.AimHeight, Z: p.Z},
	}
}
