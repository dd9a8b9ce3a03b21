package renderer

import (
	"math/rand"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxImpactParticles = 96

// ImpactBurst is a small CPU particle pool for hit feedback: dust and tuft
// fragments kicked up where the bullet lands. Bursts overlap safely; dead
// slots are recycled oldest-first.
type ImpactBurst struct {
	particles [maxImpactParticles]impactParticle
	rng       *rand.Rand
}

type impactParticle struct {
	pos  rl.Vector3
	vel  rl.Vector3
	life float32 // seconds remaining
	max  float32
	size float32
	col  rl.Color
}

// Spawn kicks off one burst at the impact point.
func (b *ImpactBurst) Spawn(at rl.Vector3) {
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(1))
	}
	dust := rl.Color{R: 148, G: 126, B: 96, A: 255}  // kicked-up dirt
	tuft := rl.Color{R: 96, G: 128, B: 66, A: 255}   // grass fragments
	spark := rl.Color{R: 235, G: 210, B: 150, A: 255}

	n := 0
	for i := range b.particles {
		if n >= 26 {
			break
		}
		p := &b.particles[i]
		if p.life > 0 {
			continue
		}
		yaw := b.rng.Float32() * 2 * math32.Pi
		up := 0.35 + b.rng.Float32()*0.65 // bias upward
		speed := 1.6 + b.rng.Float32()*2.6
		p.pos = at
		p.vel = rl.Vector3{
			X: math32.Cos(yaw) * speed * (1 - up),
			Y: up * speed * 1.6,
			Z: math32.Sin(yaw) * speed * (1 - up),
		}
		p.max = 0.35 + b.rng.Float32()*0.4
		p.life = p.max
		p.size = 0.035 + b.rng.Float32()*0.08
		switch n % 5 {
		case 0:
			p.col = tuft
		case 1:
			p.col = spark
		default:
			p.col = dust
		}
		n++
	}
}

// Advance integrates live particles with simple gravity.
func (b *ImpactBurst) Advance(dt float32) {
	const gravity = 7.5
	for i := range b.particles {
		p := &b.particles[i]
		if p.life <= 0 {
			continue
		}
		p.life -= dt
		p.vel.Y -= gravity * dt
		p.pos.X += p.vel.X * dt
		p.pos.Y += p.vel.Y * dt
		p.pos.Z += p.vel.Z * dt
	}
}

// Draw renders live particles as tiny cubes fading with remaining life.
func (b *ImpactBurst) Draw() {
	for i := range b.particles {
		p := &b.particles[i]
		if p.life <= 0 {
			continue
		}
		a := p.life / p.max
		rl.DrawCubeV(p.pos, rl.NewVector3(p.size, p.size, p.size), rl.Fade(p.col, a))
	}
}
