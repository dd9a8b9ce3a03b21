package renderer

import (
	"math/rand"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/playablehq/stagfall/systems"
)

type propKind uint8

const (
	propConifer propKind = iota
	propBroadleaf
	propRock
	propTuft
)

// prop is one piece of static scenery, placed once per session.
type prop struct {
	kind  propKind
	pos   rl.Vector3 // ground point
	scale float32
	col   rl.Color
	col2  rl.Color
}

// scatterProps dresses the world deterministically from the session rng:
// trees and rocks outside the spawn band so animals never clip through
// them, grass tufts everywhere. Trees skip steep ground.
func scatterProps(field *systems.HeightField, bounds systems.Bounds, rng *rand.Rand) []prop {
	extent := bounds.RadiusMax + worldMargin - 2

	// Pad the band so canopies overhanging the edge still clear the paths.
	pad := bounds
	pad.RadiusMin -= 1.5
	pad.RadiusMax += 1.5
	pad.HalfAngle += 0.05

	props := make([]prop, 0, 130)
	place := func(n int, minStandDist float32, avoidBand, needFlat bool, build func(x, y, z float32) prop) {
		for tries := 0; n > 0 && tries < n*40; tries++ {
			x := bounds.StandX + (rng.Float32()*2-1)*extent
			z := bounds.StandZ + (rng.Float32()*2-1)*extent
			if math32.Hypot(x-bounds.StandX, z-bounds.StandZ) < minStandDist {
				continue
			}
			if avoidBand && pad.Contains(x, z) {
				continue
			}
			if needFlat {
				if _, ny, _ := field.NormalAt(x, z); ny < 0.78 {
					continue
				}
			}
			props = append(props, build(x, field.HeightAt(x, z), z))
			n--
		}
	}

	conifer := rl.Color{R: 44, G: 86, B: 52, A: 255}   // pine green
	broadleaf := rl.Color{R: 74, G: 112, B: 48, A: 255}
	bark := rl.Color{R: 92, G: 70, B: 50, A: 255}
	stone := rl.Color{R: 128, G: 124, B: 118, A: 255}
	grass := rl.Color{R: 92, G: 124, B: 62, A: 255}

	place(30, 8, true, true, func(x, y, z float32) prop {
		return prop{propConifer, rl.NewVector3(x, y, z), 0.8 + rng.Float32()*0.7, shade(conifer, rng), bark}
	})
	place(16, 8, true, true, func(x, y, z float32) prop {
		return prop{propBroadleaf, rl.NewVector3(x, y, z), 0.7 + rng.Float32()*0.6, shade(broadleaf, rng), bark}
	})
	place(14, 6, true, false, func(x, y, z float32) prop {
		return prop{propRock, rl.NewVector3(x, y, z), 0.3 + rng.Float32()*0.8, shade(stone, rng), stone}
	})
	place(60, 3, false, false, func(x, y, z float32) prop {
		return prop{propTuft, rl.NewVector3(x, y, z), 0.6 + rng.Float32()*0.8, shade(grass, rng), grass}
	})
	return props
}

// shade jitters a palette color so identical props do not read as clones.
func shade(c rl.Color, rng *rand.Rand) rl.Color {
	d := int16(rng.Intn(29)) - 14
	return rl.Color{
		R: clampU8(int16(c.R)+d, 0, 255),
		G: clampU8(int16(c.G)+d, 0, 255),
		B: clampU8(int16(c.B)+d, 0, 255),
		A: 255,
	}
}

func (p *prop) draw() {
	s := p.scale
	switch p.kind {
	case propConifer:
		rl.DrawCylinder(p.pos, 0.09*s, 0.15*s, 1.1*s, 7, p.col2)
		rl.DrawCylinder(rl.NewVector3(p.pos.X, p.pos.Y+0.9*s, p.pos.Z), 0, 1.15*s, 1.7*s, 7, p.col)
		rl.DrawCylinder(rl.NewVector3(p.pos.X, p.pos.Y+2.0*s, p.pos.Z), 0, 0.8*s, 1.4*s, 7, p.col)
	case propBroadleaf:
		rl.DrawCylinder(p.pos, 0.1*s, 0.16*s, 1.6*s, 7, p.col2)
		rl.DrawSphere(rl.NewVector3(p.pos.X, p.pos.Y+2.1*s, p.pos.Z), 1.2*s, p.col)
	case propRock:
		rl.DrawSphere(rl.NewVector3(p.pos.X, p.pos.Y+0.25*s, p.pos.Z), 0.55*s, p.col)
	case propTuft:
		size := rl.NewVector3(0.3*s, 0.22*s, 0.04*s)
		at := rl.NewVector3(p.pos.X, p.pos.Y+0.1*s, p.pos.Z)
		rl.DrawCubeV(at, size, p.col)
		rl.DrawCubeV(at, rl.NewVector3(size.Z, size.Y, size.X), p.col)
	}
}
