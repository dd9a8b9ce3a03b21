package camera

import (
	"github.com/chewxy/math32"

	"github.com/playablehq/stagfall/components"
)

// Shake is decaying positional jitter layered onto the active pose after a
// shot. Cosmetic only: aim rays are built from the unshaken rig, so firing
// during the wobble still hits what the crosshair says.
type Shake struct {
	Amplitude float32 // meters at full strength
	Duration  float32 // seconds
	Frequency float32 // oscillations per second

	remaining float32
	elapsed   float32
}

// Trigger restarts the shake window at full amplitude.
func (s *Shake) Trigger() {
	s.remaining = s.Duration
	s.elapsed = 0
}

// Advance runs the shake clock one frame.
func (s *Shake) Advance(dt float32) {
	if s.remaining <= 0 {
		return
	}
	s.remaining -= dt
	s.elapsed += dt
}

// Active reports whether the shake window is still running.
func (s *Shake) Active() bool {
	return s.remaining > 0
}

// Offset returns the current jitter. Amplitude fades linearly to zero over
// the window; the two axes run out of phase so the motion reads as a wobble
// rather than a straight line.
func (s *Shake) Offset() components.Vec3 {
	if s.remaining <= 0 || s.Duration <= 0 {
		return components.Vec3{}
	}
	a := s.Amplitude * (s.remaining / s.Duration)
	t := s.elapsed * s.Frequency * 2 * math32.Pi
	return components.Vec3{
		X: math32.Sin(t) * a,
		Y: math32.Sin(t*1.3+1.7) * a,
	}
}

// Apply returns the pose displaced by the current shake offset.
func (s *Shake) Apply(p Pose) Pose {
	off := s.Offset()
	p.Position = p.Position.Add(off)
	return p
}
