package game

import "github.com/google/uuid"

// Hooks are fire-and-forget notifications for the presentation layer
// (HUD counters, audio stings, the end card). Nil hooks are skipped; the
// simulation never blocks on them.
type Hooks struct {
	ScoreChanged    func(score int)
	ShotFired       func()
	Hit             func(actor ActorView, points int)
	Miss            func()
	SessionComplete func(score int)
}

// Session tracks one play-through from first spawn to the terminal state.
type Session struct {
	ID     uuid.UUID
	Score  int
	Kills  int
	Target int

	terminal bool
	ctaTimer float32
	ctaFired bool
}

func newSession(target int) *Session {
	return &Session{ID: uuid.New(), Target: target}
}

// RecordKill adds a confirmed kill and reports whether it just reached
// the target. The terminal flip happens at most once.
func (s *Session) RecordKill(points int) bool {
	if s.terminal {
		return false
	}
	s.Kills++
	s.Score += points
	if s.Kills >= s.Target {
		s.terminal = true
		return true
	}
	return false
}

// Terminal reports whether the kill target has been reached.
func (s *Session) Terminal() bool { return s.terminal }

// TickTerminal advances the delay between the final kill and the end
// card. Returns true exactly once, when the delay elapses.
func (s *Session) TickTerminal(dt, delay float32) bool {
	if !s.terminal || s.ctaFired {
		return false
	}
	s.ctaTimer += dt
	if s.ctaTimer >= delay {
		s.ctaFired = true
		return true
	}
	return false
}

// EndCardShown reports whether the terminal delay has already elapsed.
func (s *Session) EndCardShown() bool { return s.ctaFired }
