package game

import "testing"

func TestSession_RecordKillReachesTargetOnce(t *testing.T) {
	s := newSession(2)

	if s.Terminal() {
		t.Fatal("fresh session must not be terminal")
	}
	if s.RecordKill(10) {
		t.Fatal("first of two kills must not reach the target")
	}
	if !s.RecordKill(25) {
		t.Fatal("second kill must reach the target")
	}
	if !s.Terminal() {
		t.Fatal("session must be terminal at the kill target")
	}
	if s.Score != 35 || s.Kills != 2 {
		t.Fatalf("score %d kills %d, want 35 and 2", s.Score, s.Kills)
	}

	// Late kills are refused and change nothing
	if s.RecordKill(10) {
		t.Fatal("kill after terminal must be refused")
	}
	if s.Score != 35 || s.Kills != 2 {
		t.Fatalf("late kill mutated the session: score %d kills %d", s.Score, s.Kills)
	}
}

func TestSession_TickTerminalFiresOnce(t *testing.T) {
	s := newSession(1)
	dt := float32(1.0 / 60.0)

	if s.TickTerminal(dt, 0.9) {
		t.Fatal("cta must not fire before the session is terminal")
	}

	s.RecordKill(10)
	fired := 0
	for i := 0; i < 120; i++ {
		if s.TickTerminal(dt, 0.9) {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("cta fired %d times, want exactly once", fired)
	}
	if !s.EndCardShown() {
		t.Fatal("end card must be marked shown after the cta fires")
	}
}
