package flappyduo

import (
	"errors"
	"testing"

	"github.com/vovakirdan/flappy-duo/internal/config"
)

type fakeRecorder struct {
	seed   int64
	names  [NumPlayers]string
	inputs map[int][NumPlayers]bool
	ends   []Snapshot
}

func (r *fakeRecorder) Begin(seed int64, names [NumPlayers]string) {
	r.seed = seed
	r.names = names
	r.inputs = make(map[int][NumPlayers]bool)
}

func (r *fakeRecorder) Input(tick int, jumps [NumPlayers]bool) {
	r.inputs[tick] = jumps
}

func (r *fakeRecorder) End(final Snapshot) {
	r.ends = append(r.ends, final)
}

func newTestSession() *Session {
	s := NewSession(config.DefaultDuoConfig(), nil)
	s.SetSeedSource(func() int64 { return 1234 })
	return s
}

// runToGameOver ticks with no input until the session leaves Playing.
func runToGameOver(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 1000 && s.Phase() == PhasePlaying; i++ {
		if _, err := s.Tick(false, false); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected GameOver", s.Phase())
	}
}

func TestNewSessionStartsInMenu(t *testing.T) {
	s := newTestSession()
	if s.Phase() != PhaseMenu {
		t.Fatalf("phase = %v", s.Phase())
	}
	if s.Names() != [NumPlayers]string{"Player 1", "Player 2"} {
		t.Errorf("default names = %v", s.Names())
	}

	snap := s.Snapshot()
	if snap.Phase != PhaseMenu || snap.Actors[0].Name != "Player 1" {
		t.Errorf("menu snapshot = %+v", snap)
	}
	if snap.FieldW != 800 || snap.FieldH != 600 {
		t.Errorf("menu snapshot field = %dx%d", snap.FieldW, snap.FieldH)
	}
}

func TestSessionRejectsWrongPhase(t *testing.T) {
	s := newTestSession()

	tests := []struct {
		name string
		call func() error
	}{
		{"tick in menu", func() error { _, err := s.Tick(true, false); return err }},
		{"pause in menu", s.TogglePause},
		{"restart in menu", s.Restart},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, ErrWrongPhase) {
				t.Errorf("error = %v, expected ErrWrongPhase", err)
			}
			if s.Phase() != PhaseMenu {
				t.Errorf("rejected call changed phase to %v", s.Phase())
			}
		})
	}

	if err := s.Start("A", "B"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start("C", "D"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("second Start error = %v", err)
	}
	if err := s.SetNames("C", "D"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("SetNames while playing error = %v", err)
	}
	if err := s.Restart(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Restart while playing error = %v", err)
	}
	if s.Names() != [NumPlayers]string{"A", "B"} {
		t.Errorf("rejected calls changed names to %v", s.Names())
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestSession()
	if err := s.Start("Ann", "Bob"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Phase() != PhasePlaying {
		t.Fatalf("phase after Start = %v", s.Phase())
	}
	if seed := s.Snapshot().Seed; seed != 1234 {
		t.Errorf("seed = %d, expected the seed source value", seed)
	}

	runToGameOver(t, s)
	if _, err := s.Tick(true, true); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Tick after game over error = %v", err)
	}

	final := s.Snapshot()
	if final.Phase != PhaseGameOver || final.AliveCount() != 0 {
		t.Errorf("final snapshot phase=%v alive=%d", final.Phase, final.AliveCount())
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Phase() != PhaseMenu {
		t.Errorf("phase after Restart = %v", s.Phase())
	}
	if s.Names() != [NumPlayers]string{"Ann", "Bob"} {
		t.Errorf("names after Restart = %v", s.Names())
	}
}

func TestSessionPause(t *testing.T) {
	s := newTestSession()
	if err := s.Start("", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Tick(false, false); err != nil {
		t.Fatal(err)
	}

	if err := s.TogglePause(); err != nil {
		t.Fatal(err)
	}
	before := s.Snapshot()
	if !before.Paused {
		t.Fatal("snapshot should report paused")
	}
	for i := 0; i < 50; i++ {
		ev, err := s.Tick(true, true)
		if err != nil {
			t.Fatalf("paused Tick: %v", err)
		}
		if ev.Any() {
			t.Fatalf("paused tick produced events: %+v", ev)
		}
	}
	after := s.Snapshot()
	if after.Tick != before.Tick || after.Actors != before.Actors {
		t.Error("paused session advanced")
	}

	if err := s.TogglePause(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Tick(false, false); err != nil {
		t.Fatal(err)
	}
	if s.Snapshot().Tick != before.Tick+1 {
		t.Error("resumed session should advance")
	}
}

func TestSessionResetToMenu(t *testing.T) {
	s := newTestSession()
	if err := s.Start("Ann", "Bob"); err != nil {
		t.Fatal(err)
	}
	s.Tick(false, false)
	s.TogglePause()

	s.ResetToMenu()
	if s.Phase() != PhaseMenu || s.Paused() {
		t.Errorf("after ResetToMenu: phase=%v paused=%v", s.Phase(), s.Paused())
	}
	if err := s.Start("", ""); err != nil {
		t.Fatalf("Start after reset: %v", err)
	}
	if s.Snapshot().Tick != 0 {
		t.Error("new game should start from tick 0")
	}
}

func TestSessionNames(t *testing.T) {
	s := newTestSession()
	if err := s.SetNames("Ann", ""); err != nil {
		t.Fatal(err)
	}
	if s.Names() != [NumPlayers]string{"Ann", "Player 2"} {
		t.Errorf("empty name should keep the previous one: %v", s.Names())
	}

	if err := s.StartWithSeed("!!!", "Bobby Tables 42", 5); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if snap.Actors[0].Name != "Ann" || snap.Actors[1].Name != "Bobby Tabl" {
		t.Errorf("names in world = %v", snap.Names())
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"Alice", "Alice"},
		{"  Alice!! ", "Alice"},
		{"ABCDEFGHIJKLM", "ABCDEFGHIJ"},
		{"a_b-c", "abc"},
		{"Zoë 2", "Zoë 2"},
		{"", ""},
		{"   ", ""},
		{"@#$%", ""},
	}

	for _, tc := range tests {
		if got := SanitizeName(tc.in); got != tc.expected {
			t.Errorf("SanitizeName(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestSessionRecorder(t *testing.T) {
	s := newTestSession()
	rec := &fakeRecorder{}
	s.SetRecorder(rec)

	if err := s.StartWithSeed("Ann", "Bob", 77); err != nil {
		t.Fatal(err)
	}
	if rec.seed != 77 || rec.names != [NumPlayers]string{"Ann", "Bob"} {
		t.Errorf("Begin got seed=%d names=%v", rec.seed, rec.names)
	}

	s.Tick(true, false)
	s.Tick(false, false)
	s.Tick(false, true)
	if len(rec.inputs) != 2 {
		t.Errorf("recorded %d input ticks, expected 2", len(rec.inputs))
	}
	if rec.inputs[1] != [NumPlayers]bool{true, false} || rec.inputs[3] != [NumPlayers]bool{false, true} {
		t.Errorf("inputs = %v", rec.inputs)
	}

	runToGameOver(t, s)
	if len(rec.ends) != 1 {
		t.Fatalf("End called %d times, expected 1", len(rec.ends))
	}
	if rec.ends[0].Phase != PhaseGameOver || rec.ends[0].Tick != s.Snapshot().Tick {
		t.Errorf("End snapshot = %+v", rec.ends[0])
	}
}

func TestSessionSameSeedSameGame(t *testing.T) {
	play := func() Snapshot {
		s := NewSession(config.DefaultDuoConfig(), nil)
		if err := s.StartWithSeed("A", "B", 2024); err != nil {
			t.Fatal(err)
		}
		pilot := NewPilot(1, 1)
		for i := 0; i < 2000 && s.Phase() == PhasePlaying; i++ {
			snap := s.Snapshot()
			if _, err := s.Tick(pilot.Decide(snap, 0), pilot.Decide(snap, 1)); err != nil {
				t.Fatal(err)
			}
		}
		return s.Snapshot()
	}

	a, b := play(), play()
	if a.Tick != b.Tick || a.Scores != b.Scores || a.Actors != b.Actors {
		t.Errorf("runs diverged: tick %d/%d scores %v/%v", a.Tick, b.Tick, a.Scores, b.Scores)
	}
}
