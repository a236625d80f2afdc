package flappyduo

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-duo/internal/config"
)

// MaxNameLength is the longest accepted player name, in runes.
const MaxNameLength = 10

// ErrWrongPhase is returned when a session operation is called in a phase
// where it has no meaning. The session is left unchanged.
var ErrWrongPhase = errors.New("flappyduo: operation not allowed in current phase")

// Phase is the top-level state of a session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "Menu"
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Recorder observes a session for replays. All calls happen on the tick
// goroutine and must not block.
type Recorder interface {
	// Begin is called when a world is created.
	Begin(seed int64, names [NumPlayers]string)
	// Input is called for every simulated tick that carried a jump edge.
	// tick is the number the world will have after this step.
	Input(tick int, jumps [NumPlayers]bool)
	// End is called once when the game is over.
	End(final Snapshot)
}

// Session is the Menu -> Playing -> GameOver -> Menu state machine that owns
// at most one World and is the only entry point for external input.
type Session struct {
	cfg      config.DuoConfig
	logger   *log.Logger
	phase    Phase
	names    [NumPlayers]string
	world    *World
	paused   bool
	seeds    func() int64
	recorder Recorder
}

// NewSession creates a session in the Menu phase with the configured
// default player names. A nil logger discards log output.
func NewSession(cfg config.DuoConfig, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		cfg:    cfg,
		logger: logger,
		phase:  PhaseMenu,
		names:  [NumPlayers]string{cfg.Actor.Name1, cfg.Actor.Name2},
		seeds:  func() int64 { return time.Now().UnixNano() },
	}
}

// SetSeedSource overrides where new worlds get their RNG seed.
func (s *Session) SetSeedSource(fn func() int64) {
	if fn != nil {
		s.seeds = fn
	}
}

// SetRecorder attaches a replay recorder; nil detaches it.
func (s *Session) SetRecorder(r Recorder) {
	s.recorder = r
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Paused reports whether a running game is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Names returns the current player names.
func (s *Session) Names() [NumPlayers]string {
	return s.names
}

// SetNames updates player names. Empty (after sanitizing) names keep the
// previous value. Only allowed in the menu.
func (s *Session) SetNames(name1, name2 string) error {
	if s.phase != PhaseMenu {
		return s.reject("set names")
	}
	s.setNames(name1, name2)
	return nil
}

func (s *Session) setNames(name1, name2 string) {
	for i, n := range []string{name1, name2} {
		if clean := SanitizeName(n); clean != "" {
			s.names[i] = clean
		}
	}
}

// Start begins a new game with a fresh seed.
func (s *Session) Start(name1, name2 string) error {
	if s.phase != PhaseMenu {
		return s.reject("start")
	}
	return s.StartWithSeed(name1, name2, s.seeds())
}

// StartWithSeed begins a new game with a given seed, for replays and tests.
func (s *Session) StartWithSeed(name1, name2 string, seed int64) error {
	if s.phase != PhaseMenu {
		return s.reject("start")
	}

	s.setNames(name1, name2)
	s.world = NewWorld(s.cfg, s.names, seed)
	s.phase = PhasePlaying
	s.paused = false
	if s.recorder != nil {
		s.recorder.Begin(seed, s.names)
	}

	s.logger.Info("session started",
		"player1", s.names[0],
		"player2", s.names[1],
		"seed", seed,
	)
	return nil
}

// Tick advances the running game by one fixed step with the debounced jump
// edges for both players. While paused nothing advances and the edges are
// dropped.
func (s *Session) Tick(jump1, jump2 bool) (TickEvents, error) {
	if s.phase != PhasePlaying {
		return TickEvents{}, s.reject("tick")
	}
	if s.paused {
		return TickEvents{}, nil
	}

	jumps := [NumPlayers]bool{jump1, jump2}
	if s.recorder != nil && (jump1 || jump2) {
		s.recorder.Input(s.world.Tick()+1, jumps)
	}

	ev := s.world.Step(jumps)
	if ev.Escalated {
		s.logger.Debug("difficulty escalated",
			"tick", s.world.Tick(),
			"speed", s.world.Speed(),
			"spawn_interval", s.world.SpawnInterval(),
		)
	}

	if ev.GameOver {
		s.phase = PhaseGameOver
		snap := s.Snapshot()
		if s.recorder != nil {
			s.recorder.End(snap)
		}
		s.logger.Info("game over",
			"ticks", snap.Tick,
			"score1", snap.Scores[0],
			"score2", snap.Scores[1],
		)
	}
	return ev, nil
}

// TogglePause pauses or resumes a running game.
func (s *Session) TogglePause() error {
	if s.phase != PhasePlaying {
		return s.reject("pause")
	}
	s.paused = !s.paused
	return nil
}

// Restart returns from the game-over screen to the menu, keeping names.
func (s *Session) Restart() error {
	if s.phase != PhaseGameOver {
		return s.reject("restart")
	}
	s.ResetToMenu()
	return nil
}

// ResetToMenu discards the world from any phase. It is the abort path for a
// running game and is only ever called between ticks.
func (s *Session) ResetToMenu() {
	if s.phase == PhasePlaying {
		s.logger.Info("session aborted", "tick", s.world.Tick())
	}
	s.world = nil
	s.paused = false
	s.phase = PhaseMenu
}

// Snapshot returns an immutable view of the session. In the menu it only
// carries the phase, field geometry and player names.
func (s *Session) Snapshot() Snapshot {
	if s.world == nil {
		snap := Snapshot{
			Phase:         s.phase,
			FieldW:        s.cfg.Field.Width,
			FieldH:        s.cfg.Field.Height,
			ScoringLine:   s.cfg.Scoring.LineX,
			Speed:         s.cfg.Difficulty.BaseSpeed,
			SpawnInterval: s.cfg.Difficulty.BaseSpawnInterval,
		}
		for i := range NumPlayers {
			snap.Actors[i].Name = s.names[i]
		}
		return snap
	}

	snap := s.world.Snapshot()
	snap.Phase = s.phase
	snap.Paused = s.paused
	return snap
}

func (s *Session) reject(op string) error {
	s.logger.Debug("rejected session call", "op", op, "phase", s.phase)
	return fmt.Errorf("%w: %s in %s", ErrWrongPhase, op, s.phase)
}

// SanitizeName keeps letters, digits and spaces, trims the result and cuts
// it to MaxNameLength runes.
func SanitizeName(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range name {
		if n == MaxNameLength {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
			n++
		}
	}
	return strings.TrimSpace(b.String())
}
