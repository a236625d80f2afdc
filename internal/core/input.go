package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionJump1              // Space - player 1 flaps
	ActionJump2              // Up arrow - player 2 flaps
	ActionConfirm            // Enter - start in menu, back to menu after game over
	ActionSwitchField        // Tab - switch name field in menu
	ActionPause              // P - pause/unpause
	ActionBack               // Esc - abort the running session
	ActionQuit               // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump1:
		return "Jump1"
	case ActionJump2:
		return "Jump2"
	case ActionConfirm:
		return "Confirm"
	case ActionSwitchField:
		return "SwitchField"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// LatchState is the state of a JumpLatch.
type LatchState int

const (
	LatchReleased         LatchState = iota // key up, next press is an edge
	LatchPressedUnconsumed                  // key went down, edge not yet delivered
	LatchPressedConsumed                    // edge delivered, waiting for key up
)

// String returns the state name.
func (s LatchState) String() string {
	switch s {
	case LatchReleased:
		return "Released"
	case LatchPressedUnconsumed:
		return "PressedUnconsumed"
	case LatchPressedConsumed:
		return "PressedConsumed"
	default:
		return "Unknown"
	}
}

// JumpLatch turns a key level into one jump edge per press-release cycle.
// The simulation only ever sees the clean edges returned by Consume.
type JumpLatch struct {
	state LatchState
	// releasedEarly records a release that arrived before the edge was
	// consumed, so the press still counts once.
	releasedEarly bool
}

// State returns the current latch state.
func (l *JumpLatch) State() LatchState {
	return l.state
}

// Press records the key going (or staying) down.
func (l *JumpLatch) Press() {
	if l.state == LatchReleased {
		l.state = LatchPressedUnconsumed
		l.releasedEarly = false
	}
}

// Release records the key going up.
func (l *JumpLatch) Release() {
	switch l.state {
	case LatchPressedUnconsumed:
		l.releasedEarly = true
	case LatchPressedConsumed:
		l.state = LatchReleased
	}
}

// Consume returns true if a jump edge is pending and marks it delivered.
func (l *JumpLatch) Consume() bool {
	if l.state != LatchPressedUnconsumed {
		return false
	}
	if l.releasedEarly {
		l.state = LatchReleased
		l.releasedEarly = false
	} else {
		l.state = LatchPressedConsumed
	}
	return true
}

// Reset returns the latch to Released, dropping any pending edge.
func (l *JumpLatch) Reset() {
	l.state = LatchReleased
	l.releasedEarly = false
}

// HoldTracker emulates key-up events for terminals, which only report key
// presses (plus auto-repeat). A key counts as released once releaseTicks
// ticks pass without another press event for it.
type HoldTracker struct {
	releaseTicks int
	latch        *JumpLatch
	idle         int
	down         bool
}

// NewHoldTracker creates a tracker feeding the given latch.
func NewHoldTracker(latch *JumpLatch, releaseTicks int) *HoldTracker {
	return &HoldTracker{
		releaseTicks: max(releaseTicks, 1),
		latch:        latch,
	}
}

// KeyEvent records a press (or auto-repeat) of the tracked key.
func (h *HoldTracker) KeyEvent() {
	h.down = true
	h.idle = 0
	h.latch.Press()
}

// Tick advances the tracker one simulation tick, releasing the latch when
// the key has been quiet long enough.
func (h *HoldTracker) Tick() {
	if !h.down {
		return
	}
	h.idle++
	if h.idle >= h.releaseTicks {
		h.down = false
		h.idle = 0
		h.latch.Release()
	}
}

// Held reports whether the key is currently considered down.
func (h *HoldTracker) Held() bool {
	return h.down
}
