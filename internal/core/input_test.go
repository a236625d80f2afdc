package core

import "testing"

func TestActionString(t *testing.T) {
	if ActionJump2.String() != "Jump2" {
		t.Errorf("ActionJump2.String() = %q", ActionJump2.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}

func TestJumpLatchOnePressOneJump(t *testing.T) {
	var l JumpLatch

	l.Press()
	if l.State() != LatchPressedUnconsumed {
		t.Fatalf("after Press state = %v", l.State())
	}
	if !l.Consume() {
		t.Fatal("first Consume after press should yield a jump")
	}

	// Key held: repeated presses and consumes yield nothing
	for i := 0; i < 10; i++ {
		l.Press()
		if l.Consume() {
			t.Fatalf("held key produced a second jump at iteration %d", i)
		}
	}

	l.Release()
	if l.State() != LatchReleased {
		t.Fatalf("after Release state = %v", l.State())
	}

	l.Press()
	if !l.Consume() {
		t.Error("press after release should yield a new jump")
	}
}

func TestJumpLatchPressReleaseWithinTick(t *testing.T) {
	var l JumpLatch

	l.Press()
	l.Release()
	if !l.Consume() {
		t.Fatal("a tap inside one tick should still count once")
	}
	if l.State() != LatchReleased {
		t.Errorf("tap should leave the latch released, got %v", l.State())
	}
	if l.Consume() {
		t.Error("tap must not count twice")
	}
}

func TestJumpLatchReleaseWithoutPress(t *testing.T) {
	var l JumpLatch
	l.Release()
	if l.Consume() {
		t.Error("release alone must not produce a jump")
	}
}

func TestJumpLatchReset(t *testing.T) {
	var l JumpLatch
	l.Press()
	l.Reset()
	if l.Consume() {
		t.Error("Reset should drop the pending edge")
	}
	if l.State() != LatchReleased {
		t.Errorf("after Reset state = %v", l.State())
	}
}

func TestHoldTrackerReleasesAfterQuietTicks(t *testing.T) {
	var l JumpLatch
	h := NewHoldTracker(&l, 3)

	h.KeyEvent()
	if !l.Consume() {
		t.Fatal("key event should produce a jump edge")
	}

	// Auto-repeat keeps the key held
	for i := 0; i < 5; i++ {
		h.Tick()
		h.KeyEvent()
		if l.Consume() {
			t.Fatalf("auto-repeat produced a jump at tick %d", i)
		}
	}

	// Quiet for three ticks releases
	h.Tick()
	h.Tick()
	if !h.Held() {
		t.Fatal("key should still be held after two quiet ticks")
	}
	h.Tick()
	if h.Held() {
		t.Fatal("key should be released after three quiet ticks")
	}

	h.KeyEvent()
	if !l.Consume() {
		t.Error("press after release should produce a new edge")
	}
}

func TestHoldTrackerMinimumWindow(t *testing.T) {
	var l JumpLatch
	h := NewHoldTracker(&l, 0)

	h.KeyEvent()
	l.Consume()
	h.Tick()
	if h.Held() {
		t.Error("release window is at least one tick")
	}
}
