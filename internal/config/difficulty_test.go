package config

import "testing"

func TestEscalationRatchet(t *testing.T) {
	e := NewEscalation(DefaultDuoConfig().Difficulty)

	if e.Speed() != 5 || e.SpawnInterval() != 100 {
		t.Fatalf("base values = (%d, %d), expected (5, 100)", e.Speed(), e.SpawnInterval())
	}

	for tick := 1; tick < 500; tick++ {
		if e.Observe(tick) {
			t.Fatalf("ratchet moved early at tick %d", tick)
		}
	}
	if !e.Observe(500) {
		t.Fatal("ratchet should move at tick 500")
	}
	if e.Speed() != 6 || e.SpawnInterval() != 95 {
		t.Errorf("after first step = (%d, %d), expected (6, 95)", e.Speed(), e.SpawnInterval())
	}
}

func TestEscalationCapsAndFloors(t *testing.T) {
	e := NewEscalation(DefaultDuoConfig().Difficulty)

	prevSpeed, prevInterval := e.Speed(), e.SpawnInterval()
	for tick := 1; tick <= 20000; tick++ {
		e.Observe(tick)
		if e.Speed() < prevSpeed || e.SpawnInterval() > prevInterval {
			t.Fatalf("ratchet eased at tick %d", tick)
		}
		if e.Speed() > 12 {
			t.Fatalf("speed %d exceeds cap at tick %d", e.Speed(), tick)
		}
		if e.SpawnInterval() < 40 {
			t.Fatalf("interval %d below floor at tick %d", e.SpawnInterval(), tick)
		}
		if e.Speed() != e.SpeedAt(tick) || e.SpawnInterval() != e.IntervalAt(tick) {
			t.Fatalf("incremental and closed form disagree at tick %d", tick)
		}
		prevSpeed, prevInterval = e.Speed(), e.SpawnInterval()
	}

	if e.Speed() != 12 || e.SpawnInterval() != 40 {
		t.Errorf("final values = (%d, %d), expected (12, 40)", e.Speed(), e.SpawnInterval())
	}
}

func TestEscalationDisabled(t *testing.T) {
	cfg := DefaultDuoConfig().Difficulty
	cfg.Enabled = false
	e := NewEscalation(cfg)

	for tick := 1; tick <= 5000; tick++ {
		e.Observe(tick)
	}
	if e.Speed() != 5 || e.SpawnInterval() != 100 {
		t.Errorf("disabled ratchet moved to (%d, %d)", e.Speed(), e.SpawnInterval())
	}
	if e.SpeedAt(5000) != 5 || e.IntervalAt(5000) != 100 {
		t.Error("closed form should ignore ticks when disabled")
	}
}

func TestEscalationReset(t *testing.T) {
	e := NewEscalation(DefaultDuoConfig().Difficulty)
	for tick := 1; tick <= 1500; tick++ {
		e.Observe(tick)
	}
	e.Reset()
	if e.Speed() != 5 || e.SpawnInterval() != 100 {
		t.Errorf("Reset() = (%d, %d), expected base values", e.Speed(), e.SpawnInterval())
	}
}
