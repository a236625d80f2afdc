package config

// Escalation is the difficulty ratchet: every EscalateEvery ticks the scroll
// speed goes up by SpeedStep (capped at MaxSpeed) and the spawn interval goes
// down by IntervalStep (floored at MinSpawnInterval). It never eases within a
// session; only Reset returns it to the base values.
type Escalation struct {
	cfg      DifficultyConfig
	speed    int
	interval int
}

// NewEscalation creates a ratchet at its base values.
func NewEscalation(cfg DifficultyConfig) *Escalation {
	e := &Escalation{cfg: cfg}
	e.Reset()
	return e
}

// Reset returns speed and interval to their base values.
func (e *Escalation) Reset() {
	e.speed = e.cfg.BaseSpeed
	e.interval = e.cfg.BaseSpawnInterval
}

// Speed returns the current scroll speed in units per tick.
func (e *Escalation) Speed() int {
	return e.speed
}

// SpawnInterval returns the current number of ticks between spawns.
func (e *Escalation) SpawnInterval() int {
	return e.interval
}

// Enabled reports whether escalation is active.
func (e *Escalation) Enabled() bool {
	return e.cfg.Enabled && e.cfg.EscalateEvery > 0
}

// Observe is called once per tick with the already-incremented tick counter.
// It returns true when the ratchet moved this tick.
func (e *Escalation) Observe(tick int) bool {
	if !e.Enabled() || tick <= 0 || tick%e.cfg.EscalateEvery != 0 {
		return false
	}

	speed := min(e.speed+e.cfg.SpeedStep, e.cfg.MaxSpeed)
	interval := max(e.interval-e.cfg.IntervalStep, e.cfg.MinSpawnInterval)
	changed := speed != e.speed || interval != e.interval

	// Never ease, even with a misconfigured cap below the base
	e.speed = max(e.speed, speed)
	e.interval = min(e.interval, interval)
	return changed
}

// SpeedAt returns the speed the ratchet reaches after the given number of
// ticks, without mutating anything.
func (e *Escalation) SpeedAt(tick int) int {
	if !e.Enabled() || tick <= 0 {
		return e.cfg.BaseSpeed
	}
	steps := tick / e.cfg.EscalateEvery
	return max(e.cfg.BaseSpeed, min(e.cfg.BaseSpeed+steps*e.cfg.SpeedStep, e.cfg.MaxSpeed))
}

// IntervalAt returns the spawn interval after the given number of ticks.
func (e *Escalation) IntervalAt(tick int) int {
	if !e.Enabled() || tick <= 0 {
		return e.cfg.BaseSpawnInterval
	}
	steps := tick / e.cfg.EscalateEvery
	return min(e.cfg.BaseSpawnInterval, max(e.cfg.BaseSpawnInterval-steps*e.cfg.IntervalStep, e.cfg.MinSpawnInterval))
}
