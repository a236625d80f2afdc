// Package config provides YAML-based game configuration loading and the
// difficulty escalation ratchet.
package config

// DuoConfig contains all configuration for the two-player game.
type DuoConfig struct {
	TickRate   int              `yaml:"tick_rate"` // Simulation ticks per second
	Field      FieldConfig      `yaml:"field"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Actor      ActorConfig      `yaml:"actor"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Input      InputConfig      `yaml:"input"`
}

// FieldConfig is the size of the playing field in world units.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig defines the per-tick integer physics.
type PhysicsConfig struct {
	Gravity     int `yaml:"gravity"`      // Added to velocity every tick
	JumpImpulse int `yaml:"jump_impulse"` // Velocity set by a jump (negative = up)
}

// ActorConfig places the birds.
type ActorConfig struct {
	X       int    `yaml:"x"`    // Fixed horizontal position
	Size    int    `yaml:"size"` // Square hit-box side
	StartY1 int    `yaml:"start_y1"`
	StartY2 int    `yaml:"start_y2"`
	Name1   string `yaml:"name1"` // Default player names
	Name2   string `yaml:"name2"`
}

// ObstacleConfig defines pipe geometry.
type ObstacleConfig struct {
	Width     int `yaml:"width"`
	GapHeight int `yaml:"gap_height"`
	Margin    int `yaml:"margin"`   // Minimum distance of the gap from top and bottom
	Overhang  int `yaml:"overhang"` // How far bottom pipes reach past the field bottom
}

// DifficultyConfig defines the escalation ratchet.
type DifficultyConfig struct {
	Enabled           bool `yaml:"enabled"`
	BaseSpeed         int  `yaml:"base_speed"`
	MaxSpeed          int  `yaml:"max_speed"`
	SpeedStep         int  `yaml:"speed_step"`
	BaseSpawnInterval int  `yaml:"base_spawn_interval"`
	MinSpawnInterval  int  `yaml:"min_spawn_interval"`
	IntervalStep      int  `yaml:"interval_step"`
	EscalateEvery     int  `yaml:"escalate_every"` // Ticks between escalation steps
}

// ScoringConfig defines the scoring line.
type ScoringConfig struct {
	LineX int `yaml:"line_x"`
}

// InputConfig tunes the terminal input adapter.
type InputConfig struct {
	ReleaseTicks int `yaml:"release_ticks"` // Quiet ticks before a key counts as released
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
