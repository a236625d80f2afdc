package config

import (
	_ "embed"
)

//go:embed defaults/duo.yaml
var defaultDuoYAML []byte

// DefaultDuoConfig returns the built-in configuration. It mirrors
// defaults/duo.yaml and is used when the embedded file cannot be parsed.
func DefaultDuoConfig() DuoConfig {
	return DuoConfig{
		TickRate: 50,
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity:     1,
			JumpImpulse: -12,
		},
		Actor: ActorConfig{
			X:       100,
			Size:    20,
			StartY1: 300,
			StartY2: 350,
			Name1:   "Player 1",
			Name2:   "Player 2",
		},
		Obstacles: ObstacleConfig{
			Width:     50,
			GapHeight: 150,
			Margin:    50,
			Overhang:  100,
		},
		Difficulty: DifficultyConfig{
			Enabled:           true,
			BaseSpeed:         5,
			MaxSpeed:          12,
			SpeedStep:         1,
			BaseSpawnInterval: 100,
			MinSpawnInterval:  40,
			IntervalStep:      5,
			EscalateEvery:     500,
		},
		Scoring: ScoringConfig{
			LineX: 100,
		},
		Input: InputConfig{
			ReleaseTicks: 3,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDuoYAML
}
