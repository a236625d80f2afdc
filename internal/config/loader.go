package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned (wrapped) when a configuration cannot produce a
// playable field.
var ErrInvalid = errors.New("config: invalid configuration")

// Load loads the game configuration.
// Search order: customPath -> ~/.flappyduo/configs/duo.yaml -> ./configs/duo.yaml -> embedded default
func Load(customPath string) (DuoConfig, error) {
	// Start from the defaults so partial files only override what they set
	cfg := DefaultDuoConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	if userCfgPath := userConfigPath("duo.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			userCfg := DefaultDuoConfig()
			if err := yaml.Unmarshal(data, &userCfg); err == nil && userCfg.Validate() == nil {
				return userCfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "duo.yaml")); err == nil {
		localCfg := DefaultDuoConfig()
		if err := yaml.Unmarshal(data, &localCfg); err == nil && localCfg.Validate() == nil {
			return localCfg, nil
		}
	}

	embedded := DefaultDuoConfig()
	if err := yaml.Unmarshal(defaultDuoYAML, &embedded); err != nil {
		return DefaultDuoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappyduo", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *DuoConfig, preset DifficultyPreset) error {
	switch preset {
	case "", DifficultyNormal:
		cfg.Difficulty.Enabled = true
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.BaseSpeed = max(cfg.Difficulty.BaseSpeed-1, 1)
		cfg.Difficulty.BaseSpawnInterval += 20
		cfg.Difficulty.EscalateEvery *= 2
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.BaseSpeed = min(cfg.Difficulty.BaseSpeed+2, cfg.Difficulty.MaxSpeed)
		cfg.Difficulty.BaseSpawnInterval = max(cfg.Difficulty.BaseSpawnInterval-20, cfg.Difficulty.MinSpawnInterval)
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		return fmt.Errorf("%w: unknown difficulty preset %q", ErrInvalid, preset)
	}
	return nil
}

// Validate checks that the configuration describes a playable field.
func (c DuoConfig) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalid)
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field size must be positive", ErrInvalid)
	case c.Actor.Size <= 0:
		return fmt.Errorf("%w: actor size must be positive", ErrInvalid)
	case c.Obstacles.Width <= 0 || c.Obstacles.GapHeight <= 0:
		return fmt.Errorf("%w: obstacle width and gap height must be positive", ErrInvalid)
	case c.Obstacles.Margin < 0 || c.Obstacles.Overhang < 0:
		return fmt.Errorf("%w: obstacle margin and overhang must not be negative", ErrInvalid)
	case c.Obstacles.GapHeight+2*c.Obstacles.Margin > c.Field.Height:
		return fmt.Errorf("%w: gap height %d plus margins does not fit field height %d",
			ErrInvalid, c.Obstacles.GapHeight, c.Field.Height)
	case c.Difficulty.BaseSpeed <= 0:
		return fmt.Errorf("%w: base_speed must be positive", ErrInvalid)
	case c.Difficulty.MaxSpeed < c.Difficulty.BaseSpeed:
		return fmt.Errorf("%w: max_speed below base_speed", ErrInvalid)
	case c.Difficulty.MinSpawnInterval <= 0:
		return fmt.Errorf("%w: min_spawn_interval must be positive", ErrInvalid)
	case c.Difficulty.BaseSpawnInterval < c.Difficulty.MinSpawnInterval:
		return fmt.Errorf("%w: base_spawn_interval below min_spawn_interval", ErrInvalid)
	case c.Difficulty.SpeedStep < 0 || c.Difficulty.IntervalStep < 0:
		return fmt.Errorf("%w: escalation steps must not be negative", ErrInvalid)
	case c.Difficulty.Enabled && c.Difficulty.EscalateEvery <= 0:
		return fmt.Errorf("%w: escalate_every must be positive when escalation is enabled", ErrInvalid)
	}

	for i, y := range []int{c.Actor.StartY1, c.Actor.StartY2} {
		if y <= 0 || y+c.Actor.Size >= c.Field.Height {
			return fmt.Errorf("%w: start position of player %d is outside the field", ErrInvalid, i+1)
		}
	}
	return nil
}
