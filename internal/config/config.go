// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import "fmt"

// ElementrisConfig contains all configuration for the Elementris game.
type ElementrisConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Layout     []string         `yaml:"layout,omitempty"` // Optional starting board, top row first
}

// GridConfig defines the playfield geometry.
type GridConfig struct {
	Columns  int     `yaml:"columns"`
	Rows     int     `yaml:"rows"`
	CellSize float64 `yaml:"cell_size"` // World units per cell
}

// PhysicsConfig defines gravity parameters, in world units per tick.
type PhysicsConfig struct {
	FallSpeed     float64 `yaml:"fall_speed"`
	SoftDropSpeed float64 `yaml:"soft_drop_speed"` // Extra distance per soft-drop input
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "landings", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Landings/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to fall speed at max difficulty
}

// Progression types.
const (
	ProgressionLandings = "landings"
	ProgressionTime     = "time"
	ProgressionNone     = "none"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a DifficultyPreset.
// An empty string selects DifficultyNormal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
