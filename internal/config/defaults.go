package config

import (
	_ "embed"
)

//go:embed defaults/elementris.yaml
var defaultElementrisYAML []byte

// DefaultElementrisYAML returns the embedded default configuration file.
func DefaultElementrisYAML() []byte {
	out := make([]byte, len(defaultElementrisYAML))
	copy(out, defaultElementrisYAML)
	return out
}

// DefaultElementrisConfig returns the default Elementris configuration.
// The playfield matches the classic layout: 8 columns and a height of
// 1.6 times the width, rounded up to whole cells.
func DefaultElementrisConfig() ElementrisConfig {
	return ElementrisConfig{
		Grid: GridConfig{
			Columns:  8,
			Rows:     13,
			CellSize: 16,
		},
		Physics: PhysicsConfig{
			FallSpeed:     1.0,
			SoftDropSpeed: 4.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionLandings,
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
			},
		},
	}
}
