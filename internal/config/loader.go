package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/elementris/internal/games/elementris/core"
)

const configFile = "elementris.yaml"

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// LoadElementris loads Elementris configuration.
// Search order: customPath -> ~/.elementris/configs/elementris.yaml -> ./configs/elementris.yaml -> embedded default.
// Files are decoded over the defaults, so partial files only override the keys they set.
func LoadElementris(customPath string) (ElementrisConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ElementrisConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return ElementrisConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		if err := Validate(cfg); err != nil {
			return ElementrisConfig{}, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil && Validate(cfg) == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil && Validate(cfg) == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultElementrisYAML)
	if err != nil {
		return DefaultElementrisConfig(), nil
	}
	return cfg, nil
}

// parse decodes YAML on top of the hardcoded defaults.
func parse(data []byte) (ElementrisConfig, error) {
	cfg := DefaultElementrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ElementrisConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".elementris", "configs", filename)
}

// Validate checks that a configuration can drive a game.
func Validate(cfg ElementrisConfig) error {
	if cfg.Grid.Columns < 1 {
		return ValidationError{Field: "grid.columns", Message: "must be at least 1"}
	}
	if cfg.Grid.Rows < 2 {
		return ValidationError{Field: "grid.rows", Message: "must be at least 2"}
	}
	if cfg.Grid.CellSize <= 0 {
		return ValidationError{Field: "grid.cell_size", Message: "must be positive"}
	}
	if cfg.Physics.FallSpeed <= 0 {
		return ValidationError{Field: "physics.fall_speed", Message: "must be positive"}
	}
	if cfg.Physics.SoftDropSpeed < 0 {
		return ValidationError{Field: "physics.soft_drop_speed", Message: "must not be negative"}
	}
	if l := cfg.Difficulty.InitialLevel; l < 0 || l > 1 {
		return ValidationError{Field: "difficulty.initial_level", Message: "must be between 0 and 1"}
	}
	switch cfg.Difficulty.Progression.Type {
	case ProgressionLandings, ProgressionTime, ProgressionNone, "":
	default:
		return ValidationError{
			Field:   "difficulty.progression.type",
			Message: fmt.Sprintf("unknown type %q", cfg.Difficulty.Progression.Type),
		}
	}
	if cfg.Difficulty.Scaling.SpeedMultiplier < 0 {
		return ValidationError{Field: "difficulty.scaling.speed_multiplier", Message: "must not be negative"}
	}
	if len(cfg.Layout) > cfg.Grid.Rows {
		return ValidationError{
			Field:   "layout",
			Message: fmt.Sprintf("%d rows do not fit a %d-row grid", len(cfg.Layout), cfg.Grid.Rows),
		}
	}
	for i, row := range cfg.Layout {
		if n := len([]rune(row)); n > cfg.Grid.Columns {
			return ValidationError{
				Field:   fmt.Sprintf("layout[%d]", i),
				Message: fmt.Sprintf("%d columns do not fit a %d-column grid", n, cfg.Grid.Columns),
			}
		}
		for col, ch := range []rune(row) {
			if ch == ' ' || ch == core.KindEmpty.Code() {
				continue
			}
			if _, ok := core.ParseKind(string(ch)); !ok {
				return ValidationError{
					Field:   fmt.Sprintf("layout[%d]", i),
					Message: fmt.Sprintf("unknown block code %q at column %d", ch, col),
				}
			}
		}
	}
	return nil
}

// ApplyElementrisPreset modifies the config based on a difficulty preset.
func ApplyElementrisPreset(cfg *ElementrisConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Physics.FallSpeed *= 0.75
	case DifficultyHard:
		cfg.Physics.FallSpeed *= 1.5
		cfg.Physics.SoftDropSpeed *= 1.5
	}
}
