package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg ElementrisConfig
	if err := yaml.Unmarshal(DefaultElementrisYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	def := DefaultElementrisConfig()
	if cfg.Grid != def.Grid {
		t.Errorf("grid: embedded %+v, hardcoded %+v", cfg.Grid, def.Grid)
	}
	if cfg.Physics != def.Physics {
		t.Errorf("physics: embedded %+v, hardcoded %+v", cfg.Physics, def.Physics)
	}
	if cfg.Difficulty != def.Difficulty {
		t.Errorf("difficulty: embedded %+v, hardcoded %+v", cfg.Difficulty, def.Difficulty)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("embedded defaults should validate: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := LoadElementris("")
	if err != nil {
		t.Fatalf("LoadElementris failed: %v", err)
	}
	if cfg.Grid.Columns != 8 || cfg.Grid.Rows != 13 {
		t.Errorf("expected default 8x13 grid, got %dx%d", cfg.Grid.Columns, cfg.Grid.Rows)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "elementris.yaml"), "grid:\n  columns: 6\n")
	cfg, err := LoadElementris("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid.Columns != 6 {
		t.Errorf("local config should be used, got %d columns", cfg.Grid.Columns)
	}

	writeFile(t, filepath.Join(home, ".elementris", "configs", "elementris.yaml"), "grid:\n  columns: 10\n")
	cfg, err = LoadElementris("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid.Columns != 10 {
		t.Errorf("user config should win over local config, got %d columns", cfg.Grid.Columns)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "grid:\n  columns: 4\n")
	cfg, err = LoadElementris(custom)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid.Columns != 4 {
		t.Errorf("custom path should win, got %d columns", cfg.Grid.Columns)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	custom := filepath.Join(t.TempDir(), "partial.yaml")
	writeFile(t, custom, "physics:\n  fall_speed: 2.5\n")

	cfg, err := LoadElementris(custom)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.FallSpeed != 2.5 {
		t.Errorf("fall_speed = %v, expected 2.5", cfg.Physics.FallSpeed)
	}
	if cfg.Physics.SoftDropSpeed != DefaultElementrisConfig().Physics.SoftDropSpeed {
		t.Errorf("unset soft_drop_speed should keep its default, got %v", cfg.Physics.SoftDropSpeed)
	}
	if cfg.Grid != DefaultElementrisConfig().Grid {
		t.Errorf("unset grid should keep defaults, got %+v", cfg.Grid)
	}
}

func TestLoadInvalidLocalFileIsSkipped(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, "configs", "elementris.yaml"), "grid:\n  columns: 0\n")

	cfg, err := LoadElementris("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid.Columns != 8 {
		t.Errorf("invalid local config should be skipped, got %d columns", cfg.Grid.Columns)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	if _, err := LoadElementris(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file should wrap os.ErrNotExist, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "grid: [not, a, map")
	if _, err := LoadElementris(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalid, "physics:\n  fall_speed: -1\n")
	_, err := LoadElementris(invalid)
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Field != "physics.fall_speed" {
		t.Errorf("expected fall_speed validation error, got %v", err)
	}
}

func TestLoadLayout(t *testing.T) {
	isolate(t)
	custom := filepath.Join(t.TempDir(), "layout.yaml")
	writeFile(t, custom, "layout:\n  - \"...S....\"\n  - \"D..FD.SD\"\n")

	cfg, err := LoadElementris(custom)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Layout) != 2 || cfg.Layout[1] != "D..FD.SD" {
		t.Errorf("unexpected layout %q", cfg.Layout)
	}
}

func TestLoadRejectsUnknownLayoutCode(t *testing.T) {
	isolate(t)
	custom := filepath.Join(t.TempDir(), "layout.yaml")
	writeFile(t, custom, "layout:\n  - \"D.Q\"\n")

	_, err := LoadElementris(custom)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "layout[0]" {
		t.Errorf("field = %q, expected layout[0]", verr.Field)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ElementrisConfig)
		field  string
	}{
		{"defaults", func(*ElementrisConfig) {}, ""},
		{"zero columns", func(c *ElementrisConfig) { c.Grid.Columns = 0 }, "grid.columns"},
		{"one row", func(c *ElementrisConfig) { c.Grid.Rows = 1 }, "grid.rows"},
		{"zero cell size", func(c *ElementrisConfig) { c.Grid.CellSize = 0 }, "grid.cell_size"},
		{"zero fall speed", func(c *ElementrisConfig) { c.Physics.FallSpeed = 0 }, "physics.fall_speed"},
		{"negative soft drop", func(c *ElementrisConfig) { c.Physics.SoftDropSpeed = -1 }, "physics.soft_drop_speed"},
		{"level above one", func(c *ElementrisConfig) { c.Difficulty.InitialLevel = 1.5 }, "difficulty.initial_level"},
		{"unknown progression", func(c *ElementrisConfig) { c.Difficulty.Progression.Type = "score" }, "difficulty.progression.type"},
		{"negative multiplier", func(c *ElementrisConfig) { c.Difficulty.Scaling.SpeedMultiplier = -1 }, "difficulty.scaling.speed_multiplier"},
		{"layout too tall", func(c *ElementrisConfig) { c.Grid.Rows = 2; c.Layout = []string{"D", "D", "D"} }, "layout"},
		{"layout too wide", func(c *ElementrisConfig) { c.Layout = []string{"DDDDDDDDD"} }, "layout[0]"},
		{"unknown layout code", func(c *ElementrisConfig) { c.Layout = []string{"D.S.", "DxD "} }, "layout[1]"},
		{"layout with every code", func(c *ElementrisConfig) { c.Layout = []string{"DSFB. "} }, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultElementrisConfig()
			tc.modify(&cfg)
			err := Validate(cfg)

			if tc.field == "" {
				if err != nil {
					t.Errorf("expected valid config, got %v", err)
				}
				return
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Field = %q, expected %q", verr.Field, tc.field)
			}
		})
	}
}

func TestApplyElementrisPreset(t *testing.T) {
	base := DefaultElementrisConfig()

	easy := DefaultElementrisConfig()
	ApplyElementrisPreset(&easy, DifficultyEasy)
	if !easy.Difficulty.Enabled || easy.Difficulty.InitialLevel != 0.0 {
		t.Errorf("easy preset: %+v", easy.Difficulty)
	}
	if easy.Physics.FallSpeed >= base.Physics.FallSpeed {
		t.Error("easy preset should slow the fall")
	}

	hard := DefaultElementrisConfig()
	ApplyElementrisPreset(&hard, DifficultyHard)
	if hard.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard initial level = %v, expected 0.7", hard.Difficulty.InitialLevel)
	}
	if hard.Physics.FallSpeed <= base.Physics.FallSpeed {
		t.Error("hard preset should speed up the fall")
	}

	fixed := DefaultElementrisConfig()
	ApplyElementrisPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
	if fixed.Physics != base.Physics {
		t.Error("fixed preset should not change physics")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		input   string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"normal", DifficultyNormal, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.input, got, tc.want)
		}
	}
}
