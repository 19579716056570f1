package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/elementris/internal/core"
	"github.com/vovakirdan/elementris/internal/games/elementris"
	"github.com/vovakirdan/elementris/internal/platform/tui"
	"github.com/vovakirdan/elementris/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Elementris in the terminal",
	Long: `Start a game in the current terminal.

Controls:
  ←/h/a      - Move left
  →/l/d      - Move right
  ↓/j/s      - Soft drop
  P/Esc      - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit
  Ctrl+S     - Save a text screenshot to ~/.elementris/screenshots

Difficulty options:
  easy   - Slower fall, progresses from the lowest level
  normal - Starts at 30% difficulty, progresses to max
  hard   - Faster fall, starts at 70% difficulty
  fixed  - No progression, stays at config's initial level

Examples:
  elementris play
  elementris play --difficulty easy
  elementris play --config ./my-elementris.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) error {
	elementris.SetConfigPath(flagConfig)
	if err := elementris.SetDifficultyPreset(flagDifficulty); err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(elementris.GameID)
	if err != nil {
		return err
	}

	if err := tui.Run(game, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
