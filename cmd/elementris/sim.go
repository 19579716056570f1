package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/elementris/internal/config"
	"github.com/vovakirdan/elementris/internal/games/elementris"
	"github.com/vovakirdan/elementris/internal/games/elementris/core"
)

var (
	flagSimTicks      int
	flagSimConfig     string
	flagSimDifficulty string
	flagSimSoftDrop   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game with the autoplayer",
	Long: `Run a game without a terminal UI. An autoplayer steers every block:
fire aims for shrubs, everything else fills the lowest column.

Every landing, ignition, collapse and dislodge is logged at debug level.
The final board is printed when the run ends.

Examples:
  elementris sim --seed 42
  elementris sim --ticks 20000 --log-level debug
  elementris sim --config ./layout.yaml --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3000, "Maximum number of game steps")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom config YAML")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().BoolVar(&flagSimSoftDrop, "soft-drop", true, "Let the autoplayer soft-drop aligned blocks")
}

func runSim(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("sim")
	if err != nil {
		return err
	}
	if flagSimTicks < 1 {
		return fmt.Errorf("--ticks must be positive, got %d", flagSimTicks)
	}

	cfg, err := config.LoadElementris(flagSimConfig)
	if err != nil {
		return err
	}
	if flagSimDifficulty != "" {
		preset, err := config.ParsePreset(flagSimDifficulty)
		if err != nil {
			return err
		}
		config.ApplyElementrisPreset(&cfg, preset)
	}

	runSeed := seed()
	logger.Info("simulation started",
		"seed", runSeed,
		"ticks", flagSimTicks,
		"grid", fmt.Sprintf("%dx%d", cfg.Grid.Columns, cfg.Grid.Rows),
	)

	res := elementris.RunHeadless(cfg, elementris.RunOptions{
		Ticks:    flagSimTicks,
		Seed:     runSeed,
		SoftDrop: flagSimSoftDrop,
		Observer: func(step int, e core.Event) {
			logger.Debug(e.Type.String(),
				"step", step,
				"cell", e.Cell,
				"kind", e.Kind,
				"block", e.BlockID,
			)
		},
	})

	logger.Info("simulation finished",
		"steps", res.Steps,
		"ticks", res.Snapshot.Tick,
		"landings", res.Landings,
		"burned", res.Burned,
		"settled", res.Snapshot.Settled,
		"game_over", res.GameOver,
		"hash", fmt.Sprintf("%016x", res.Snapshot.StateHash),
	)

	fmt.Fprintln(cmd.OutOrStdout(), res.Board)
	return nil
}
