// elementris is a falling-block puzzle for the terminal where fire spreads
// through shrubs and burnt ground collapses.
//
// Usage:
//
//	elementris play          - Play in the terminal
//	elementris list          - List registered games
//	elementris serve         - Start SSH server for remote play
//	elementris sim           - Run a headless game with the autoplayer
//	elementris config        - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--log-level <level>   - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/elementris/internal/games/elementris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "elementris",
	Short: "Elementris - a falling-block puzzle with fire",
	Long: `Elementris drops dirt, shrubs and fire onto an 8-column board.
Fire spreads through touching shrubs, burning shrubs collapse, and
everything stacked on them falls again.

Available commands:
  play     - Play in the terminal
  list     - Show registered games
  serve    - Start SSH server for remote play
  sim      - Run a headless game with the autoplayer
  config   - Print the default configuration

Examples:
  elementris play
  elementris play --difficulty hard
  elementris serve --ssh :2222
  elementris sim --ticks 5000 --seed 42 --log-level debug`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a stderr logger at the level chosen by --log-level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// seed returns --seed, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
