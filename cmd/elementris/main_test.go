package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/elementris/internal/config"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

// resetFlags restores the flags a test may have set. Cobra keeps parsed
// values in the package variables between Execute calls.
func resetFlags() {
	flagFPS = 60
	flagSeed = 0
	flagLogLevel = "info"
	flagSimTicks = 3000
	flagSimConfig = ""
	flagSimDifficulty = ""
	flagSimSoftDrop = true
}

func TestListShowsElementris(t *testing.T) {
	out := execute(t, "list")
	assert.Contains(t, out, "elementris")
	assert.Contains(t, out, "Elementris")
}

func TestConfigPrintsDefaults(t *testing.T) {
	out := execute(t, "config")
	assert.Equal(t, string(config.DefaultElementrisYAML()), out)
}

func TestSimPrintsBoard(t *testing.T) {
	out := execute(t, "sim", "--seed", "7", "--ticks", "400", "--log-level", "error")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, config.DefaultElementrisConfig().Grid.Rows)
	for _, line := range lines {
		assert.Len(t, line, config.DefaultElementrisConfig().Grid.Columns)
	}
}

func TestSimIsReproducible(t *testing.T) {
	first := execute(t, "sim", "--seed", "99", "--ticks", "1500", "--log-level", "error")
	second := execute(t, "sim", "--seed", "99", "--ticks", "1500", "--log-level", "error")
	assert.Equal(t, first, second)
}

func TestSimRejectsBadFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	tests := [][]string{
		{"sim", "--ticks", "0", "--log-level", "error"},
		{"sim", "--log-level", "loud"},
		{"sim", "--ticks", "10", "--difficulty", "brutal", "--log-level", "error"},
	}
	for _, args := range tests {
		rootCmd.SetArgs(args)
		assert.Error(t, rootCmd.Execute(), "args %v", args)
		resetFlags()
	}
}

func TestFlagsResetBetweenTests(t *testing.T) {
	t.Run("bad flags", TestSimRejectsBadFlags)

	assert.Equal(t, 3000, flagSimTicks)
	assert.Empty(t, flagSimDifficulty)
	assert.Equal(t, "info", flagLogLevel)
}
