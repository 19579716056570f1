package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/elementris/internal/core"
)

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextWithColor(2, 0, "▲▲", core.ColorBrightRed)
	s.DrawTextWithColor(0, 1, "♣♣", core.ColorGreen)

	out := RenderScreen(s)
	lines := strings.Split(ansi.Strip(out), "\n")

	assert.Len(t, lines, 2)
	assert.Equal(t, "ab▲▲  ", lines[0])
	assert.Equal(t, "♣♣    ", lines[1])
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		_, ok := colorStyles[c]
		assert.True(t, ok, "missing style for color %d", c)
	}
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, tickInterval(60))
	assert.Equal(t, time.Second/30, tickInterval(30))
	assert.Equal(t, time.Second/60, tickInterval(0))
}
