package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/elementris/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"h", runeKey('h'), core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"l", runeKey('l'), core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"j", runeKey('j'), core.ActionDown, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			assert.Equal(t, tc.action, action)
			assert.Equal(t, tc.quit, quit)
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.False(t, km.MapKeyToFrame(runeKey('h'), &frame))
	assert.False(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyDown}, &frame))
	assert.True(t, frame.Has(core.ActionLeft))
	assert.True(t, frame.Has(core.ActionDown))

	assert.True(t, km.MapKeyToFrame(runeKey('q'), &frame))
	assert.False(t, frame.Has(core.ActionQuit), "quit is reported, not queued")

	assert.False(t, km.MapKeyToFrame(runeKey('z'), &frame))
	assert.False(t, frame.Has(core.ActionNone))
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()

	assert.Len(t, keys.ShortHelp(), 6)

	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	assert.Equal(t, 6, total)

	for _, b := range keys.ShortHelp() {
		assert.True(t, b.Enabled())
		assert.NotEmpty(t, b.Help().Key)
		assert.NotEmpty(t, b.Help().Desc)
	}
}
