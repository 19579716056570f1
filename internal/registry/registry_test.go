package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/elementris/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{State: g.state}
}

func TestRegisterCreateList(t *testing.T) {
	Register("test_zeta", func() Game { return &stubGame{id: "test_zeta"} })
	Register("test_alpha", func() Game { return &stubGame{id: "test_alpha"} })

	assert.True(t, Exists("test_alpha"))
	assert.False(t, Exists("test_missing"))

	g, err := Create("test_zeta")
	require.NoError(t, err)
	assert.Equal(t, "test_zeta", g.ID())

	other, err := Create("test_zeta")
	require.NoError(t, err)
	assert.NotSame(t, g, other, "each Create should return a fresh instance")

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "test_alpha" {
			assert.Equal(t, "Stub test_alpha", info.Title)
		}
	}
	assert.Subset(t, ids, []string{"test_alpha", "test_zeta"})
	assert.IsNonDecreasing(t, ids)
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("test_nope")
	assert.ErrorContains(t, err, `unknown game "test_nope"`)
}

func TestRegisterPanics(t *testing.T) {
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })

	assert.Panics(t, func() {
		Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })
	})
	assert.Panics(t, func() {
		Register("", func() Game { return &stubGame{} })
	})
}
