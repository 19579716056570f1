// Package elementris adapts the Elementris simulation to the terminal game platform.
package elementris

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/elementris/internal/config"
	platformcore "github.com/vovakirdan/elementris/internal/core"
	"github.com/vovakirdan/elementris/internal/games/elementris/core"
	"github.com/vovakirdan/elementris/internal/registry"
)

// GameID is the registry identifier.
const GameID = "elementris"

// Render constants
const (
	cellW      = 2  // Terminal columns per grid cell
	hudHeight  = 2  // HUD line plus separator
	panelWidth = 20 // Side panel with legend and counters
	panelGap   = 2
)

// Package-level variables for config/difficulty (set by the CLI before Reset).
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the config file path used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used on the next Reset.
// An empty preset keeps the difficulty from the config file.
func SetDifficultyPreset(preset string) error {
	if preset == "" {
		difficultyPreset = ""
		return nil
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// Game implements registry.Game for Elementris.
type Game struct {
	cfg        config.ElementrisConfig
	explicit   bool // cfg was supplied by the caller and must not be reloaded
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	state      *core.State
	runtime    platformcore.RuntimeConfig

	events   []core.Event // Events produced by the last Step
	landings int
	burned   int
	speed    float64

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game bound to an explicit configuration.
func NewWithConfig(cfg config.ElementrisConfig) *Game {
	return &Game{cfg: cfg, explicit: true}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Elementris"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	if !g.explicit {
		loaded, err := config.LoadElementris(configPath)
		if err != nil {
			loaded = config.DefaultElementrisConfig()
		}
		if difficultyPreset != "" {
			config.ApplyElementrisPreset(&loaded, difficultyPreset)
		}
		g.cfg = loaded
	}

	g.runtime = cfg
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.events = g.events[:0]
	g.landings = 0
	g.burned = 0
	g.gameOver = false
	g.paused = false
	g.tooSmall = false

	coreCfg := core.Config{
		Columns:  g.cfg.Grid.Columns,
		Rows:     g.cfg.Grid.Rows,
		CellSize: g.cfg.Grid.CellSize,
	}
	g.state = core.NewState(coreCfg, g.rng)
	if len(g.cfg.Layout) > 0 {
		if err := g.state.LoadLayout(g.cfg.Layout); err != nil {
			// A bad layout leaves a partly filled board; start empty instead.
			g.state = core.NewState(coreCfg, g.rng)
		}
	}
	g.speed = g.currentSpeed()
	g.spawn()
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	g.events = g.events[:0]

	// Handle restart
	if input.Has(platformcore.ActionRestart) && g.gameOver {
		g.Reset(platformcore.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
		})
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if input.Has(platformcore.ActionLeft) {
		g.state.RequestMove(-1)
	}
	if input.Has(platformcore.ActionRight) {
		g.state.RequestMove(1)
	}

	g.speed = g.currentSpeed()
	g.advance(g.speed)

	if input.Has(platformcore.ActionDown) && !g.gameOver && g.cfg.Physics.SoftDropSpeed > 0 {
		g.advance(g.cfg.Physics.SoftDropSpeed)
	}

	return platformcore.StepResult{State: g.State(), Events: len(g.events)}
}

// advance runs one simulation tick and spawns the next block when needed.
func (g *Game) advance(distance float64) {
	res := g.state.Tick(distance)
	g.events = append(g.events, res.Events...)
	g.landings += res.Landed
	g.burned += res.Count(core.EventIgnited)
	g.spawn()
}

func (g *Game) spawn() {
	if !g.state.NeedsSpawn() {
		return
	}
	if _, err := g.state.SpawnNext(); err != nil {
		if errors.Is(err, core.ErrNoRoom) {
			g.gameOver = true
		}
	}
}

func (g *Game) currentSpeed() float64 {
	return g.difficulty.Speed(g.cfg.Physics.FallSpeed, g.landings, g.state.TickCount())
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	grid := g.state.Grid()
	boxW := grid.Columns*cellW + 2
	boxH := grid.Rows + 2

	g.tooSmall = dst.Width() < boxW || dst.Height() < hudHeight+boxH
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", boxW, hudHeight+boxH))
		return
	}

	totalW := boxW
	withPanel := dst.Width() >= boxW+panelGap+panelWidth
	if withPanel {
		totalW += panelGap + panelWidth
	}
	x := platformcore.Clamp((dst.Width()-totalW)/2, 0, dst.Width()-boxW)
	field := platformcore.NewRect(x, hudHeight, boxW, boxH)

	g.renderField(dst, field)
	if withPanel {
		g.renderPanel(dst, field.Right()+panelGap, field.Y+1)
	}

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" Elementris  Landed: %d  Burned: %d  Speed: %.2f", g.landings, g.burned, g.speed)
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderField(dst *platformcore.Screen, box platformcore.Rect) {
	dst.DrawBox(box, platformcore.ColorGray)

	grid := g.state.Grid()
	for row := range grid.Rows {
		for col := range grid.Columns {
			kind := grid.KindAt(core.C(col, row))
			g.drawCell(dst, box, col, row, kind, false)
		}
	}

	active, hasActive := g.state.Active()
	for _, b := range g.state.Falling() {
		c := grid.ToGrid(b.Pos)
		if !grid.InBounds(c) {
			continue
		}
		g.drawCell(dst, box, c.Col, c.Row, b.Kind, hasActive && b.ID == active.ID)
	}
}

func (g *Game) drawCell(dst *platformcore.Screen, box platformcore.Rect, col, row int, kind core.Kind, highlight bool) {
	glyph, color := Glyph(kind)
	if highlight {
		color = highlightColor(kind, color)
	}
	x := box.X + 1 + col*cellW
	y := box.Y + 1 + row
	dst.DrawTextWithColor(x, y, glyph, color)
}

// Glyph returns the two-column glyph and color used to draw a block kind.
func Glyph(kind core.Kind) (string, platformcore.Color) {
	switch kind.Tag() {
	case "dirt":
		return "▓▓", platformcore.ColorBrown
	case "shrub":
		return "♣♣", platformcore.ColorGreen
	case "fire":
		return "▲▲", platformcore.ColorBrightRed
	case "burning_shrub":
		return "✶✶", platformcore.ColorOrange
	default:
		return "· ", platformcore.ColorGray
	}
}

func highlightColor(kind core.Kind, base platformcore.Color) platformcore.Color {
	switch kind {
	case core.KindDirt:
		return platformcore.ColorYellow
	case core.KindShrub:
		return platformcore.ColorBrightGreen
	case core.KindFire:
		return platformcore.ColorBrightYellow
	default:
		return base
	}
}

func (g *Game) renderPanel(dst *platformcore.Screen, x, y int) {
	dst.DrawTextWithColor(x, y, "Blocks", platformcore.ColorWhite)
	y += 2
	for _, k := range core.SpawnableKinds() {
		glyph, color := Glyph(k)
		dst.DrawTextWithColor(x, y, glyph, color)
		dst.DrawText(x+3, y, k.String())
		y++
	}
	glyph, color := Glyph(core.KindBurningShrub)
	dst.DrawTextWithColor(x, y, glyph, color)
	dst.DrawText(x+3, y, "burning")
	y += 2

	dst.DrawText(x, y, fmt.Sprintf("Landed  %d", g.landings))
	dst.DrawText(x, y+1, fmt.Sprintf("Burned  %d", g.burned))
	dst.DrawText(x, y+2, fmt.Sprintf("Level   %.0f%%", g.difficulty.Level(g.landings, g.state.TickCount())*100))
}

func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := dst.Bounds().Centered(boxW, boxH)

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorDefault)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    0,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Board exposes the underlying simulation for tools and tests.
func (g *Game) Board() *core.State {
	return g.state
}

// Config returns the configuration the current round was built from.
func (g *Game) Config() config.ElementrisConfig {
	return g.cfg
}

// Events returns a copy of the events produced by the last Step.
func (g *Game) Events() []core.Event {
	out := make([]core.Event, len(g.events))
	copy(out, g.events)
	return out
}

// Landings returns the number of landings this round.
func (g *Game) Landings() int {
	return g.landings
}

// Burned returns the number of blocks ignited this round.
func (g *Game) Burned() int {
	return g.burned
}
