package elementris

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Landings   int
	Burned     int
	Settled    int // Blocks on the grid
	Falling    int // Blocks in motion, including the active one
	ActiveKind string
	ActiveCol  int // -1 when no block is active
	ActiveRow  int
	GridHash   uint64
	StateHash  uint64
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	grid := g.state.Grid()
	snap := Snapshot{
		Tick:      g.state.TickCount(),
		Landings:  g.landings,
		Burned:    g.burned,
		Settled:   grid.Count(),
		Falling:   len(g.state.Falling()),
		ActiveCol: -1,
		ActiveRow: -1,
		GridHash:  grid.Hash(),
		StateHash: g.state.Snapshot(),
		State:     state,
	}

	if active, ok := g.state.Active(); ok {
		c := grid.ToGrid(active.Pos)
		snap.ActiveKind = active.Kind.String()
		snap.ActiveCol = c.Col
		snap.ActiveRow = c.Row
	}

	return snap
}
