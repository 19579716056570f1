package elementris

import (
	"math/rand"

	"github.com/vovakirdan/elementris/internal/config"
	platformcore "github.com/vovakirdan/elementris/internal/core"
	"github.com/vovakirdan/elementris/internal/games/elementris/core"
)

// Autoplayer is a deterministic bot that steers each new block toward a
// target column and soft-drops it once aligned. Fire blocks aim for the
// column that touches the most shrubs; other blocks fill the lowest column.
type Autoplayer struct {
	rng      *rand.Rand
	blockID  int // Active block the target was chosen for
	target   int
	softDrop bool
}

// NewAutoplayer creates an autoplayer with its own seeded tie-breaker.
func NewAutoplayer(seed int64, softDrop bool) *Autoplayer {
	return &Autoplayer{
		rng:      rand.New(rand.NewSource(seed)),
		target:   -1,
		softDrop: softDrop,
	}
}

// Next returns the input for the coming tick.
func (a *Autoplayer) Next(s *core.State) platformcore.InputFrame {
	in := platformcore.NewInputFrame()

	active, ok := s.Active()
	if !ok {
		return in
	}
	if active.ID != a.blockID {
		a.blockID = active.ID
		a.target = a.pickColumn(s, active.Kind)
	}

	col := s.Grid().ToGrid(active.Pos).Col
	switch {
	case col < a.target:
		in.Set(platformcore.ActionRight)
	case col > a.target:
		in.Set(platformcore.ActionLeft)
	case a.softDrop:
		in.Set(platformcore.ActionDown)
	}
	return in
}

func (a *Autoplayer) pickColumn(s *core.State, kind core.Kind) int {
	grid := s.Grid()

	if core.RuleFor(kind).Ignites {
		best, bestScore := -1, 0
		for col := range grid.Columns {
			score := shrubContacts(grid, col)
			if score > bestScore {
				best, bestScore = col, score
			}
		}
		if best >= 0 {
			return best
		}
	}

	// Lowest surface wins; ties are broken by the autoplayer's rng.
	candidates := make([]int, 0, grid.Columns)
	lowest := -1
	for col := range grid.Columns {
		row := landingRow(grid, col)
		switch {
		case row > lowest:
			lowest = row
			candidates = append(candidates[:0], col)
		case row == lowest:
			candidates = append(candidates, col)
		}
	}
	return candidates[a.rng.Intn(len(candidates))]
}

// landingRow returns the row a block dropped into col would settle in,
// or -1 if the column is full.
func landingRow(grid *core.Grid, col int) int {
	for row := range grid.Rows {
		if grid.Read(core.C(col, row)) != nil {
			return row - 1
		}
	}
	return grid.Rows - 1
}

// shrubContacts counts shrubs orthogonally adjacent to the landing cell of col.
func shrubContacts(grid *core.Grid, col int) int {
	row := landingRow(grid, col)
	if row < 0 {
		return 0
	}
	land := core.C(col, row)
	n := 0
	for _, c := range []core.Cell{land.Add(-1, 0), land.Add(1, 0), land.Below()} {
		if grid.InBounds(c) && grid.KindAt(c) == core.KindShrub {
			n++
		}
	}
	return n
}

// RunOptions controls a headless run.
type RunOptions struct {
	Ticks    int   // Maximum number of game steps
	Seed     int64 // Seed for the game and the autoplayer
	SoftDrop bool  // Let the autoplayer soft-drop aligned blocks
	// Observer, if set, receives every event in the order it happened.
	Observer func(step int, e core.Event)
}

// HeadlessResult summarizes a headless run.
type HeadlessResult struct {
	Steps    int
	Landings int
	Burned   int
	GameOver bool
	Snapshot Snapshot
	Board    string
}

// RunHeadless plays a game without a terminal, driven by an Autoplayer.
// The run stops after opts.Ticks steps or when the board tops out.
func RunHeadless(cfg config.ElementrisConfig, opts RunOptions) HeadlessResult {
	g := NewWithConfig(cfg)
	g.Reset(platformcore.RuntimeConfig{Seed: opts.Seed})
	bot := NewAutoplayer(opts.Seed, opts.SoftDrop)

	steps := 0
	for steps < opts.Ticks && !g.State().GameOver {
		steps++
		g.Step(bot.Next(g.Board()))
		if opts.Observer != nil {
			for _, e := range g.events {
				opts.Observer(steps, e)
			}
		}
	}

	return HeadlessResult{
		Steps:    steps,
		Landings: g.landings,
		Burned:   g.burned,
		GameOver: g.gameOver,
		Snapshot: g.Snapshot(),
		Board:    g.state.String(),
	}
}
