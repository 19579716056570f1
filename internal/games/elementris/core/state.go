package core

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Rand is the random source used to pick spawn columns and kinds.
type Rand interface {
	Intn(n int) int
}

// Config describes the playfield geometry.
type Config struct {
	Columns  int
	Rows     int
	CellSize float64
	Origin   Vec
}

// DefaultConfig returns the standard 8-column playfield.
func DefaultConfig() Config {
	return Config{
		Columns:  8,
		Rows:     13,
		CellSize: 16,
	}
}

// State represents the complete game state at any point in time.
type State struct {
	grid    *Grid
	falling []*Block // Blocks in motion, in spawn/dislodge order
	active  *Block   // Player-controlled block; nil once it lands
	fire    *FireEngine
	ids     *idSource
	rng     Rand
	tick    uint64
}

// NewState creates an empty playfield. A nil rng falls back to a fixed-seed generator.
func NewState(cfg Config, rng Rand) *State {
	if cfg.Columns < 1 {
		cfg.Columns = DefaultConfig().Columns
	}
	if cfg.Rows < 1 {
		cfg.Rows = DefaultConfig().Rows
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = DefaultConfig().CellSize
	}
	if rng == nil {
		rng = NewRNG(0)
	}

	ids := &idSource{}
	return &State{
		grid:    NewGrid(cfg.Columns, cfg.Rows, cfg.CellSize, cfg.Origin),
		falling: make([]*Block, 0),
		fire:    &FireEngine{ids: ids},
		ids:     ids,
		rng:     rng,
	}
}

// Grid returns the settled-block grid.
func (s *State) Grid() *Grid {
	return s.grid
}

// TickCount returns the number of ticks simulated so far.
func (s *State) TickCount() uint64 {
	return s.tick
}

// NeedsSpawn returns true when there is no active block in flight.
func (s *State) NeedsSpawn() bool {
	return s.active == nil || !s.active.Falling
}

// Active returns the player-controlled block, if any.
func (s *State) Active() (BlockInfo, bool) {
	if s.NeedsSpawn() {
		return BlockInfo{}, false
	}
	return s.active.Info(), true
}

// Falling returns descriptors of every block in motion.
func (s *State) Falling() []BlockInfo {
	out := make([]BlockInfo, len(s.falling))
	for i, b := range s.falling {
		out[i] = b.Info()
	}
	return out
}

// SpawnNext creates the next player block at the top of a random column.
// If the active block is still falling it is returned unchanged.
// Returns a *NoRoomError when the spawn cell is already occupied.
func (s *State) SpawnNext() (BlockInfo, error) {
	if !s.NeedsSpawn() {
		return s.active.Info(), nil
	}
	b, err := s.spawn()
	if err != nil {
		return BlockInfo{}, err
	}
	return b.Info(), nil
}

// Tick advances every falling block by distance world units and resolves
// landings, fire spread and collapse. The distance is clamped to half a cell
// so a block can never skip over its landing row.
func (s *State) Tick(distance float64) TickResult {
	s.tick++
	result := TickResult{
		Tick:   s.tick,
		Events: make([]Event, 0),
	}

	d := distance
	if d < 0 {
		d = 0
	}
	if limit := s.grid.CellSize / 2; d > limit {
		d = limit
	}

	landed := s.advance(d)
	result.Events = append(result.Events, landed...)
	result.Landed = result.Count(EventLanded)
	if result.Landed == 0 {
		return result
	}

	result.Events = append(result.Events, s.fire.Propagate(s.grid)...)

	collapse := s.fire.Collapse(s.grid)
	result.Events = append(result.Events, collapse.Events...)
	s.falling = append(s.falling, collapse.Dislodged...)

	return result
}

// RequestMove shifts the active block one column left (dir = -1) or right
// (dir = +1). Returns false if there is no active block or the target is
// blocked by a wall, a settled block or another falling block.
func (s *State) RequestMove(dir int) bool {
	return s.moveHorizontal(dir)
}

// QueryCell returns a descriptor of the settled block in a cell.
// An empty cell yields a descriptor with KindEmpty.
func (s *State) QueryCell(col, row int) (BlockInfo, error) {
	c := C(col, row)
	if !s.grid.InBounds(c) {
		return BlockInfo{}, &OutOfBoundsError{Cell: c, Columns: s.grid.Columns, Rows: s.grid.Rows}
	}
	if b := s.grid.Read(c); b != nil {
		return b.Info(), nil
	}
	return BlockInfo{Kind: KindEmpty, Cell: c, Pos: s.grid.ToWorld(c)}, nil
}

// Place settles a block of the given kind directly into a cell, replacing
// whatever was there. Placing KindEmpty clears the cell.
func (s *State) Place(c Cell, k Kind) error {
	if !s.grid.InBounds(c) {
		return &OutOfBoundsError{Cell: c, Columns: s.grid.Columns, Rows: s.grid.Rows}
	}
	if k == KindEmpty {
		s.grid.Occupy(c, nil)
		return nil
	}
	if k >= kindCount {
		return fmt.Errorf("core: place %v: unknown kind %d", c, k)
	}
	s.grid.Occupy(c, &Block{
		ID:   s.ids.take(),
		Kind: k,
		Cell: c,
		Pos:  s.grid.ToWorld(c),
	})
	return nil
}

// LoadLayout settles blocks from rows of layout codes, top row first.
// '.' and ' ' mark empty cells. Rows shorter than the grid are padded with
// empty cells; the layout is aligned to the bottom of the grid.
func (s *State) LoadLayout(rows []string) error {
	if len(rows) > s.grid.Rows {
		return fmt.Errorf("core: layout has %d rows, grid has %d", len(rows), s.grid.Rows)
	}
	offset := s.grid.Rows - len(rows)

	for r, line := range rows {
		cols := []rune(line)
		if len(cols) > s.grid.Columns {
			return fmt.Errorf("core: layout row %d has %d columns, grid has %d", r, len(cols), s.grid.Columns)
		}
		for col, ch := range cols {
			if ch == ' ' || ch == KindEmpty.Code() {
				continue
			}
			k, ok := ParseKind(string(ch))
			if !ok {
				return fmt.Errorf("core: layout row %d col %d: unknown code %q", r, col, ch)
			}
			if err := s.Place(C(col, r+offset), k); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckInvariants verifies the ownership rules between the grid and the
// falling set. Returns nil if the state is consistent.
func (s *State) CheckInvariants() error {
	seen := make(map[*Block]Cell)

	for _, c := range s.grid.Occupied() {
		b := s.grid.Read(c)
		if b.Falling {
			return fmt.Errorf("core: block %d at %v is settled but marked falling", b.ID, c)
		}
		if b.Cell != c {
			return fmt.Errorf("core: block %d stored at %v reports cell %v", b.ID, c, b.Cell)
		}
		if prev, dup := seen[b]; dup {
			return fmt.Errorf("core: block %d occupies both %v and %v", b.ID, prev, c)
		}
		seen[b] = c
	}

	for _, b := range s.falling {
		if !b.Falling {
			return fmt.Errorf("core: block %d in falling set is not falling", b.ID)
		}
		if c, ok := seen[b]; ok {
			return fmt.Errorf("core: falling block %d is also settled at %v", b.ID, c)
		}
	}

	if s.active != nil && s.active.Falling {
		found := false
		for _, b := range s.falling {
			if b == s.active {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("core: active block %d is not in the falling set", s.active.ID)
		}
	}

	return nil
}

// Snapshot returns a hash representing the current state.
func (s *State) Snapshot() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "G:%d;", s.grid.Hash())

	fmt.Fprintf(h, "F:")
	for _, b := range s.falling {
		fmt.Fprintf(h, "%d:%d:%.3f:%.3f,", b.ID, b.Kind, b.Pos.X, b.Pos.Y)
	}

	if s.active != nil && s.active.Falling {
		fmt.Fprintf(h, ";A:%d", s.active.ID)
	}

	fmt.Fprintf(h, ";T:%d", s.tick)

	return h.Sum64()
}

// String renders the grid with falling blocks overlaid in lower case.
func (s *State) String() string {
	lines := strings.Split(s.grid.String(), "\n")
	for _, b := range s.falling {
		c := s.grid.ToGrid(b.Pos)
		if !s.grid.InBounds(c) {
			continue
		}
		row := []rune(lines[c.Row])
		row[c.Col] = []rune(strings.ToLower(string(b.Kind.Code())))[0]
		lines[c.Row] = string(row)
	}
	return strings.Join(lines, "\n")
}
