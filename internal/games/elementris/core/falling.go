package core

import "math"

// LandingEpsilon absorbs floating point error in the landing tolerance band.
const LandingEpsilon = 1e-6

// spawn creates a new active block at the top of a random column.
// The column is drawn before the kind.
func (s *State) spawn() (*Block, error) {
	col := s.rng.Intn(s.grid.Columns)
	kind := spawnable[s.rng.Intn(len(spawnable))]

	cell := C(col, 0)
	if s.grid.Read(cell) != nil {
		return nil, &NoRoomError{Cell: cell, Kind: kind}
	}

	b := &Block{
		ID:      s.ids.take(),
		Kind:    kind,
		Cell:    cell,
		Pos:     s.grid.ToWorld(cell),
		Falling: true,
	}
	s.falling = append(s.falling, b)
	s.active = b
	return b, nil
}

// advance moves every falling block down by d, landing the ones that reached support.
func (s *State) advance(d float64) []Event {
	events := make([]Event, 0)
	still := make([]*Block, 0, len(s.falling))

	for _, b := range s.falling {
		if s.hasSupportBelow(b) && s.withinLandingBand(b, d) {
			events = append(events, s.land(b))
			continue
		}
		b.Pos.Y += d
		b.Cell = s.grid.ToGrid(b.Pos)
		still = append(still, b)
	}

	s.falling = still
	return events
}

// hasSupportBelow reports whether the cell under the block's current row is
// the floor or holds a settled block.
func (s *State) hasSupportBelow(b *Block) bool {
	below := s.grid.ToGrid(b.Pos).Below()
	if !s.grid.InBounds(below) {
		return true
	}
	under := s.grid.Read(below)
	return under != nil && !under.Falling
}

// withinLandingBand reports whether the block is close enough to its resting
// row that another step of d could overshoot it.
func (s *State) withinLandingBand(b *Block, d float64) bool {
	below := s.grid.ToWorld(s.grid.ToGrid(b.Pos).Below())
	return below.Y-b.Pos.Y <= s.grid.CellSize+d+LandingEpsilon
}

// land snaps a falling block to its current row and registers it in the grid.
func (s *State) land(b *Block) Event {
	target := s.grid.ToGrid(b.Pos)
	for target.Row >= 0 && s.grid.Read(target) != nil {
		target = target.Above()
	}

	b.Falling = false
	if b == s.active {
		s.active = nil
	}
	if target.Row < 0 {
		// No free cell left in the column: the block leaves the playfield
		return Event{Type: EventDestroyed, Cell: C(target.Col, 0), Kind: b.Kind, BlockID: b.ID}
	}

	b.Cell = target
	b.Pos = s.grid.ToWorld(target)
	s.grid.Occupy(target, b)
	return Event{Type: EventLanded, Cell: target, Kind: b.Kind, BlockID: b.ID}
}

// moveHorizontal shifts the active block by one cell width.
// Returns false, leaving the block untouched, if the move is not possible.
func (s *State) moveHorizontal(dir int) bool {
	b := s.active
	if b == nil || !b.Falling {
		return false
	}
	if dir != -1 && dir != 1 {
		return false
	}

	next := Vec{X: b.Pos.X + float64(dir)*s.grid.CellSize, Y: b.Pos.Y}
	if !s.grid.CanPlace(next) {
		return false
	}

	col := s.grid.ToGrid(next).Col
	for _, other := range s.falling {
		if other == b {
			continue
		}
		if s.grid.ToGrid(other.Pos).Col == col && math.Abs(other.Pos.Y-next.Y) < s.grid.CellSize {
			return false
		}
	}

	b.Pos = next
	b.Cell = s.grid.ToGrid(next)
	return true
}
