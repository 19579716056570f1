package core

// Block is a single placed or falling block.
// It is owned either by the falling set or by exactly one grid cell.
type Block struct {
	ID      int
	Kind    Kind
	Cell    Cell // Grid position; valid while settled
	Pos     Vec  // World position; authoritative while falling
	Falling bool
}

// Info returns a read-only descriptor of the block.
func (b *Block) Info() BlockInfo {
	return BlockInfo{
		ID:      b.ID,
		Kind:    b.Kind,
		Cell:    b.Cell,
		Pos:     b.Pos,
		Falling: b.Falling,
	}
}

// BlockInfo is a value copy of a block handed to collaborators.
type BlockInfo struct {
	ID      int
	Kind    Kind
	Cell    Cell
	Pos     Vec
	Falling bool
}

// Empty reports whether the descriptor stands for an empty cell.
func (bi BlockInfo) Empty() bool {
	return bi.Kind == KindEmpty
}

// idSource hands out block IDs for one session.
type idSource struct {
	next int
}

func (s *idSource) take() int {
	s.next++
	return s.next
}
