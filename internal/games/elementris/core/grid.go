package core

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Grid is the settled-block occupancy table and the mapping between
// grid cells and world positions.
// Cells are stored in row-major order: index = row*Columns + col.
type Grid struct {
	Columns  int
	Rows     int
	CellSize float64 // World units per cell
	Origin   Vec     // World position of the top-left corner of the playfield
	cells    []*Block
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(columns, rows int, cellSize float64, origin Vec) *Grid {
	return &Grid{
		Columns:  columns,
		Rows:     rows,
		CellSize: cellSize,
		Origin:   origin,
		cells:    make([]*Block, columns*rows),
	}
}

// index converts a cell to a flat array index.
func (g *Grid) index(c Cell) int {
	return c.Row*g.Columns + c.Col
}

// rowTieEpsilon absorbs floating point error at row centers so that a cell
// center always maps back to its own row.
const rowTieEpsilon = 1e-9

// ToGrid maps a world position to a cell.
// The column is floored so horizontal motion never rounds into the next
// column early. The row is the nearest integer of (y - originY) / cellSize,
// ties rounded down, so a falling block snaps to the next row as soon as it
// leaves its row center.
func (g *Grid) ToGrid(p Vec) Cell {
	col := math.Floor((p.X - g.Origin.X) / g.CellSize)
	row := math.Ceil((p.Y-g.Origin.Y)/g.CellSize - 0.5 - rowTieEpsilon)
	return Cell{Col: int(col), Row: int(row)}
}

// ToWorld returns the world position of the center of a cell.
func (g *Grid) ToWorld(c Cell) Vec {
	return Vec{
		X: g.Origin.X + float64(c.Col)*g.CellSize + g.CellSize/2,
		Y: g.Origin.Y + float64(c.Row)*g.CellSize + g.CellSize/2,
	}
}

// InBounds returns true if the cell is within the grid boundaries.
func (g *Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.Columns && c.Row >= 0 && c.Row < g.Rows
}

// CanPlace returns true if the world position maps to an empty in-bounds cell.
func (g *Grid) CanPlace(p Vec) bool {
	c := g.ToGrid(p)
	return g.InBounds(c) && g.cells[g.index(c)] == nil
}

// Occupy sets the block held by a cell; nil clears it.
// Panics with *OutOfBoundsError if the cell is outside the grid.
func (g *Grid) Occupy(c Cell, b *Block) {
	g.mustBeInBounds(c)
	g.cells[g.index(c)] = b
}

// Read returns the block settled in a cell, or nil.
// Panics with *OutOfBoundsError if the cell is outside the grid.
func (g *Grid) Read(c Cell) *Block {
	g.mustBeInBounds(c)
	return g.cells[g.index(c)]
}

func (g *Grid) mustBeInBounds(c Cell) {
	if !g.InBounds(c) {
		panic(&OutOfBoundsError{Cell: c, Columns: g.Columns, Rows: g.Rows})
	}
}

// KindAt returns the kind in a cell, KindEmpty for empty or out-of-bounds cells.
func (g *Grid) KindAt(c Cell) Kind {
	if !g.InBounds(c) {
		return KindEmpty
	}
	if b := g.cells[g.index(c)]; b != nil {
		return b.Kind
	}
	return KindEmpty
}

// Occupied returns all occupied cells ordered by row then column.
func (g *Grid) Occupied() []Cell {
	cells := make([]Cell, 0)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			if g.cells[row*g.Columns+col] != nil {
				cells = append(cells, C(col, row))
			}
		}
	}
	return cells
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, b := range g.cells {
		if b != nil {
			n++
		}
	}
	return n
}

// CountKind returns the number of cells holding the given kind.
func (g *Grid) CountKind(k Kind) int {
	n := 0
	for _, b := range g.cells {
		if b != nil && b.Kind == k {
			n++
		}
	}
	return n
}

// Hash returns a hash of the grid contents.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%dx%d:", g.Columns, g.Rows)
	for i, b := range g.cells {
		if b != nil {
			fmt.Fprintf(h, "%d=%d,", i, b.Kind)
		}
	}
	return h.Sum64()
}

// String renders the grid as rows of layout codes.
func (g *Grid) String() string {
	buf := make([]rune, 0, (g.Columns+1)*g.Rows)
	for row := 0; row < g.Rows; row++ {
		if row > 0 {
			buf = append(buf, '\n')
		}
		for col := 0; col < g.Columns; col++ {
			buf = append(buf, g.KindAt(C(col, row)).Code())
		}
	}
	return string(buf)
}
