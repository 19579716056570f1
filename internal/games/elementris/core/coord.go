package core

import "fmt"

// Cell is a discrete grid coordinate.
// Col increases to the right, Row increases downward.
type Cell struct {
	Col int
	Row int
}

// C is a convenience constructor for Cell.
func C(col, row int) Cell {
	return Cell{Col: col, Row: row}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Add returns a new Cell offset by (dc, dr).
func (c Cell) Add(dc, dr int) Cell {
	return Cell{Col: c.Col + dc, Row: c.Row + dr}
}

// Below returns the cell one row down.
func (c Cell) Below() Cell {
	return c.Add(0, 1)
}

// Above returns the cell one row up.
func (c Cell) Above() Cell {
	return c.Add(0, -1)
}

// neighbors4 are the orthogonal offsets: left, right, up, down.
var neighbors4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Vec is a continuous position in world space.
type Vec struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// String returns a string representation of the position.
func (v Vec) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y)
}
