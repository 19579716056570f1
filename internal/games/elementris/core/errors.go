package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is matched by every OutOfBoundsError.
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrNoRoom is matched by every NoRoomError.
	ErrNoRoom = errors.New("no room to spawn")
)

// OutOfBoundsError reports access to a cell outside the grid.
// Grid.Read and Grid.Occupy panic with it; it is never expected during play.
type OutOfBoundsError struct {
	Cell    Cell
	Columns int
	Rows    int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell %s outside %dx%d grid", e.Cell, e.Columns, e.Rows)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// NoRoomError reports that a new block cannot be spawned (top-out).
type NoRoomError struct {
	Cell Cell
	Kind Kind
}

func (e *NoRoomError) Error() string {
	return fmt.Sprintf("cannot spawn %s at %s: cell occupied", e.Kind, e.Cell)
}

func (e *NoRoomError) Unwrap() error {
	return ErrNoRoom
}
