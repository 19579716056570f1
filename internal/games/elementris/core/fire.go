package core

import "github.com/kamstrup/intmap"

// FireEngine applies ignition and collapse rules to a grid.
type FireEngine struct {
	ids *idSource
}

// NewFireEngine creates an engine with its own block ID source.
func NewFireEngine() *FireEngine {
	return &FireEngine{ids: &idSource{}}
}

// CollapseResult contains the outcome of a collapse pass.
type CollapseResult struct {
	Events    []Event
	Destroyed []Cell
	Dislodged []*Block // Now falling; the caller owns them
}

// Propagate spreads fire from every ignition source to all flammable blocks
// reachable through orthogonal adjacency. Each cell is visited at most once,
// so the pass terminates on any shape, including rings around a source.
func (e *FireEngine) Propagate(g *Grid) []Event {
	events := make([]Event, 0)

	visited := intmap.New[int, struct{}](g.Columns * g.Rows)
	queue := make([]Cell, 0)

	// Seeds in row-major order for determinism
	for _, c := range g.Occupied() {
		if RuleFor(g.Read(c).Kind).Ignites {
			visited.Put(g.index(c), struct{}{})
			queue = append(queue, c)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range neighbors4 {
			next := cur.Add(d[0], d[1])
			if !g.InBounds(next) {
				continue
			}
			if _, seen := visited.Get(g.index(next)); seen {
				continue
			}
			b := g.Read(next)
			if b == nil {
				continue
			}
			burnt := RuleFor(b.Kind).BurnsInto
			if burnt == KindEmpty {
				continue
			}

			visited.Put(g.index(next), struct{}{})
			nb := e.replace(g, next, burnt)
			events = append(events, Event{
				Type:    EventIgnited,
				Cell:    next,
				Kind:    burnt,
				BlockID: nb.ID,
			})
			queue = append(queue, next)
		}
	}

	return events
}

// replace destroys the block in a cell and settles a new block of the given kind there.
func (e *FireEngine) replace(g *Grid, c Cell, k Kind) *Block {
	g.Occupy(c, nil)
	nb := &Block{
		ID:   e.ids.take(),
		Kind: k,
		Cell: c,
		Pos:  g.ToWorld(c),
	}
	g.Occupy(c, nb)
	return nb
}

// Collapse removes every collapsing block and dislodges the contiguous run of
// blocks directly above each removed cell. A block separated from the removed
// cell by an empty cell stays settled.
func (e *FireEngine) Collapse(g *Grid) CollapseResult {
	result := CollapseResult{
		Events:    make([]Event, 0),
		Destroyed: make([]Cell, 0),
		Dislodged: make([]*Block, 0),
	}

	// Remove everything first so a stack of burning blocks clears as a whole
	for _, c := range g.Occupied() {
		b := g.Read(c)
		if !RuleFor(b.Kind).Collapses {
			continue
		}
		g.Occupy(c, nil)
		result.Destroyed = append(result.Destroyed, c)
		result.Events = append(result.Events, Event{
			Type:    EventDestroyed,
			Cell:    c,
			Kind:    b.Kind,
			BlockID: b.ID,
		})
	}

	for _, gap := range result.Destroyed {
		for c := gap.Above(); g.InBounds(c); c = c.Above() {
			b := g.Read(c)
			if b == nil {
				break
			}
			g.Occupy(c, nil)
			b.Falling = true
			b.Pos = g.ToWorld(c)
			result.Dislodged = append(result.Dislodged, b)
			result.Events = append(result.Events, Event{
				Type:    EventDislodged,
				Cell:    c,
				Kind:    b.Kind,
				BlockID: b.ID,
			})
		}
	}

	return result
}
