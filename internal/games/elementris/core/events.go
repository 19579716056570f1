package core

// EventType identifies what happened to a cell during a tick.
type EventType uint8

const (
	EventLanded    EventType = iota // A falling block settled into a cell
	EventIgnited                    // A block was transformed by fire
	EventDestroyed                  // A block was removed from the grid
	EventDislodged                  // A settled block started falling again
)

// String returns the string representation of an event type.
func (t EventType) String() string {
	switch t {
	case EventLanded:
		return "landed"
	case EventIgnited:
		return "ignited"
	case EventDestroyed:
		return "destroyed"
	case EventDislodged:
		return "dislodged"
	default:
		return "unknown"
	}
}

// Event records a single change to the playfield.
// Kind is the block kind after the change (the removed kind for EventDestroyed).
type Event struct {
	Type    EventType
	Cell    Cell
	Kind    Kind
	BlockID int
}

// TickResult contains information about what happened during a tick.
type TickResult struct {
	Tick   uint64
	Events []Event
	Landed int // Number of landing events this tick
}

// Count returns how many events of the given type occurred.
func (r TickResult) Count(t EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}
