package labyrinth

// State is the engine's lifecycle phase.
// Transitions only move forward: Idle -> Running -> Won | Lost.
type State uint8

const (
	Idle State = iota
	Running
	Won
	Lost
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Won:
		return "Won"
	case Lost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Won || s == Lost
}

// Snapshot is a value copy of everything a renderer or test needs.
type Snapshot struct {
	State    State
	X, Y     float64
	Col, Row int
	TimeLeft float64
	CellSize int
}
