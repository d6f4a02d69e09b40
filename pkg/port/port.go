// Package port holds the definition of a physical input port and its edge events
package port

import "time"

// EventType indicates the type of change to the line active state.
//
// Note that for active low lines a low line level results in a high active
// state.
type EventType int

const (
	_ EventType = iota
	// RisingEdge indicates an inactive to active event (low to high).
	RisingEdge
	// FallingEdge indicates an active to inactive event (high to low).
	FallingEdge
)

func (t EventType) String() string {
	switch t {
	case RisingEdge:
		return "rising"
	case FallingEdge:
		return "falling"
	default:
		return "none"
	}
}

// Event is a level change of a line.
type Event struct {
	// Timestamp indicates the time the event was detected.
	// The origin is defined by the source (e.g. kernel monotonic clock or sampler start).
	Timestamp time.Duration
	// The type of state change event this structure represents.
	Type EventType
}

// Level is the logical level of a line.
type Level bool

const (
	// High indicates a logical 1.
	High Level = true
	// Low indicates a logical 0.
	Low Level = false
)

// Edge returns the edge between two consecutive levels, 0 if the level didn't change.
func Edge(from, to Level) EventType {
	switch {
	case from == Low && to == High:
		return RisingEdge
	case from == High && to == Low:
		return FallingEdge
	default:
		return 0
	}
}
