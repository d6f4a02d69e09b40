package dcf77

import "dcfclock/pkg/port"

// PulseKind is the classification of the interval between two edges.
type PulseKind int

const (
	// PulseNone is a falling edge interval without meaning.
	PulseNone PulseKind = iota
	// PulseShort is a 100 ms pulse (bit 0).
	PulseShort
	// PulseLong is a 200 ms pulse (bit 1).
	PulseLong
	// PulseSync is the gap of the minute mark.
	PulseSync
	// PulseInvalid is a pulse out of tolerance.
	PulseInvalid
)

func (k PulseKind) String() string {
	switch k {
	case PulseShort:
		return "short"
	case PulseLong:
		return "long"
	case PulseSync:
		return "sync"
	case PulseInvalid:
		return "invalid"
	default:
		return "none"
	}
}

// Band is an open interval of ticks.
type Band struct {
	Min Tick `yaml:"min" json:"min"`
	Max Tick `yaml:"max" json:"max"`
}

// Contains reports whether min < t < max.
func (b Band) Contains(t Tick) bool {
	return t > b.Min && t < b.Max
}

// Center returns the middle of the band.
func (b Band) Center() Tick {
	return b.Min + (b.Max-b.Min)/2
}

// Timing holds the tolerance bands of the signal, in ticks.
type Timing struct {
	// Short is the low time of a 0 bit, measured on the rising edge.
	Short Band `yaml:"short" json:"short"`
	// Long is the low time of a 1 bit, measured on the rising edge.
	Long Band `yaml:"long" json:"long"`
	// Sync is the high time of the minute mark, measured on the falling edge.
	Sync Band `yaml:"sync" json:"sync"`
}

// DefaultTiming are the tolerance bands for a 10 ms tick.
var DefaultTiming = Timing{
	Short: Band{Min: 7, Max: 13},
	Long:  Band{Min: 17, Max: 23},
	Sync:  Band{Min: 190, Max: 210},
}

// Classify classifies the interval between prev and now using DefaultTiming.
func Classify(prev, now Tick, edge port.EventType) PulseKind {
	return DefaultTiming.Classify(prev, now, edge)
}

// Classify classifies the interval between the previous edge at prev and the edge at now.
//  * falling edge: a high time within the sync band is the minute mark, anything else has no meaning
//  * rising edge: the low time is a short pulse, a long pulse or invalid
func (t Timing) Classify(prev, now Tick, edge port.EventType) PulseKind {
	elapsed := now - prev

	switch edge {
	case port.FallingEdge:
		if t.Sync.Contains(elapsed) {
			return PulseSync
		}
		return PulseNone
	case port.RisingEdge:
		switch {
		case t.Short.Contains(elapsed):
			return PulseShort
		case t.Long.Contains(elapsed):
			return PulseLong
		default:
			return PulseInvalid
		}
	default:
		return PulseNone
	}
}
