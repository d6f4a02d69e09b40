// Package dcf77 is the decoder of the DCF77 time signal.
//
// The DCF77 transmitter reduces its carrier at the start of every second for 100 ms (logical 0) or 200 ms (logical 1).
// The 59th second carries no pulse; the long gap before the next pulse marks the start of a new minute.
// A receiver module delivers the carrier state as a digital level, so each second starts with a falling edge and the
// pulse width is measured on the following rising edge.
//
// All timings are counted in ticks of a coarse clock (10 ms by default). The Decoder works on ticks only and is
// allocation free, so it can be driven from a polling loop as well as from an edge event stream (see Receiver).
package dcf77

import (
	"fmt"
	"time"
)

// Tick is a timestamp in ticks of the sampling clock.
// Differences are calculated with unsigned arithmetic, so a wrapping counter is fine.
type Tick uint32

// DefaultResolution is the duration of one tick.
const DefaultResolution = 10 * time.Millisecond

// Ticks converts a duration to ticks of the given resolution.
func Ticks(d, resolution time.Duration) Tick {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return Tick(d / resolution)
}

// Duration converts ticks to a duration of the given resolution.
func (t Tick) Duration(resolution time.Duration) time.Duration {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return time.Duration(t) * resolution
}

// Time is the decoded time of a frame.
// Seconds aren't transmitted, the time is taken as second 0 of the decoded minute when it is emitted.
type Time struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Day     int `json:"day"`
	Month   int `json:"month"`
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d %02d.%02d.", t.Hours, t.Minutes, t.Day, t.Month)
}

// Sink receives decoded times.
type Sink interface {
	Receive(Time)
}

// SinkFunc is an adapter to use an ordinary function as Sink.
type SinkFunc func(Time)

// Receive calls f(t).
func (f SinkFunc) Receive(t Time) {
	f(t)
}

// Result is the outcome of a single decoder call.
type Result int

const (
	// ResultNone means the edge carried no information (e.g. idle decoder or a regular falling edge).
	ResultNone Result = iota
	// ResultSync means a minute mark was detected and a new frame starts.
	ResultSync
	// ResultBit means a data bit was accepted.
	ResultBit
	// ResultDecoded means the frame is complete and its time was handed to the sink.
	ResultDecoded
	// ResultTimingFault means a pulse width was out of tolerance, the frame is discarded.
	ResultTimingFault
	// ResultParityFault means a parity bit didn't match, the frame is discarded.
	ResultParityFault
)

func (r Result) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultSync:
		return "sync"
	case ResultBit:
		return "bit"
	case ResultDecoded:
		return "decoded"
	case ResultTimingFault:
		return "timing fault"
	case ResultParityFault:
		return "parity fault"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Stats are the counters of a decoder.
type Stats struct {
	// Syncs is the number of detected minute marks.
	Syncs uint64 `json:"syncs"`
	// Bits is the number of accepted data bits.
	Bits uint64 `json:"bits"`
	// Frames is the number of decoded frames.
	Frames uint64 `json:"frames"`
	// TimingFaults is the number of frames discarded because of an invalid pulse width.
	TimingFaults uint64 `json:"timingFaults"`
	// ParityFaults is the number of frames discarded because of a parity mismatch.
	ParityFaults uint64 `json:"parityFaults"`
	// Restarts is the number of incomplete frames discarded by a new minute mark.
	Restarts uint64 `json:"restarts"`
}
