package dcf77

import "dcfclock/pkg/port"

const (
	// idle is the state while waiting for a minute mark.
	idle stateType = iota
	// receiving is the state while bits of a frame are received.
	receiving
)

// stateType represents the state of the decoding process.
type stateType int

// Decoder decodes DCF77 frames from edge timestamps.
//
// A Decoder is not safe for concurrent use. Edges must be delivered in order by a single producer.
type Decoder struct {
	timing Timing
	sink   Sink

	// state is idle until a minute mark is detected.
	state stateType
	// pos is the position of the next bit, valid while receiving.
	pos int
	// frame holds the accumulators of the frame being received.
	frame frame

	// lastEdge is the timestamp of the last edge.
	lastEdge Tick
	// lastLevel is the level after the last edge.
	lastLevel port.Level

	stats Stats
}

// New returns an idle decoder which hands decoded times to sink.
// A nil sink is allowed, decoded times are then only reported by ResultDecoded.
func New(timing Timing, sink Sink) *Decoder {
	return &Decoder{
		timing:    timing,
		sink:      sink,
		state:     idle,
		lastLevel: port.High,
	}
}

// Update reports the current signal level, e.g. from a polling loop.
// Level changes are dispatched to OnRising and OnFalling. The decoder starts with a high level.
func (d *Decoder) Update(level port.Level, now Tick) Result {
	return d.Transition(port.Edge(d.lastLevel, level), now)
}

// Transition reports an edge of the given type.
func (d *Decoder) Transition(edge port.EventType, now Tick) Result {
	switch edge {
	case port.RisingEdge:
		return d.OnRising(now)
	case port.FallingEdge:
		return d.OnFalling(now)
	default:
		return ResultNone
	}
}

// OnRising handles the end of a pulse. The low time is decoded to a bit.
// A pulse out of tolerance discards the frame.
func (d *Decoder) OnRising(now Tick) Result {
	kind := d.timing.Classify(d.lastEdge, now, port.RisingEdge)
	d.lastEdge, d.lastLevel = now, port.High

	if d.state == idle {
		return ResultNone
	}

	switch kind {
	case PulseShort:
		return d.AddBit(0)
	case PulseLong:
		return d.AddBit(1)
	default:
		d.stats.TimingFaults++
		d.Scrap()
		return ResultTimingFault
	}
}

// OnFalling handles the start of a pulse.
// If the high time before it is a minute mark, a new frame starts.
func (d *Decoder) OnFalling(now Tick) Result {
	kind := d.timing.Classify(d.lastEdge, now, port.FallingEdge)
	d.lastEdge, d.lastLevel = now, port.Low

	if kind != PulseSync {
		return ResultNone
	}

	d.onSyncGap()
	return ResultSync
}

// onSyncGap starts a new frame, an incomplete frame is discarded.
func (d *Decoder) onSyncGap() {
	if d.state == receiving {
		d.stats.Restarts++
	}

	d.stats.Syncs++
	d.frame.reset()
	d.state = receiving
	d.pos = 0
}

// Scrap discards the frame being received and waits for the next minute mark.
// The bit buffer is kept until then for diagnostics.
func (d *Decoder) Scrap() {
	d.frame.clear()
	d.state = idle
	d.pos = 0
}

// AddBit adds a data bit at the current position. It is ignored while no frame is received.
//  * at a parity position the bit is compared with the running parity, a mismatch discards the frame
//  * after the last position the frame is decoded and handed to the sink
func (d *Decoder) AddBit(bit byte) Result {
	if d.state == idle {
		return ResultNone
	}

	bit &= 1
	d.stats.Bits++

	if !d.frame.add(d.pos, bit) {
		d.stats.ParityFaults++
		d.Scrap()
		return ResultParityFault
	}

	if d.pos < lastPosition {
		d.pos++
		return ResultBit
	}

	t := d.frame.decode()
	d.stats.Frames++
	d.Scrap()

	if d.sink != nil {
		d.sink.Receive(t)
	}
	return ResultDecoded
}

// Synced reports whether a frame is being received.
func (d *Decoder) Synced() bool {
	return d.state == receiving
}

// Position returns the position of the next bit and whether a frame is being received.
func (d *Decoder) Position() (int, bool) {
	return d.pos, d.state == receiving
}

// Frame copies the bits received since the last minute mark to b and returns the number of bits copied.
func (d *Decoder) Frame(b []byte) int {
	return copy(b, d.frame.bits[:d.frame.received])
}

// Stats returns the counters of the decoder.
func (d *Decoder) Stats() Stats {
	return d.stats
}
