package dcf77

import "dcfclock/pkg/port"

// Edge is an edge of the encoded signal.
type Edge struct {
	Tick Tick
	Type port.EventType
}

// Encode builds the frame of t.
// Weekday, year and the status bits are left 0, the parity bits are set for even parity.
func Encode(t Time) [FrameLength]byte {
	var b [FrameLength]byte

	b[startOfTime] = 1

	put := func(f field, v int) {
		r := layout[f]
		for i := 0; i < r.width; i++ {
			b[r.first+i] = byte(v>>uint(i)) & 1
		}
	}

	put(minuteOnes, t.Minutes%10)
	put(minuteTens, t.Minutes/10)
	put(hourOnes, t.Hours%10)
	put(hourTens, t.Hours/10)
	put(dayOnes, t.Day%10)
	put(dayTens, t.Day/10)
	put(monthOnes, t.Month%10)
	put(monthTens, t.Month/10)

	for _, g := range groups {
		var p byte
		for i := g.first; i < g.check; i++ {
			p ^= b[i]
		}
		b[g.check] = p
	}

	return b
}

// Pulses renders a frame as edges.
// start is the tick of the rising edge before the minute mark, period the ticks between two pulses.
// The minute mark and the pulse widths are the centers of the timing bands.
// It returns the edges and the tick of the last rising edge, which is the start of the next frame.
func (t Timing) Pulses(frame [FrameLength]byte, start, period Tick) ([]Edge, Tick) {
	edges := make([]Edge, 0, 2*FrameLength)

	fall := start + t.Sync.Center()
	var rise Tick

	for i, bit := range frame {
		if i > 0 {
			fall += period
		}

		width := t.Short.Center()
		if bit != 0 {
			width = t.Long.Center()
		}
		rise = fall + width

		edges = append(edges,
			Edge{Tick: fall, Type: port.FallingEdge},
			Edge{Tick: rise, Type: port.RisingEdge})
	}

	return edges, rise
}
