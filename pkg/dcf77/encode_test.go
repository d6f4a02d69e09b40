package dcf77

import (
	"testing"

	"dcfclock/pkg/port"
)

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		time  Time
		check map[int]byte
	}{
		{
			time: Time{Hours: 0, Minutes: 0, Day: 1, Month: 1},
			check: map[int]byte{
				20: 1,
				21: 0, 28: 0,
				29: 0, 35: 0,
				36: 1, 45: 1, 58: 0,
			},
		},
		{
			time: Time{Hours: 23, Minutes: 58, Day: 31, Month: 12},
			check: map[int]byte{
				// minute 58: ones 0001 tens 101
				21: 0, 22: 0, 23: 0, 24: 1, 25: 1, 26: 0, 27: 1, 28: 1,
				// hour 23: ones 1100 tens 01
				29: 1, 30: 1, 31: 0, 32: 0, 33: 0, 34: 1, 35: 1,
				// day 31: ones 1000 tens 11, month 12: ones 0100 tens 1
				36: 1, 40: 1, 41: 1, 45: 0, 46: 1, 49: 1, 58: 1,
			},
		},
	} {
		frame := Encode(tc.time)
		for pos, want := range tc.check {
			if frame[pos] != want {
				t.Errorf("%v: bit %d is %d, want %d", tc.time, pos, frame[pos], want)
			}
		}

		for _, g := range groups {
			var p byte
			for i := g.first; i <= g.check; i++ {
				p ^= frame[i]
			}
			if p != 0 {
				t.Errorf("%v: odd parity in group %d..%d", tc.time, g.first, g.check)
			}
		}
	}
}

func TestPulses(t *testing.T) {
	frame := Encode(Time{Hours: 9, Minutes: 30, Day: 15, Month: 6})
	edges, end := DefaultTiming.Pulses(frame, 500, 100)

	if len(edges) != 2*FrameLength {
		t.Fatalf("got %d edges, want %d", len(edges), 2*FrameLength)
	}
	if end != edges[len(edges)-1].Tick {
		t.Errorf("end: got %d, want %d", end, edges[len(edges)-1].Tick)
	}

	prev := Tick(500)
	for i, e := range edges {
		kind := Classify(prev, e.Tick, e.Type)
		prev = e.Tick

		var want PulseKind
		switch {
		case i == 0:
			want = PulseSync
		case e.Type == port.FallingEdge:
			want = PulseNone
		case frame[i/2] == 1:
			want = PulseLong
		default:
			want = PulseShort
		}

		if kind != want {
			t.Errorf("edge %d (%v at %d): got %v, want %v", i, e.Type, e.Tick, kind, want)
		}
	}

	// one pulse per period
	for i := 2; i < len(edges); i += 2 {
		if d := edges[i].Tick - edges[i-2].Tick; d != 100 {
			t.Errorf("pulse %d starts %d ticks after the previous one", i/2, d)
		}
	}
}
