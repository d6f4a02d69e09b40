// Package emulator generates a DCF77 signal of the system clock, for testing without a receiver module
package emulator

import (
	"time"

	"dcfclock/pkg/dcf77"
	"dcfclock/pkg/port"

	"github.com/womat/debug"
)

// Emulator sends the edges of a DCF77 signal in real time.
// Each frame announces the minute after the one it is transmitted in. The frames aren't aligned to the
// minutes of the system clock, the minute mark is as long as the center of the sync band.
type Emulator struct {
	// C receives the emulated edges.
	C chan port.Event

	timing     dcf77.Timing
	resolution time.Duration
	// period is the number of ticks of a second
	period dcf77.Tick

	// quit is the channel to stop the emulator
	quit chan struct{}
	// done signals that run() is terminated
	done chan struct{}
}

// New starts the emulation. The edges are timestamped in ticks of resolution since the start.
// period is the number of ticks between two pulses, 0 means a real second.
func New(timing dcf77.Timing, resolution time.Duration, period dcf77.Tick) *Emulator {
	if resolution <= 0 {
		resolution = dcf77.DefaultResolution
	}
	if period == 0 {
		period = dcf77.Ticks(time.Second, resolution)
	}

	e := &Emulator{
		C:          make(chan port.Event),
		timing:     timing,
		resolution: resolution,
		period:     period,
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	debug.InfoLog.Printf("emulating dcf77 signal with a resolution of %v", resolution)

	go e.run()
	return e
}

// Events returns the channel C.
func (e *Emulator) Events() <-chan port.Event {
	return e.C
}

// Close stops the emulation and closes channel C.
func (e *Emulator) Close() error {
	close(e.quit)
	<-e.done
	close(e.C)
	return nil
}

// run sends one frame after the other until Close is called.
func (e *Emulator) run() {
	defer close(e.done)

	start := time.Now()

	var tick dcf77.Tick
	for {
		next := start.Add(tick.Duration(e.resolution)).Truncate(time.Minute).Add(time.Minute)
		t := dcf77.Time{Hours: next.Hour(), Minutes: next.Minute(), Day: next.Day(), Month: int(next.Month())}
		debug.DebugLog.Printf("emulating frame %v", t)

		edges, end := e.timing.Pulses(dcf77.Encode(t), tick, e.period)
		for _, edge := range edges {
			ts := edge.Tick.Duration(e.resolution)

			select {
			case <-e.quit:
				return
			case <-time.After(time.Until(start.Add(ts))):
			}

			select {
			case <-e.quit:
				return
			case e.C <- port.Event{Type: edge.Type, Timestamp: ts}:
			}
		}
		tick = end
	}
}
