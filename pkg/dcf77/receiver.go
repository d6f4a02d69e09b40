package dcf77

import (
	"sync"
	"time"

	"dcfclock/pkg/port"

	"github.com/womat/debug"
)

// Receiver runs a Decoder on a stream of line events.
type Receiver struct {
	// C is the channel to send the decoded times.
	// If nobody is listening, a decoded time is dropped.
	C chan Time

	// rx is the channel to receive the line events.
	rx <-chan port.Event
	// resolution is the duration of one tick.
	resolution time.Duration

	// mu guards decoder, it is used by run() and the diagnostic getters.
	mu      sync.Mutex
	decoder *Decoder

	// quit is the channel to stop the receiver
	quit chan struct{}
	// done signals that run() is terminated
	done chan struct{}
}

// NewReceiver starts decoding the events of channel c.
// The event timestamps are converted to ticks of the given resolution.
func NewReceiver(c <-chan port.Event, timing Timing, resolution time.Duration) *Receiver {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	r := &Receiver{
		C:          make(chan Time, 1),
		rx:         c,
		resolution: resolution,
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	r.decoder = New(timing, r)

	debug.InfoLog.Print("waiting for dcf77 minute mark")

	go r.run()
	return r
}

// Receive implements Sink, it forwards t to channel C.
func (r *Receiver) Receive(t Time) {
	select {
	case r.C <- t:
	default:
		debug.ErrorLog.Printf("no reader for decoded time %v, dropped", t)
	}
}

// Close stops decoding. C is closed after run() is terminated.
func (r *Receiver) Close() error {
	select {
	case <-r.done:
	default:
		close(r.quit)
		<-r.done
	}
	return nil
}

// Stats returns the counters of the decoder.
func (r *Receiver) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decoder.Stats()
}

// Synced reports whether a frame is being received.
func (r *Receiver) Synced() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decoder.Synced()
}

// Frame returns the bits received since the last minute mark.
func (r *Receiver) Frame() []byte {
	b := make([]byte, FrameLength)

	r.mu.Lock()
	n := r.decoder.Frame(b)
	r.mu.Unlock()

	return b[:n]
}

// run receives events and sends them to the decoder until Close is called or the event channel is closed.
func (r *Receiver) run() {
	defer func() {
		close(r.C)
		close(r.done)
	}()

	for {
		select {
		case <-r.quit:
			return
		case evt, open := <-r.rx:
			if !open {
				debug.InfoLog.Print("event channel closed, stop dcf77 receiver")
				return
			}

			r.handle(evt)
		}
	}
}

// handle passes a single event to the decoder and logs the outcome.
func (r *Receiver) handle(evt port.Event) {
	now := Ticks(evt.Timestamp, r.resolution)

	r.mu.Lock()
	res := r.decoder.Transition(evt.Type, now)
	pos, _ := r.decoder.Position()
	r.mu.Unlock()

	switch res {
	case ResultSync:
		debug.DebugLog.Print("dcf77 minute mark detected")
	case ResultBit:
		debug.TraceLog.Printf("dcf77 bit %v accepted", pos-1)
	case ResultTimingFault:
		debug.DebugLog.Printf("dcf77 pulse out of tolerance (%v edge at tick %v), wait for minute mark", evt.Type, now)
	case ResultParityFault:
		debug.DebugLog.Print("dcf77 parity mismatch, wait for minute mark")
	case ResultDecoded:
		debug.InfoLog.Print("dcf77 frame decoded")
	}
}
