//go:build linux

package raspberry

import (
	"time"

	"dcfclock/pkg/port"

	"github.com/warthog618/gpio"
	"github.com/womat/debug"
)

// Sampler polls the level of a pin once per tick and reports level changes.
// The timestamps are relative to the start of the sampler.
type Sampler struct {
	pin *gpio.Pin
	// C receives the edge changes of the pin.
	C chan port.Event

	// quit is the channel to stop the sampler
	quit chan struct{}
	// done signals that run() is terminated
	done chan struct{}
}

// NewSampler maps the gpio memory and starts polling the pin.
// The pin number provided is the BCM GPIO number.
func NewSampler(pin int, terminator string, tick time.Duration) (*Sampler, error) {
	if !validTerminator(terminator) || tick <= 0 {
		return nil, ErrInvalidParam
	}

	if err := gpio.Open(); err != nil {
		return nil, err
	}

	s := &Sampler{
		pin:  gpio.NewPin(pin),
		C:    make(chan port.Event, eventBuffer),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	s.pin.Input()
	switch terminator {
	case PullUp:
		s.pin.PullUp()
	case PullDown:
		s.pin.PullDown()
	}

	debug.InfoLog.Printf("sampling gpio %v every %v", pin, tick)

	go s.run(tick)
	return s, nil
}

// Events returns the channel C.
func (s *Sampler) Events() <-chan port.Event {
	return s.C
}

// Close stops sampling and unmaps the gpio memory.
func (s *Sampler) Close() error {
	close(s.quit)
	<-s.done
	close(s.C)
	return gpio.Close()
}

// run reads the pin at every tick, like a timer interrupt would do.
func (s *Sampler) run(tick time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	start := time.Now()
	last := port.Level(s.pin.Read())

	for {
		select {
		case <-s.quit:
			return
		case now := <-ticker.C:
			level := port.Level(s.pin.Read())
			if t := port.Edge(last, level); t != 0 {
				select {
				case s.C <- port.Event{Type: t, Timestamp: now.Sub(start)}:
				default:
					debug.ErrorLog.Printf("event buffer of gpio %v is full, %v edge dropped", s.pin.Pin(), t)
				}
			}
			last = level
		}
	}
}
