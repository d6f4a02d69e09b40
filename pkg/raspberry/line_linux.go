//go:build linux

package raspberry

import (
	"time"

	"dcfclock/pkg/port"

	"github.com/warthog618/gpiod"
	"github.com/womat/debug"
)

// Chip represents a single GPIO chip that controls a set of lines.
type Chip struct {
	gpiodChip *gpiod.Chip
}

// Line represents a single requested line.
type Line struct {
	gpiodLine *gpiod.Line
	// C receives the edge changes of the line.
	C chan port.Event
}

// Open opens a GPIO character device.
func Open(name string) (*Chip, error) {
	if name == "" {
		name = "gpiochip0"
	}

	c, err := gpiod.NewChip(name)
	if err != nil {
		return nil, err
	}
	return &Chip{gpiodChip: c}, nil
}

// NewLine requests control of a single line on a chip.
//   If granted, control is maintained until the Line is closed.
//   Watch the line for edge changes and send the changes to channel C.
//   A debounce period > 0 is handled by the kernel, the line must be stable for this period.
func (c *Chip) NewLine(gpio int, terminator string, debounce time.Duration) (*Line, error) {
	if !validTerminator(terminator) {
		return nil, ErrInvalidParam
	}

	line := &Line{C: make(chan port.Event, eventBuffer)}

	// handler runs in the watcher goroutine of gpiod
	handler := func(evt gpiod.LineEvent) {
		var t port.EventType

		switch evt.Type {
		case gpiod.LineEventRisingEdge:
			t = port.RisingEdge
		case gpiod.LineEventFallingEdge:
			t = port.FallingEdge
		default:
			debug.ErrorLog.Printf("invalid line event: %v", evt.Type)
			return
		}

		select {
		case line.C <- port.Event{Type: t, Timestamp: evt.Timestamp}:
		default:
			debug.ErrorLog.Printf("event buffer of gpio %v is full, %v edge dropped", gpio, t)
		}
	}

	opts := []gpiod.LineReqOption{gpiod.WithEventHandler(handler), gpiod.WithBothEdges, gpiod.AsInput}

	switch terminator {
	case PullUp:
		opts = append(opts, gpiod.WithPullUp)
	case PullDown:
		opts = append(opts, gpiod.WithPullDown)
	}

	if debounce > 0 {
		opts = append(opts, gpiod.WithDebounce(debounce))
	}

	var err error
	if line.gpiodLine, err = c.gpiodChip.RequestLine(gpio, opts...); err != nil {
		return nil, err
	}

	debug.InfoLog.Printf("watching gpio %v (%v, debounce %v)", gpio, terminator, debounce)
	return line, nil
}

// Close releases the Chip.
//
// It does not release any lines which may be requested - they must be closed
// independently.
func (c *Chip) Close() error {
	return c.gpiodChip.Close()
}

// Events returns the channel C.
func (l *Line) Events() <-chan port.Event {
	return l.C
}

// Close releases all resources held by the requested line.
//
// Note that this includes waiting for any running event handler to return.
// As a consequence the Close must not be called from the context of the event
// handler - the Close should be called from a different goroutine.
func (l *Line) Close() error {
	if err := l.gpiodLine.Close(); err != nil {
		return err
	}
	close(l.C)
	return nil
}
