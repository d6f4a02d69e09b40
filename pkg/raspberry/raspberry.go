// Package raspberry is the watcher for gpio ports
//
// Two kinds of sources deliver level changes of the receiver line:
//  * Line watches the edges of a gpio line by the gpio character device (kernel timestamps)
//  * Sampler polls the level of a gpio pin in /dev/gpiomem once per tick
package raspberry

import (
	"errors"
	"fmt"

	"dcfclock/pkg/port"
)

var (
	ErrInvalidParam = fmt.Errorf("invalid parameters")
	ErrUnsupported  = errors.New("gpio is not supported on this platform")
)

// Source delivers the edges of a line.
type Source interface {
	// Events returns the channel of line events. It is closed by Close.
	Events() <-chan port.Event
	// Close releases the line.
	Close() error
}

const (
	// eventBuffer is the capacity of the event channel.
	// The decoder is fast, the buffer only bridges scheduling latencies.
	eventBuffer = 64

	// terminators of the input line
	PullUp   = "pullup"
	PullDown = "pulldown"
	None     = "none"
)

// validTerminator checks the terminator configuration.
func validTerminator(terminator string) bool {
	switch terminator {
	case PullUp, PullDown, None:
		return true
	default:
		return false
	}
}
