//go:build !linux

package raspberry

import (
	"time"

	"dcfclock/pkg/port"
)

// Chip is not available on this platform.
type Chip struct{}

// Line is not available on this platform.
type Line struct {
	C chan port.Event
}

// Sampler is not available on this platform.
type Sampler struct {
	C chan port.Event
}

// Open returns ErrUnsupported.
func Open(string) (*Chip, error) {
	return nil, ErrUnsupported
}

// NewLine returns ErrUnsupported.
func (c *Chip) NewLine(int, string, time.Duration) (*Line, error) {
	return nil, ErrUnsupported
}

// Close does nothing.
func (c *Chip) Close() error {
	return nil
}

// Events returns the channel C.
func (l *Line) Events() <-chan port.Event {
	return l.C
}

// Close does nothing.
func (l *Line) Close() error {
	return nil
}

// NewSampler returns ErrUnsupported.
func NewSampler(int, string, time.Duration) (*Sampler, error) {
	return nil, ErrUnsupported
}

// Events returns the channel C.
func (s *Sampler) Events() <-chan port.Event {
	return s.C
}

// Close does nothing.
func (s *Sampler) Close() error {
	return nil
}
