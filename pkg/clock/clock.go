// Package clock is the free running wall clock which is set by decoded DCF77 frames
package clock

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"dcfclock/pkg/dcf77"
)

var ErrInvalidTime = errors.New("invalid time")

// Source tells how the current time was determined.
type Source string

const (
	// SourceRadio means the clock was set by a decoded frame and is running since then.
	SourceRadio Source = "radio"
	// SourceFree means the clock was never set by a decoded frame.
	SourceFree Source = "free"
)

// monthDays is the number of days per month, leap years aren't handled.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Time is the current state of the clock.
type Time struct {
	Month   int `json:"month"`
	Day     int `json:"day"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
	// Synced is the wall time of the last radio sync.
	Synced time.Time `json:"synced"`
	Source Source    `json:"source"`
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d %02d.%02d.", t.Hours, t.Minutes, t.Seconds, t.Day, t.Month)
}

// Clock holds the current time, it is safe for concurrent use.
type Clock struct {
	mu sync.RWMutex
	t  Time
}

// New returns a clock which starts at 13:37:00 on the 1st of January.
func New() *Clock {
	return &Clock{t: Time{Month: 1, Day: 1, Hours: 13, Minutes: 37, Source: SourceFree}}
}

// Validate checks the ranges of a decoded time.
// Parity alone doesn't guarantee valid BCD digits.
func Validate(t dcf77.Time) error {
	switch {
	case t.Month < 1 || t.Month > 12:
		return fmt.Errorf("%w: month %d", ErrInvalidTime, t.Month)
	case t.Day < 1 || t.Day > 31:
		return fmt.Errorf("%w: day %d", ErrInvalidTime, t.Day)
	case t.Day > monthDays[t.Month-1] && !(t.Month == 2 && t.Day == 29):
		return fmt.Errorf("%w: day %d of month %d", ErrInvalidTime, t.Day, t.Month)
	case t.Hours < 0 || t.Hours > 23:
		return fmt.Errorf("%w: hour %d", ErrInvalidTime, t.Hours)
	case t.Minutes < 0 || t.Minutes > 59:
		return fmt.Errorf("%w: minute %d", ErrInvalidTime, t.Minutes)
	}
	return nil
}

// Set sets the clock to second 0 of the decoded time.
// at is the wall time of the sync.
func (c *Clock) Set(t dcf77.Time, at time.Time) error {
	if err := Validate(t); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = Time{
		Month:   t.Month,
		Day:     t.Day,
		Hours:   t.Hours,
		Minutes: t.Minutes,
		Seconds: 0,
		Synced:  at,
		Source:  SourceRadio,
	}
	return nil
}

// Tick advances the clock by one second.
// Without radio sync there are no leap years, the 28th of February is followed by the 1st of March.
func (c *Clock) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &c.t
	if t.Seconds++; t.Seconds < 60 {
		return
	}
	t.Seconds = 0
	if t.Minutes++; t.Minutes < 60 {
		return
	}
	t.Minutes = 0
	if t.Hours++; t.Hours < 24 {
		return
	}
	t.Hours = 0
	if t.Day++; t.Day <= monthDays[t.Month-1] {
		return
	}
	t.Day = 1
	if t.Month++; t.Month > 12 {
		t.Month = 1
	}
}

// Now returns the current time of the clock.
func (c *Clock) Now() Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.t
}

// Run advances the clock every interval until quit is closed.
func (c *Clock) Run(interval time.Duration, quit <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
