package clock

import (
	"errors"
	"testing"
	"time"

	"dcfclock/pkg/dcf77"
)

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		time dcf77.Time
		ok   bool
	}{
		{dcf77.Time{Hours: 0, Minutes: 0, Day: 1, Month: 1}, true},
		{dcf77.Time{Hours: 23, Minutes: 59, Day: 31, Month: 12}, true},
		{dcf77.Time{Hours: 12, Minutes: 0, Day: 29, Month: 2}, true},
		{dcf77.Time{Hours: 12, Minutes: 0, Day: 30, Month: 2}, false},
		{dcf77.Time{Hours: 12, Minutes: 0, Day: 31, Month: 4}, false},
		{dcf77.Time{Hours: 24, Minutes: 0, Day: 1, Month: 1}, false},
		{dcf77.Time{Hours: 0, Minutes: 60, Day: 1, Month: 1}, false},
		{dcf77.Time{Hours: 0, Minutes: 0, Day: 0, Month: 1}, false},
		{dcf77.Time{Hours: 0, Minutes: 0, Day: 1, Month: 0}, false},
		{dcf77.Time{Hours: 0, Minutes: 0, Day: 1, Month: 13}, false},
		{dcf77.Time{Hours: 0, Minutes: 79, Day: 1, Month: 1}, false},
	} {
		err := Validate(tc.time)
		if tc.ok && err != nil {
			t.Errorf("%v: unexpected error %v", tc.time, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidTime) {
			t.Errorf("%v: got %v, want %v", tc.time, err, ErrInvalidTime)
		}
	}
}

func TestSet(t *testing.T) {
	c := New()
	if got := c.Now().Source; got != SourceFree {
		t.Fatalf("source: got %q, want %q", got, SourceFree)
	}

	at := time.Date(2026, 7, 12, 18, 59, 0, 0, time.UTC)
	if err := c.Set(dcf77.Time{Hours: 18, Minutes: 59, Day: 12, Month: 7}, at); err != nil {
		t.Fatal(err)
	}

	want := Time{Month: 7, Day: 12, Hours: 18, Minutes: 59, Seconds: 0, Synced: at, Source: SourceRadio}
	if got := c.Now(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if err := c.Set(dcf77.Time{Hours: 25, Minutes: 0, Day: 1, Month: 1}, at); err == nil {
		t.Fatal("invalid time accepted")
	}
	if got := c.Now(); got != want {
		t.Fatalf("invalid time changed the clock: %+v", got)
	}
}

func TestTick(t *testing.T) {
	for _, tc := range []struct {
		name  string
		from  dcf77.Time
		ticks int
		want  string
	}{
		{"second", dcf77.Time{Hours: 10, Minutes: 0, Day: 1, Month: 1}, 1, "10:00:01 01.01."},
		{"minute", dcf77.Time{Hours: 10, Minutes: 0, Day: 1, Month: 1}, 60, "10:01:00 01.01."},
		{"hour", dcf77.Time{Hours: 10, Minutes: 59, Day: 1, Month: 1}, 60, "11:00:00 01.01."},
		{"day", dcf77.Time{Hours: 23, Minutes: 59, Day: 1, Month: 1}, 60, "00:00:00 02.01."},
		{"month", dcf77.Time{Hours: 23, Minutes: 59, Day: 30, Month: 4}, 60, "00:00:00 01.05."},
		{"february", dcf77.Time{Hours: 23, Minutes: 59, Day: 28, Month: 2}, 60, "00:00:00 01.03."},
		{"leap day", dcf77.Time{Hours: 10, Minutes: 0, Day: 29, Month: 2}, 60, "10:01:00 29.02."},
		{"after leap day", dcf77.Time{Hours: 23, Minutes: 59, Day: 29, Month: 2}, 60, "00:00:00 01.03."},
		{"year", dcf77.Time{Hours: 23, Minutes: 59, Day: 31, Month: 12}, 60, "00:00:00 01.01."},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			if err := c.Set(tc.from, time.Now()); err != nil {
				t.Fatal(err)
			}
			for i := 0; i < tc.ticks; i++ {
				c.Tick()
			}
			if got := c.Now().String(); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	c := New()
	quit := make(chan struct{})
	done := make(chan struct{})

	go func() {
		c.Run(time.Millisecond, quit)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for c.Now().Seconds < 3 {
		if time.Now().After(deadline) {
			t.Fatal("clock doesn't advance")
		}
		time.Sleep(time.Millisecond)
	}

	close(quit)
	<-done
}
