package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"dcfclock/pkg/app/config"
	"dcfclock/pkg/clock"
	"dcfclock/pkg/dcf77"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/womat/debug"
)

func TestMain(m *testing.M) {
	debug.SetDebug(os.Stderr, debug.Standard)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T, configure func(*config.Config)) *App {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Source = config.SourceEmulator
	cfg.Webserver.URL = "http://127.0.0.1:0"
	if configure != nil {
		configure(cfg)
	}
	if err := cfg.LoadConfig(); err != nil {
		t.Fatal(err)
	}

	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err = a.init(); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = a.Close() })
	return a
}

func get(t *testing.T, a *App, path string) (int, []byte) {
	t.Helper()

	resp, err := a.web.Test(httptest.NewRequest(http.MethodGet, path, nil), 2000)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, body
}

func TestRoutes(t *testing.T) {
	a := newTestApp(t, nil)

	for _, tc := range []struct {
		path     string
		contains string
	}{
		{"/version", `"version":"` + VERSION + `"`},
		{"/health", `"NumGoroutines"`},
		{"/time", `"source":"free"`},
		{"/stats", `"frames":0`},
		{"/frame", `"length":`},
		{"/metrics", "dcf77_frames_total 0"},
	} {
		code, body := get(t, a, tc.path)
		if code != http.StatusOK {
			t.Errorf("GET %s: status %d", tc.path, code)
			continue
		}
		if !strings.Contains(string(body), tc.contains) {
			t.Errorf("GET %s: %q not in %s", tc.path, tc.contains, body)
		}
	}
}

func TestRoutesDisabled(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) {
		c.Webserver.Webservices["metrics"] = false
		c.Webserver.Webservices["frame"] = false
	})

	for _, path := range []string{"/metrics", "/frame"} {
		if code, _ := get(t, a, path); code != http.StatusNotFound {
			t.Errorf("GET %s: status %d, want %d", path, code, http.StatusNotFound)
		}
	}
}

func TestOnDecoded(t *testing.T) {
	a := newTestApp(t, nil)
	at := time.Date(2026, 7, 12, 18, 59, 0, 0, time.Local)

	a.onDecoded(dcf77.Time{Hours: 18, Minutes: 59, Day: 12, Month: 7}, at)

	code, body := get(t, a, "/time")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}

	var got clock.Time
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.Hours != 18 || got.Minutes != 59 || got.Day != 12 || got.Month != 7 || got.Source != clock.SourceRadio {
		t.Errorf("clock: %+v", got)
	}
	if !got.Synced.Equal(at) {
		t.Errorf("synced: got %v, want %v", got.Synced, at)
	}

	// invalid values are rejected and the clock keeps running
	a.onDecoded(dcf77.Time{Hours: 18, Minutes: 79, Day: 12, Month: 7}, at.Add(time.Minute))

	if got := testutil.ToFloat64(a.rejected); got != 1 {
		t.Errorf("rejected: got %v, want 1", got)
	}
	if now := a.clock.Now(); now.Minutes != 59 || !now.Synced.Equal(at) {
		t.Errorf("clock changed by invalid time: %+v", now)
	}

	_, metrics := get(t, a, "/metrics")
	if !strings.Contains(string(metrics), "dcfclock_radio_synced 1") {
		t.Errorf("metrics: %s", metrics)
	}
}

func TestNewInvalidURL(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Webserver.URL = "http://[::1"

	if _, err := New(cfg); err == nil {
		t.Fatal("invalid url accepted")
	}
}
