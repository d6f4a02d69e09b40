package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dcfclock/pkg/dcf77"

	"github.com/womat/debug"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "dcfclock.yaml")
	if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestLoadConfigDefaults(t *testing.T) {
	c := NewConfig()
	if err := c.LoadConfig(); err != nil {
		t.Fatal(err)
	}

	if c.Tick != 10*time.Millisecond {
		t.Errorf("tick: got %v", c.Tick)
	}
	if c.Timing != dcf77.DefaultTiming {
		t.Errorf("timing: got %+v", c.Timing)
	}
	if c.Debug.File != os.Stderr || c.Debug.Flag != debug.Standard {
		t.Errorf("debug: got %+v", c.Debug)
	}
}

func TestLoadConfigFile(t *testing.T) {
	c := NewConfig()
	c.Flag.ConfigFile = writeConfig(t, `
gpio: 4
source: poll
terminator: pullup
bouncetime: 2
tick: 5
timing:
  sync:
    min: 180
    max: 210
debug:
  file: stdout
  flag: debug
webserver:
  url: http://127.0.0.1:4040
  webservices:
    metrics: false
mqtt:
  connection: tcp://127.0.0.1:1883
  interval: 60
  topic: /home/dcfclock
`)
	c.Flag.Debug = "trace"

	if err := c.LoadConfig(); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name      string
		got, want interface{}
	}{
		{"gpio", c.Gpio, 4},
		{"source", c.Source, SourcePoll},
		{"terminator", c.Terminator, "pullup"},
		{"bouncetime", c.BounceTime, 2 * time.Millisecond},
		{"tick", c.Tick, 5 * time.Millisecond},
		{"sync", c.Timing.Sync, dcf77.Band{Min: 180, Max: 210}},
		{"short", c.Timing.Short, dcf77.DefaultTiming.Short},
		{"debug file", c.Debug.File, os.Stdout},
		{"debug flag", c.Debug.Flag, debug.Full},
		{"url", c.Webserver.URL, "http://127.0.0.1:4040"},
		{"metrics", c.Webserver.Webservices["metrics"], false},
		{"mqtt", c.MQTT.Connection, "tcp://127.0.0.1:1883"},
		{"interval", c.MQTT.Interval, time.Minute},
		{"topic", c.MQTT.Topic, "/home/dcfclock"},
	} {
		if tc.got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{"source", "source: radio"},
		{"tick", "tick: 0"},
		{"band", "timing:\n  short:\n    min: 13\n    max: 7"},
		{"log level", "debug:\n  flag: verbose"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConfig()
			c.Flag.ConfigFile = writeConfig(t, tc.content)

			if err := c.LoadConfig(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("got %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	c := NewConfig()
	c.Flag.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")

	if err := c.LoadConfig(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v, want %v", err, os.ErrNotExist)
	}
}
