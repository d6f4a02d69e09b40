package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"dcfclock/pkg/dcf77"

	"github.com/womat/debug"
	"gopkg.in/yaml.v2"
)

// signal sources
const (
	SourceEdge     = "edge"
	SourcePoll     = "poll"
	SourceEmulator = "emulator"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration. Attention!
// To make it possible to overwrite fields with the -overwrite command
// line option each of the struct fields must be in the format
// first letter uppercase -> followed by CamelCase as in the config file.
// Config defines the struct of global config and the struct of the configuration file
type Config struct {
	Gpio          int             `yaml:"gpio"`
	Chip          string          `yaml:"chip"`
	Source        string          `yaml:"source"`
	Terminator    string          `yaml:"terminator"`
	BounceTimeInt int             `yaml:"bouncetime"`
	BounceTime    time.Duration   `yaml:"-"`
	TickInt       int             `yaml:"tick"`
	Tick          time.Duration   `yaml:"-"`
	Timing        dcf77.Timing    `yaml:"timing"`
	Flag          FlagConfig      `yaml:"-"`
	Debug         DebugConfig     `yaml:"debug"`
	Webserver     WebserverConfig `yaml:"webserver"`
	MQTT          MQTTConfig      `yaml:"mqtt"`
}

// FlagConfig defines the configured flags (parameters)
type FlagConfig struct {
	Debug      string
	ConfigFile string
}

// WebserverConfig defines the struct of the webserver and webservice configuration and configuration file
type WebserverConfig struct {
	URL         string          `yaml:"url"`
	Webservices map[string]bool `yaml:"webservices"`
}

// MQTTConfig defines the struct of the mqtt client configuration and configuration file
type MQTTConfig struct {
	Connection  string        `yaml:"connection"`
	Interval    time.Duration `yaml:"-"`
	IntervalInt int           `yaml:"interval"`
	Topic       string        `yaml:"topic"`
}

// DebugConfig defines the struct of the debug configuration and configuration file
type DebugConfig struct {
	File       io.WriteCloser `yaml:"-"`
	Flag       int            `yaml:"-"`
	FlagString string         `yaml:"flag"`
	FileString string         `yaml:"file"`
}

func NewConfig() *Config {
	return &Config{
		Gpio:          17,
		Chip:          "gpiochip0",
		Source:        SourceEdge,
		Terminator:    "none",
		BounceTimeInt: 0,
		TickInt:       10,
		Timing:        dcf77.DefaultTiming,
		Flag:          FlagConfig{},
		Debug: DebugConfig{
			FileString: "stderr",
			FlagString: "standard",
		},
		Webserver: WebserverConfig{
			URL: "http://0.0.0.0:4000",
			Webservices: map[string]bool{
				"version": true,
				"health":  true,
				"time":    true,
				"stats":   true,
				"frame":   true,
				"metrics": true,
			},
		},
		MQTT: MQTTConfig{
			Connection:  "",
			IntervalInt: 0,
			Topic:       "/test/dcfclock"},
	}
}

func (c *Config) LoadConfig() error {
	if err := c.readConfigFile(); err != nil {
		return fmt.Errorf("error reading config file %q: %w", c.Flag.ConfigFile, err)
	}

	if c.Flag.Debug != "" {
		c.Debug.FlagString = c.Flag.Debug
	}
	if err := c.setDebugConfig(); err != nil {
		return fmt.Errorf("debug configuration (file %q): %w", c.Debug.FileString, err)
	}

	c.MQTT.Interval = time.Duration(c.MQTT.IntervalInt) * time.Second
	c.BounceTime = time.Duration(c.BounceTimeInt) * time.Millisecond
	c.Tick = time.Duration(c.TickInt) * time.Millisecond

	return c.validate()
}

// readConfigFile overlays the defaults with the configuration file, if one is defined.
func (c *Config) readConfigFile() error {
	if c.Flag.ConfigFile == "" {
		return nil
	}

	file, err := os.Open(c.Flag.ConfigFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	decoder := yaml.NewDecoder(file)
	if err = decoder.Decode(c); err != nil && err != io.EOF {
		return err
	}

	return nil
}

func (c *Config) setDebugConfig() (err error) {
	// defines Debug section of global.Config
	switch c.Debug.FlagString {
	case "trace", "full":
		c.Debug.Flag = debug.Full
	case "debug":
		c.Debug.Flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "standard":
		c.Debug.Flag = debug.Standard
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Debug.FlagString)
	}

	switch c.Debug.FileString {
	case "stderr":
		c.Debug.File = os.Stderr
	case "stdout":
		c.Debug.File = os.Stdout
	default:
		if c.Debug.File, err = os.OpenFile(c.Debug.FileString, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666); err != nil {
			return
		}
	}

	return
}

// validate checks the derived configuration.
func (c *Config) validate() error {
	switch c.Source {
	case SourceEdge, SourcePoll, SourceEmulator:
	default:
		return fmt.Errorf("%w: source %q", ErrInvalidConfig, c.Source)
	}

	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick %v", ErrInvalidConfig, c.Tick)
	}

	for name, b := range map[string]dcf77.Band{"short": c.Timing.Short, "long": c.Timing.Long, "sync": c.Timing.Sync} {
		if b.Min >= b.Max {
			return fmt.Errorf("%w: timing %s %d..%d", ErrInvalidConfig, name, b.Min, b.Max)
		}
	}

	return nil
}
