package app

import (
	"time"

	"dcfclock/pkg/app/config"
	"dcfclock/pkg/dcf77"
	"dcfclock/pkg/emulator"
	"dcfclock/pkg/raspberry"
)

// openSource opens the configured source of receiver line events.
func (app *App) openSource() (err error) {
	switch app.config.Source {
	case config.SourceEdge:
		if app.chip, err = raspberry.Open(app.config.Chip); err != nil {
			return err
		}

		var line *raspberry.Line
		if line, err = app.chip.NewLine(app.config.Gpio, app.config.Terminator, app.config.BounceTime); err != nil {
			return err
		}
		app.source = line

	case config.SourcePoll:
		var sampler *raspberry.Sampler
		if sampler, err = raspberry.NewSampler(app.config.Gpio, app.config.Terminator, app.config.Tick); err != nil {
			return err
		}
		app.source = sampler

	case config.SourceEmulator:
		app.source = emulator.New(app.config.Timing, app.config.Tick, dcf77.Ticks(time.Second, app.config.Tick))

	default:
		return config.ErrInvalidConfig
	}

	return nil
}
