package app

import (
	"time"

	"dcfclock/pkg/clock"
	"dcfclock/pkg/dcf77"
	"dcfclock/pkg/mqtt"

	"github.com/womat/debug"
)

// service waits in an endless loop for decoded times.
// It sets the clock and sends the clock time to the mqtt broker.
// If an mqtt interval is configured, the clock time is sent periodically as well.
func (app *App) service() error {
	defer close(app.mqtt.C)

	var interval <-chan time.Time
	if app.config.MQTT.Interval > 0 {
		ticker := time.NewTicker(app.config.MQTT.Interval)
		defer ticker.Stop()
		interval = ticker.C
	}

	for {
		select {
		case <-app.quit:
			return nil
		case t, open := <-app.receiver.C:
			if !open {
				debug.InfoLog.Print("dcf77 receiver stopped")
				return nil
			}
			app.onDecoded(t, time.Now())
		case <-interval:
			app.sendMQTT(app.clock.Now())
		}
	}
}

// onDecoded sets the clock to a decoded time, unless its values are out of range.
func (app *App) onDecoded(t dcf77.Time, at time.Time) {
	if err := app.clock.Set(t, at); err != nil {
		debug.ErrorLog.Printf("decoded time rejected: %v", err)
		app.rejected.Inc()
		return
	}

	debug.InfoLog.Printf("clock set to %v", t)
	app.sendMQTT(app.clock.Now())
}

// sendMQTT sends the clock time to the mqtt broker.
func (app *App) sendMQTT(t clock.Time) {
	if app.config.MQTT.Connection == "" {
		return
	}

	msg, err := mqtt.NewMessage(app.config.MQTT.Topic, t, true)
	if err != nil {
		debug.ErrorLog.Printf("sendMQTT: %v", err)
		return
	}

	debug.TraceLog.Printf("prepare mqtt message %v %v", msg.Topic, t)

	select {
	case app.mqtt.C <- msg:
	case <-app.quit:
	}
}
