package app

import (
	"net/url"
	"sync"
	"time"

	"dcfclock/pkg/app/config"
	"dcfclock/pkg/clock"
	"dcfclock/pkg/dcf77"
	"dcfclock/pkg/mqtt"
	"dcfclock/pkg/raspberry"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/womat/debug"
	"golang.org/x/sync/errgroup"
)

// App is the main application struct.
// App is where the application is wired up.
type App struct {
	// web is the fiber web framework instance
	web *fiber.App

	// config is the application configuration
	config *config.Config

	// urlParsed contains the parsed Config.Url parameter
	// and makes it easier to get params out of e.g.
	// url: https://0.0.0.0:7844/?minTls=1.2&bodyLimit=50MB
	urlParsed *url.URL

	// mqtt is the handler to the mqtt broker
	mqtt *mqtt.Handler

	// chip is the gpio chip of the edge source
	chip *raspberry.Chip
	// source delivers the edges of the receiver line
	source raspberry.Source

	// receiver decodes the dcf77 frames
	receiver *dcf77.Receiver

	// clock is the free running clock, set by every decoded frame
	clock *clock.Clock

	// registry holds the prometheus metrics
	registry *prometheus.Registry
	// rejected counts decoded times with invalid values
	rejected prometheus.Counter

	// services are the background loops started by Run
	services errgroup.Group

	// quit signals the service loops to stop
	quit      chan struct{}
	closeOnce sync.Once

	// restart signals application restart
	restart chan struct{}
	// shutdown signals application shutdown
	shutdown chan struct{}
}

// New checks the Web server URL and initialize the main app structure
func New(config *config.Config) (*App, error) {
	u, err := url.Parse(config.Webserver.URL)
	if err != nil {
		debug.ErrorLog.Printf("Error parsing url %q: %s", config.Webserver.URL, err.Error())
		return nil, err
	}

	app := &App{
		config:    config,
		urlParsed: u,

		web:   fiber.New(fiber.Config{DisableStartupMessage: true}),
		mqtt:  mqtt.New(),
		clock: clock.New(),

		quit:     make(chan struct{}),
		restart:  make(chan struct{}),
		shutdown: make(chan struct{}),
	}
	app.initMetrics()

	return app, nil
}

// Run starts the application.
func (app *App) Run() error {
	if err := app.init(); err != nil {
		return err
	}

	app.services.Go(func() error {
		app.mqtt.Service()
		return nil
	})
	app.services.Go(app.runWebServer)
	app.services.Go(app.service)
	app.services.Go(func() error {
		app.clock.Run(time.Second, app.quit)
		return nil
	})

	return nil
}

// init initializes the application.
func (app *App) init() (err error) {
	if err = app.openSource(); err != nil {
		debug.ErrorLog.Printf("can't open %v source: %v", app.config.Source, err)
		return err
	}

	app.receiver = dcf77.NewReceiver(app.source.Events(), app.config.Timing, app.config.Tick)

	if err = app.mqtt.Connect(app.config.MQTT.Connection, MODULE); err != nil {
		debug.ErrorLog.Printf("can't open mqtt broker %v", err)
		return err
	}

	// initRoutes and initDefaultRoutes should be always called last because it may access things like app.api
	// which must be initialized before in initAPI()
	app.initDefaultRoutes()

	return nil
}

// Restart returns the read only restart channel.
// Restart is used to be able to react on application restart. (see cmd/main.go)
func (app *App) Restart() <-chan struct{} {
	return app.restart
}

// Shutdown returns the read only shutdown channel.
// Shutdown is used to be able to react on application shutdown. (see cmd/main.go)
func (app *App) Shutdown() <-chan struct{} {
	return app.shutdown
}

// Close stops the services and releases the gpio resources.
func (app *App) Close() error {
	var err error

	app.closeOnce.Do(func() {
		close(app.quit)
		_ = app.web.Shutdown()

		if app.source != nil {
			_ = app.source.Close()
		}
		if app.receiver != nil {
			_ = app.receiver.Close()
		}
		if app.chip != nil {
			_ = app.chip.Close()
		}

		err = app.services.Wait()
		_ = app.mqtt.Disconnect()
	})

	return err
}
