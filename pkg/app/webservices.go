package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"github.com/womat/debug"
)

// runWebServer starts the applications web server and listens for web requests.
//  It's designed to run in a separate go function to not block the main go function.
//  e.g.: go runWebServer()
//  See app.Run()
func (app *App) runWebServer() error {
	err := app.web.Listen(app.urlParsed.Host)
	if err != nil {
		debug.ErrorLog.Print(err)
	}
	return err
}

// HandleTime returns the current time of the clock.
func (app *App) HandleTime() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request time")

		return ctx.JSON(app.clock.Now())
	}
}

// HandleStats returns the decoder counters.
func (app *App) HandleStats() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request stats")

		return ctx.JSON(fiber.Map{
			"receiving": app.receiver.Synced(),
			"stats":     app.receiver.Stats(),
		})
	}
}

// HandleFrame returns the bits received since the last minute mark.
// output example:
//  {"bits":"00000000000000000000110011","length":26}
func (app *App) HandleFrame() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request frame")

		frame := app.receiver.Frame()
		bits := make([]byte, len(frame))
		for i, b := range frame {
			bits[i] = '0' + b
		}

		return ctx.JSON(fiber.Map{
			"bits":   string(bits),
			"length": len(frame),
		})
	}
}

// HandleMetrics returns the prometheus metrics.
func (app *App) HandleMetrics() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return func(ctx *fiber.Ctx) error {
		handler(ctx.Context())
		return nil
	}
}
