package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Bablu7011/internship-project/internal/readiness"
)

// Route paths.
const (
	PathGreeting = "/"
	PathHealth   = "/health"
	PathReady    = "/ready"
)

// RegisterRoutes attaches the page and probe routes to app.
// A nil prober serves /ready as always ready.
func RegisterRoutes(app *fiber.App, prober *readiness.Prober, loc *time.Location) {
	if prober == nil {
		prober = readiness.NewProber(0)
	}

	app.Get(PathGreeting, Greeting())
	app.Get(PathHealth, HealthCheck())
	app.Get(PathReady, Readiness(prober, loc))
}
