// Package server assembles the Fiber application from its parts.
package server

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Bablu7011/internship-project/docs"
	"github.com/Bablu7011/internship-project/internal/config"
	handlers "github.com/Bablu7011/internship-project/internal/http/handler"
	"github.com/Bablu7011/internship-project/internal/http/middleware"
	"github.com/Bablu7011/internship-project/internal/readiness"
	"github.com/Bablu7011/internship-project/internal/view"
)

// AppName is reported in the Server header and traces.
const AppName = "hello-service"

// Options carries the collaborators for New. Zero values get defaults.
type Options struct {
	Config *config.AppConfig
	// Templates defaults to the templates embedded in the binary.
	Templates fs.FS
	// Prober defaults to one with no dependencies.
	Prober *readiness.Prober
	// Registry defaults to a fresh registry with Go and process collectors.
	Registry *prometheus.Registry
	// AccessLog defaults to stdout.
	AccessLog io.Writer
}

// New builds the application. Template problems are returned here so the
// process refuses to start rather than failing on the first request.
func New(opts Options) (*fiber.App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Load()
	}
	loc := cfg.Location()

	templates := opts.Templates
	if templates == nil {
		templates = view.Templates()
	}
	engine, err := view.NewEngine(templates, view.HelloTemplate)
	if err != nil {
		return nil, fmt.Errorf("init views: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               AppName,
		Views:                 engine,
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(accessLog, loc))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(skipTracing)))

	if cfg.MetricsEnabled {
		reg := opts.Registry
		if reg == nil {
			reg = prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		pm, err := middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		app.Use(pm.Handler())
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	handlers.RegisterRoutes(app, opts.Prober, loc)

	if cfg.SwaggerEnabled {
		// Schemes stay empty so the UI follows whatever scheme it was loaded over.
		docs.SwaggerInfo.Host = cfg.AppHost
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	return app, nil
}

// skipTracing keeps high-frequency probe and scrape traffic out of traces.
func skipTracing(c *fiber.Ctx) bool {
	switch c.Path() {
	case handlers.PathHealth, middleware.MetricsPath:
		return true
	}
	return false
}
