// Package app wires configuration into the pipeline service and the HTTP server.
package app

import (
	"context"
	"fmt"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"docdigest/internal/config"
	handlers "docdigest/internal/http/handler"
	"docdigest/internal/http/middleware"
	"docdigest/internal/llm"
	"docdigest/internal/logger"
	"docdigest/internal/parser"
	"docdigest/internal/render"
	"docdigest/internal/service"
	"docdigest/internal/storage"
)

// Components are the long-lived collaborators built from configuration.
type Components struct {
	Service  service.DigitizeService
	Source   storage.Source
	Registry *prometheus.Registry
}

// Build constructs the model client, pipeline service and optional object source.
func Build(ctx context.Context, cfg *config.AppConfig) (*Components, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc, err := NewService(ctx, cfg, reg)
	if err != nil {
		return nil, err
	}

	c := &Components{Service: svc, Registry: reg}

	if cfg.MinIO.Enabled() {
		src, err := storage.NewMinIO(cfg.MinIO, cfg.MaxUploadBytes())
		if err != nil {
			return nil, fmt.Errorf("init object source: %w", err)
		}
		c.Source = src
	}

	return c, nil
}

// NewService builds the pipeline service. reg may be nil to skip stage metrics.
func NewService(ctx context.Context, cfg *config.AppConfig, reg prometheus.Registerer) (service.DigitizeService, error) {
	gen, err := llm.New(ctx, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("init model client: %w", err)
	}

	opts := []service.Option{service.WithLocation(cfg.Location())}
	if reg != nil {
		m, err := service.NewMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("register stage metrics: %w", err)
		}
		opts = append(opts, service.WithMetrics(m))
	}

	return service.NewDigitizeService(
		service.StagesFor(gen, cfg.Model.Timeout()),
		parser.New(),
		render.New(logger.WithComponent("render")),
		opts...,
	), nil
}

// NewHTTP creates the Fiber app with middleware and routes registered.
func NewHTTP(cfg *config.AppConfig, c *Components) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      "docdigest",
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.MaxUploadBytes()),
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(c.Registry)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics"
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(cfg.Location()))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		Service:  c.Service,
		Source:   c.Source,
		Gatherer: c.Registry,
	})

	return app, nil
}
