package main

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pryv/campaign-manager/pkg/log"
)

type HttpServer struct {
	f    *fiber.App
	addr string
}

func NewHttpServer(app *App) *HttpServer {
	f := fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true})

	f.Use(log.NewFiberLogger(&log.LoggerConfig{
		Name:       "api",
		DoMetrics:  true,
		UserGetter: Username,
	}))

	f.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT",
		AllowHeaders: "Origin, Accept, X-Requested-With, Content-Type, Authorization",
	}))

	f.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"ok": true})
	})
	f.Get("/metrics", getMetricsHandler())

	addUsersApi(app, f)
	addAuthApi(app, f)
	addCampaignsApi(app, f)
	addInvitationsApi(app, f)

	return &HttpServer{f: f, addr: app.config.ApiAddr()}
}

func (h *HttpServer) Address() string {
	return h.addr
}

func (h *HttpServer) Listen() error {
	slog.Info("listening http at " + h.addr)

	return h.f.Listen(h.addr)
}

func (h *HttpServer) Shutdown() error {
	return h.f.Shutdown()
}

func getMetricsHandler() fiber.Handler {
	handler := promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})

	return adaptor.HTTPHandler(handler)
}
