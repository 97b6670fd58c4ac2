// Command web serves the browser frontend and talks to the extraction API.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/extract"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/observability/tracer"
	"github.com/FACorreiaa/tiktok-to-trip/internal/pkg/config"
	"github.com/FACorreiaa/tiktok-to-trip/internal/routes"
	"github.com/FACorreiaa/tiktok-to-trip/internal/server"
	"github.com/FACorreiaa/tiktok-to-trip/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Options{
		Level: logger.ParseLevel(cfg.LogLevel),
		JSON:  cfg.IsProduction(),
	}, zap.String("service", "web")); err != nil {
		return err
	}
	defer logger.Log.Sync()
	log := logger.Log

	otelShutdown, err := server.InitObservability(tracer.Options{
		ServiceName:    cfg.Observability.ServiceName + "-web",
		ServiceVersion: extract.Version,
		OTLPEndpoint:   cfg.Observability.OTLPEndpoint,
		MetricsAddr:    cfg.Web.MetricsAddr,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			log.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	ctx, stop := server.SignalContext()
	defer stop()

	router := server.SetupRouter(cfg, cfg.Observability.ServiceName+"-web")
	routes.SetupWeb(router, cfg, log)
	log.Info("Frontend configured", zap.String("backend_url", cfg.Web.BackendURL))

	if err := server.New("web", cfg.Web.Port, router, log).Run(ctx); err != nil {
		return err
	}

	log.Info("Graceful shutdown complete")
	return nil
}
