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
	}, zap.String("service", "api")); err != nil {
		return err
	}
	defer logger.Log.Sync()
	log := logger.Log

	otelShutdown, err := server.InitObservability(tracer.Options{
		ServiceName:    cfg.Observability.ServiceName + "-api",
		ServiceVersion: extract.Version,
		OTLPEndpoint:   cfg.Observability.OTLPEndpoint,
		MetricsAddr:    cfg.Observability.MetricsAddr,
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

	router := server.SetupRouter(cfg, cfg.Observability.ServiceName+"-api")
	handlers, err := routes.SetupAPI(ctx, router, cfg, log)
	if err != nil {
		return err
	}

	if cfg.Observability.PprofAddr != "" {
		pprofSrv := server.StartPprofServer(cfg.Observability.PprofAddr, log)
		defer pprofSrv.Close()
	}

	if err := server.New("api", cfg.ServerPort, router, log).Run(ctx); err != nil {
		return err
	}

	for name, m := range handlers.Cache.GetAllMetrics() {
		log.Info("Cache statistics",
			zap.String("cache", name),
			zap.Int64("hits", m.Hits),
			zap.Int64("misses", m.Misses),
			zap.Int64("sets", m.Sets),
		)
	}
	log.Info("Graceful shutdown complete")
	return nil
}
