// Package app собирает сервис закупок: конфигурация, хранилище, HTTP API и служебные серверы.
package app

import (
	"context"
	"net"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vladislavdragonenkov/purchasing/internal/httpapi"
	"github.com/vladislavdragonenkov/purchasing/internal/version"
)

func versionString() string {
	return version.Current().Short()
}

// Run запускает публичный API, сервер метрик и gRPC health и блокируется до отмены ctx
// или падения одного из серверов. При отмене возвращает ctx.Err().
func Run(ctx context.Context, cfg Config, logger *log.Entry) error {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.WithField("build", version.Current().String()).Info("starting purchasing service")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	router := httpapi.NewRouter(deps.Services, httpapi.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger.WithField("layer", "http"),
	})

	apiSrv, apiLis, err := listenHTTP(cfg.HTTPAddr, router)
	if err != nil {
		return err
	}
	metricsSrv, metricsLis, err := listenHTTP(cfg.MetricsAddr, newMetricsMux(deps.Health))
	if err != nil {
		_ = apiLis.Close()
		return err
	}
	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = apiLis.Close()
		_ = metricsLis.Close()
		return err
	}
	probe := newProbeServer(logger.WithField("layer", "grpc"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serveHTTP(apiSrv, apiLis, "api", logger) })
	g.Go(func() error { return serveHTTP(metricsSrv, metricsLis, "metrics", logger) })
	g.Go(func() error { return probe.serve(grpcLis, logger) })
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("stopping servers")
		probe.stop(cfg.ShutdownTimeout, logger)
		shutdownHTTP(apiSrv, cfg.ShutdownTimeout, logger)
		shutdownHTTP(metricsSrv, cfg.ShutdownTimeout, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
