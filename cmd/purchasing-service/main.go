package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/purchasing/internal/app"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Error("purchasing service terminated with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := app.NewLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	// Пакетные логгеры по умолчанию (nil logger) пишут в тот же формат.
	log.SetFormatter(logger.Formatter)
	log.SetLevel(logger.GetLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entry := logger.WithField("component", "app")
	entry.WithFields(log.Fields{
		"http_addr":      cfg.HTTPAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"grpc_addr":      cfg.GRPCAddr,
		"storage_driver": cfg.StorageDriver,
	}).Info("starting purchasing service")

	if err := app.Run(ctx, cfg, entry); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	entry.Info("purchasing service stopped")
	return nil
}
