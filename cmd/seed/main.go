package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"

	"cartaseo/app/internal/app/bootstrap"
	"cartaseo/app/internal/platform/config"
	applog "cartaseo/app/internal/platform/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "failure loading configuration")
	}

	logger, err := applog.NewLogger(cfg.LogLevel)
	if err != nil {
		return eris.Wrap(err, "failure initialising logger")
	}

	logFile, err := applog.AttachFile(logger, cfg.LogFile)
	if err != nil {
		return eris.Wrap(err, "failure opening log file")
	}
	defer logFile.Close()

	sentryHub, flush, err := applog.InitSentry(logger, applog.SentrySettings{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Service:     "cartaseo-seed",
	})
	if err != nil {
		return eris.Wrap(err, "failure initialising sentry")
	}
	defer flush()

	pipeline, err := bootstrap.BuildImporter(ctx, bootstrap.Dependencies{
		Config:    *cfg,
		Logger:    logger,
		SentryHub: sentryHub,
	})
	if err != nil {
		return eris.Wrap(err, "bootstrapping seed import")
	}
	defer func() {
		if cleanupErr := pipeline.Cleanup(); cleanupErr != nil {
			logger.WithError(cleanupErr).Error("releasing seed resources")
		}
	}()

	report, err := pipeline.Importer.Import(ctx, pipeline.Catalog)
	if err != nil {
		return eris.Wrap(err, "importing seed catalog")
	}

	if len(report.Errors) > 0 {
		return eris.Errorf("seed import finished with %d failed stages, first: %v", len(report.Errors), report.Errors[0])
	}
	return nil
}
