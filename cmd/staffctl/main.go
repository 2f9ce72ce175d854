package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Houeta/staff-console/internal/cli"
	"github.com/Houeta/staff-console/internal/client"
	"github.com/Houeta/staff-console/internal/config"
	"github.com/Houeta/staff-console/internal/lib/logger"
	"github.com/Houeta/staff-console/internal/lib/logger/sl"
	"github.com/Houeta/staff-console/internal/metrics"
	"github.com/Houeta/staff-console/internal/records"
	"github.com/Houeta/staff-console/internal/validation"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	// Logs go to stderr only with STAFFCTL_VERBOSE set, so command output stays clean.
	appLogger := sl.Discard()
	if os.Getenv("STAFFCTL_VERBOSE") != "" {
		appLogger = logger.Setup(cfg.Env, os.Stderr)
	}

	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	recordService, err := records.NewService(appLogger, client.CreateHTTPClient(appLogger), appMetrics, cfg.API.URL)
	if err != nil {
		return err
	}

	rules := validation.NewRules(cfg.Variant())
	root := cli.NewRootCmd(&cli.App{Log: appLogger, Records: recordService, Rules: rules, Metrics: appMetrics})

	return root.ExecuteContext(ctx)
}
