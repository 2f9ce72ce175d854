package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Houeta/staff-console/internal/client"
	"github.com/Houeta/staff-console/internal/config"
	"github.com/Houeta/staff-console/internal/lib/logger"
	"github.com/Houeta/staff-console/internal/metrics"
	"github.com/Houeta/staff-console/internal/records"
	"github.com/Houeta/staff-console/internal/server"
	"github.com/Houeta/staff-console/internal/validation"
	"github.com/Houeta/staff-console/internal/web"
)

// main is the entry point of the employee console.
func main() {
	var wgr sync.WaitGroup
	delta := 2
	readHeaderTimeout := 5 * time.Second

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	appLogger := logger.Setup(cfg.Env, os.Stdout)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	recordService, err := records.NewService(appLogger, client.CreateHTTPClient(appLogger), appMetrics, cfg.API.URL)
	if err != nil {
		log.Fatalf("Failed to create record service: %v", err)
	}

	handler := web.NewHandler(appLogger, recordService, validation.NewRules(cfg.Variant()), appMetrics)
	srv := &http.Server{
		Addr:              cfg.Web.Address,
		Handler:           web.NewRouter(handler),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	wgr.Add(delta)

	go func() {
		defer wgr.Done()
		server.StartMonitoringServer(ctx, appLogger, reg, nil, cfg.Monitoring.Port, recordService.BaseURL())
	}()

	go func() {
		defer wgr.Done()
		server.Serve(ctx, appLogger, srv, "console")
	}()

	appLogger.InfoContext(ctx, "Employee console started. Press Ctrl+C to stop.",
		"address", cfg.Web.Address, "api_url", recordService.BaseURL(), "variant", cfg.Variant())

	wgr.Wait()

	appLogger.InfoContext(ctx, "Employee console stopped gracefully...")
}
