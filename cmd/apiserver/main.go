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

	"github.com/Houeta/staff-console/internal/api"
	"github.com/Houeta/staff-console/internal/config"
	"github.com/Houeta/staff-console/internal/lib/logger"
	"github.com/Houeta/staff-console/internal/metrics"
	"github.com/Houeta/staff-console/internal/repository"
	"github.com/Houeta/staff-console/internal/server"
)

// main runs the reference employee REST API backed by PostgreSQL.
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

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	employeeRepo := repository.NewEmployeeRepository(dtb, appMetrics)
	handler := api.NewHandler(appLogger, employeeRepo)
	srv := &http.Server{
		Addr:              cfg.APIServer.Address,
		Handler:           api.NewRouter(handler, cfg.APIServer.AllowedOrigins),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	wgr.Add(delta)

	go func() {
		defer wgr.Done()
		server.StartMonitoringServer(ctx, appLogger, reg, dtb, cfg.Monitoring.Port, "")
	}()

	go func() {
		defer wgr.Done()
		server.Serve(ctx, appLogger, srv, "api")
	}()

	appLogger.InfoContext(ctx, "Employee API started. Press Ctrl+C to stop.", "address", cfg.APIServer.Address)

	wgr.Wait()

	appLogger.InfoContext(ctx, "Employee API stopped gracefully...")
}
