package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github/itish2003/titanic/config"
	"github/itish2003/titanic/controller"
	"github/itish2003/titanic/dataset"
	"github/itish2003/titanic/logger"
	"github/itish2003/titanic/services"
)

func main() {
	cfg := config.Load()

	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer func() {
		_ = log.Sync()
	}()
	log.Info("APP", "Logger ready", map[string]interface{}{
		"environment": cfg.App.Environment,
		"log_file":    log.FilePath(),
	})

	// The dataset is loaded exactly once; without it the service has nothing to answer.
	ds, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		log.Error("DATASET", "FATAL: Failed to load dataset", map[string]interface{}{
			"path":  cfg.Dataset.Path,
			"error": err,
		})
		_ = log.Sync()
		os.Exit(1)
	}
	summary := ds.Summary()
	log.Info("DATASET", "Dataset loaded", map[string]interface{}{
		"id":          summary.ID,
		"rows":        summary.Rows,
		"missing_age": summary.MissingAge,
		"source":      ds.Source(),
	})
	if summary.Sample {
		log.Warn("DATASET", "Answering from the bundled sample, not the full passenger list", map[string]interface{}{
			"rows": summary.Rows,
			"hint": "set DATASET_PATH to the full titanic.csv or run `go generate ./dataset` before building",
		})
	}

	charts := services.NewChartCache(cfg.Charts.CacheTTL)
	dispatcher := services.NewDispatcher(charts, log)
	queryService := services.NewQueryService(dispatcher, ds, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := controller.NewRouter(queryService, log, cfg.App.CorsAllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("HTTP", "Server starting", map[string]interface{}{
		"address": "http://localhost:" + cfg.App.Port,
		"routes":  []string{"GET /", "GET|POST /api/v1/query", "GET /api/v1/query/image", "GET /api/v1/questions", "GET /api/v1/dataset", "GET /health"},
	})
	if err := serve(ctx, srv, log, cfg.App.ShutdownTimeout); err != nil {
		log.Error("HTTP", "FATAL: Failed to start server", map[string]interface{}{
			"address": srv.Addr,
			"error":   err,
		})
		_ = log.Sync()
		os.Exit(1)
	}
}

// serve runs srv until ctx is done, then shuts it down within timeout. It returns the
// listener error if the server could not start or stopped on its own.
func serve(ctx context.Context, srv *http.Server, log logger.ILogger, timeout time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	log.Info("HTTP", "Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP", "Graceful shutdown failed", map[string]interface{}{"error": err})
	}
	return nil
}
