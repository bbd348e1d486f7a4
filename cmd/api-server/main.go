package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"peliculas/internal/dataset"
	"peliculas/internal/movies"
	"peliculas/internal/requestlog"
	"peliculas/internal/telemetry"
	"peliculas/pkg/database"
	"peliculas/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := utils.LoadServerConfig()
	if err != nil {
		telemetry.SetupLogging(os.Stdout, "info")
		return fmt.Errorf("load config: %w", err)
	}

	logOut, closeLog, err := logWriter(cfg.Telemetry.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := telemetry.SetupLogging(logOut, cfg.Telemetry.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.Telemetry.ServiceName)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	// No traffic is accepted unless every dataset loads.
	store, err := loadStore(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("datasets loaded", "source", cfg.Datasets.Source, "rows", store.Stats())

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(cfg.Telemetry.ServiceName),
		requestlog.RequestID(),
		requestlog.Logger(logger),
		cors.Default(),
	)

	movies.NewHandler(movies.NewService(store)).RegisterRoutes(router)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

func loadStore(ctx context.Context, cfg utils.ServerConfig) (*dataset.Store, error) {
	switch cfg.Datasets.Source {
	case utils.SourceSQLite:
		db, err := database.OpenReadOnly(database.Config{Path: cfg.Datasets.SQLitePath})
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return dataset.LoadSQLite(ctx, db)
	default:
		return dataset.LoadCSV(cfg.Datasets.Dir)
	}
}

// logWriter returns stdout, or stdout plus the configured log file.
func logWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return io.MultiWriter(os.Stdout, f), func() { _ = f.Close() }, nil
}
