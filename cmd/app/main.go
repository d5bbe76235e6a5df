package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crowdship/cmd"
	"crowdship/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                      crowdship API
// @version                    1.0
// @description                Crowd-shipping marketplace: shoppers post shipments, travelers carry them on their trips.
// @BasePath                   /api
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the JWT.
func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}
	logger := newLogger(configs)
	slog.SetDefault(logger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("composition root: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to release resources", "error", closeErr)
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("router: %v", err)
	}
	startWebServer(e, configs.HTTPPort, logger)
}

func newLogger(configs cmd.Config) *slog.Logger {
	if configs.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpg.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gormDB, nil
}

// startWebServer blocks until SIGINT or SIGTERM, then drains in-flight requests.
func startWebServer(e *echo.Echo, port string, logger *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server started", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
