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

	"ordering/cmd"
	"ordering/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	gormDB, err := postgres.Open(configs.Database())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	feed, err := cmd.OpenFeed(configs, logger)
	if err != nil {
		log.Fatalf("Error opening change feed: %v", err)
	}
	defer feed.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if runErr := feed.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
			logger.Error("change feed stopped", "error", runErr)
			stop()
		}
	}()

	app := cmd.NewCompositionRoot(configs, gormDB, feed, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Error creating HTTP server: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	if err = server.Register(e); err != nil {
		log.Fatalf("Error registering routes: %v", err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Error("HTTP shutdown failed", "error", shutdownErr)
		}
	}()

	logger.Info("HTTP server listening", "port", port)
	if err = e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server stopped", "error", err)
	}
}
