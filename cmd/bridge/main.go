package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/i2y/striker/configs"
	"github.com/i2y/striker/internal/adapter/inbound/mcphttp"
	"github.com/i2y/striker/internal/adapter/outbound/fixture"
	"github.com/i2y/striker/internal/adapter/outbound/memrepo"
	"github.com/i2y/striker/internal/adapter/outbound/openapi"
	"github.com/i2y/striker/internal/usecase"
)

// bridge serves the tool surface as plain JSON over HTTP, without the MCP transport.
func main() {
	// === Logger Setup (using slog) ===
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === Configuration ===
	cfg, err := configs.Load(ctx)
	if err != nil {
		logger.Error("Failed to process configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.ParsedLogLevel()}))
	slog.SetDefault(logger)
	logger.Info("Configuration loaded", slog.String("listen_addr", cfg.ListenAddr), slog.String("fixture_file", cfg.FixtureFile))

	// === Dependency Injection ===
	fx, err := fixture.Load(ctx, cfg.FixtureFile, logger)
	if err != nil {
		logger.Error("Failed to load fixture", slog.Any("error", err))
		os.Exit(1)
	}

	repo := memrepo.NewInMemoryCatalogRepository(fx.Catalog.Jerseys, fx.Catalog.Players, logger)
	serveUC := usecase.NewServeToolsUseCase(fx.Bundle, logger)
	invokeUC := usecase.NewInvokeToolUseCase(
		usecase.NewComposeBundleUseCase(fx.Bundle, logger),
		usecase.NewSearchCatalogUseCase(repo, logger),
		logger,
	)
	docBuilder := openapi.NewDocumentBuilder("striker-bridge", "0.1.0", logger)
	httpHandlers := mcphttp.NewHandlers(serveUC, invokeUC, func() ([]byte, error) {
		return docBuilder.JSON(ctx, serveUC.Execute(ctx))
	}, logger)

	// === HTTP Server Setup ===
	mux := http.NewServeMux()
	httpHandlers.RegisterRoutes(mux)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	go func() {
		logger.Info("HTTP server starting", slog.String("address", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Server gracefully stopped")
}
