package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowShelf/internal/cache"
	"github.com/Belphemur/ShowShelf/internal/catalog"
	"github.com/Belphemur/ShowShelf/internal/client"
	"github.com/Belphemur/ShowShelf/internal/config"
	grpcserver "github.com/Belphemur/ShowShelf/internal/grpc"
	"github.com/Belphemur/ShowShelf/internal/metrics"
	"github.com/Belphemur/ShowShelf/internal/render"
	"github.com/Belphemur/ShowShelf/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("api_base_url", cfg.APIBaseURL).
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Str("cache_provider", cfg.Cache.Provider).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Bool("grpc_enabled", cfg.GRPC.Enabled).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("Application started with configuration")

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Error().Err(err).Msg("Failed to initialize Sentry, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// The response cache is optional; without it every catalog miss reaches TVMaze
	responses, err := cache.NewResponseCache(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to create response cache, continuing without it")
		responses = nil
	}

	summaries, err := cache.NewSummaryCache(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to create summary cache, sanitizing on every render")
	} else {
		render.SetSummaryCache(summaries)
		defer summaries.Close()
	}

	apiClient := client.NewClient(cfg, responses)
	defer func() {
		if err := apiClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close API client")
		}
	}()

	shows := catalog.New(apiClient)

	sessionTTL := parseDuration(logger, "sessions.ttl", cfg.Sessions.TTL, 2*time.Hour)
	sessions := web.NewSessionStore(shows, cfg.Sessions.Size, sessionTTL)

	webServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler:           web.NewServer(logger, sessions).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	if cfg.GRPC.Enabled {
		grpcServer := grpcserver.NewGRPCServer(shows)
		address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.GRPC.Port)
		listener, err := net.Listen("tcp", address)
		if err != nil {
			logger.Fatal().Err(err).Str("address", address).Msg("Failed to create gRPC listener")
		}
		go func() {
			logger.Info().Str("address", address).Msg("Starting gRPC server")
			if err := grpcServer.Serve(listener); err != nil {
				logger.Error().Err(err).Msg("gRPC server stopped")
			}
		}()
		defer grpcServer.GracefulStop()
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := webServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown web server")
		}
	}()

	logger.Info().Str("address", webServer.Addr).Msg("Starting web server")
	if err := webServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Failed to serve web UI")
	}

	logger.Info().Msg("Server stopped gracefully")
}

func parseDuration(logger zerolog.Logger, key, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Str("value", value).Dur("fallback", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}
