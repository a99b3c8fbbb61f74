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

	"github.com/google/uuid"
	"github.com/upliftapp/gymstatus/internal/adapters/cache"
	"github.com/upliftapp/gymstatus/internal/adapters/gymprovider"
	"github.com/upliftapp/gymstatus/internal/app"
	"github.com/upliftapp/gymstatus/internal/config"
	"github.com/upliftapp/gymstatus/internal/domain"
	"github.com/upliftapp/gymstatus/internal/logging"
	"github.com/upliftapp/gymstatus/internal/ports"
	"github.com/upliftapp/gymstatus/internal/ratelimiting"
	"github.com/upliftapp/gymstatus/internal/reporting"
	"github.com/upliftapp/gymstatus/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	// Root certificates for minimal container images
	_ "golang.org/x/crypto/x509roots/fallback"
)

const serviceName = "gymstatus"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instanceID := uuid.New().String()
	logger := slog.New(
		logging.NewTraceLogHandler(slog.NewJSONHandler(os.Stdout, nil)),
	).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	if config.TelemetryEnabled() {
		shutdownTelemetry, err := telemetry.SetupOTelSDK(ctx, serviceName)
		if err != nil {
			fail("Failed to initialize OpenTelemetry", "error", err.Error())
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTelemetry(shutdownCtx); err != nil {
				logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
			}
		}()
		logger.Info("Initialized OpenTelemetry")
	}

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}

	gymProvider, err := gymprovider.NewGraphQLOrMock(config, httpClient, time.Now)
	if err != nil {
		fail("Failed to initialize gym provider", "error", err.Error())
	}
	logger.Info("Initialized gym provider")

	gymCache := cache.NewSingleFlightCache[[]domain.Gym]("gyms", config.GymCacheTTL(), gymProvider.GetGyms, time.Now)

	getGyms := app.BuildGetGymsWithCache(gymCache)
	refreshGyms := app.BuildRefreshGyms(gymCache)
	getGymStatuses := app.BuildGetGymStatuses(getGyms, time.Now)
	getGymStatus := app.BuildGetGymStatus(getGyms, time.Now)

	readRateLimiter, stopReadRateLimiter := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(4),
		ratelimiting.BurstSize(240),
		time.Now,
	)
	defer stopReadRateLimiter()
	readIPRateLimiter := ratelimiting.NewRequestBasedRateLimiter(readRateLimiter, ratelimiting.IPKeyFunc)

	refreshRateLimiter, stopRefreshRateLimiter := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(1.0/60),
		ratelimiting.BurstSize(5),
		time.Now,
	)
	defer stopRefreshRateLimiter()
	refreshIPRateLimiter := ratelimiting.NewRequestBasedRateLimiter(refreshRateLimiter, ratelimiting.IPKeyFunc)

	mux := http.NewServeMux()

	mux.HandleFunc(
		"GET /v1/gyms",
		ports.MakeGetGymsHandler(
			getGymStatuses,
			readIPRateLimiter,
			logger.With("port", "gyms"),
			sentryMiddleware,
		),
	)

	mux.HandleFunc(
		"GET /v1/gyms/{id}/status",
		ports.MakeGetGymStatusHandler(
			getGymStatus,
			readIPRateLimiter,
			logger.With("port", "gymstatus"),
			sentryMiddleware,
		),
	)

	mux.HandleFunc(
		"POST /v1/gyms/refresh",
		ports.MakeRefreshGymsHandler(
			refreshGyms,
			refreshIPRateLimiter,
			logger.With("port", "refresh"),
			sentryMiddleware,
		),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Port()),
		Handler: mux,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server", "error", err.Error())
		}
	}()

	logger.Info("Init complete")
	err = server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-shutdownComplete
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
