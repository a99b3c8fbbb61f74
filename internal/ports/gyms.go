package ports

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/upliftapp/gymstatus/internal/app"
	"github.com/upliftapp/gymstatus/internal/domain"
	"github.com/upliftapp/gymstatus/internal/logging"
	"github.com/upliftapp/gymstatus/internal/ratelimiting"
	"github.com/upliftapp/gymstatus/internal/reporting"
)

type gymsResponse struct {
	Success bool          `json:"success"`
	Gyms    []gymResponse `json:"gyms"`
}

type singleGymResponse struct {
	Success bool        `json:"success"`
	Gym     gymResponse `json:"gym"`
}

type refreshResponse struct {
	Success bool `json:"success"`
}

func buildMiddleware(
	port string,
	ipRateLimiter ratelimiting.RequestRateLimiter,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) func(http.HandlerFunc) http.HandlerFunc {
	return ComposeMiddlewares(
		buildMetricsMiddleware(),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware(port),
		NewRateLimitMiddleware(ipRateLimiter, makeOnLimitExceeded(ipRateLimiter)),
	)
}

func MakeGetGymsHandler(
	getGymStatuses app.GetGymStatuses,
	ipRateLimiter ratelimiting.RequestRateLimiter,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildMiddleware("gyms", ipRateLimiter, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		gymStatuses, err := getGymStatuses(ctx)
		if errors.Is(err, domain.ErrTemporarilyUnavailable) {
			writeError(ctx, w, http.StatusServiceUnavailable, "temporarily unavailable")
			return
		}
		if err != nil {
			// NOTE: The gym provider handles its own error reporting
			writeError(ctx, w, http.StatusInternalServerError, "internal server error")
			return
		}

		gyms := make([]gymResponse, 0, len(gymStatuses))
		for _, gymStatus := range gymStatuses {
			gyms = append(gyms, gymStatusToResponse(gymStatus))
		}

		writeJSON(ctx, w, http.StatusOK, gymsResponse{
			Success: true,
			Gyms:    gyms,
		})
	}

	return middleware(handler)
}

func MakeGetGymStatusHandler(
	getGymStatus app.GetGymStatus,
	ipRateLimiter ratelimiting.RequestRateLimiter,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildMiddleware("gymstatus", ipRateLimiter, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		gymID := r.PathValue("id")

		if gymID == "" || len(gymID) > 100 {
			writeError(ctx, w, http.StatusBadRequest, "invalid gym id")
			return
		}

		ctx = logging.AddMetaToContext(ctx, slog.String("gymId", gymID))
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"gymId": gymID,
		})

		gymStatus, err := getGymStatus(ctx, gymID)
		if errors.Is(err, domain.ErrGymNotFound) {
			writeError(ctx, w, http.StatusNotFound, "not found")
			return
		} else if errors.Is(err, domain.ErrTemporarilyUnavailable) {
			writeError(ctx, w, http.StatusServiceUnavailable, "temporarily unavailable")
			return
		}
		if err != nil {
			writeError(ctx, w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(ctx, w, http.StatusOK, singleGymResponse{
			Success: true,
			Gym:     gymStatusToResponse(gymStatus),
		})
	}

	return middleware(handler)
}

func MakeRefreshGymsHandler(
	refreshGyms app.RefreshGyms,
	ipRateLimiter ratelimiting.RequestRateLimiter,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildMiddleware("refresh", ipRateLimiter, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		refreshGyms(ctx)

		writeJSON(ctx, w, http.StatusOK, refreshResponse{Success: true})
	}

	return middleware(handler)
}
