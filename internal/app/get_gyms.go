package app

import (
	"context"
	"fmt"

	"github.com/upliftapp/gymstatus/internal/domain"
	"github.com/upliftapp/gymstatus/internal/logging"
)

type GetGyms func(ctx context.Context) ([]domain.Gym, error)

type RefreshGyms func(ctx context.Context)

type gymCache interface {
	Fetch(ctx context.Context) ([]domain.Gym, error)
	Invalidate()
}

func BuildGetGymsWithCache(gymCache gymCache) GetGyms {
	return func(ctx context.Context) ([]domain.Gym, error) {
		gyms, err := gymCache.Fetch(ctx)
		if err != nil {
			// NOTE: The gym provider handles its own error reporting
			return nil, fmt.Errorf("failed to fetch gyms through cache: %w", err)
		}

		return gyms, nil
	}
}

// BuildRefreshGyms returns a function that forces the next lookup to hit the provider.
// A fetch already in progress is left running, but its result is not cached.
func BuildRefreshGyms(gymCache gymCache) RefreshGyms {
	return func(ctx context.Context) {
		gymCache.Invalidate()
		logging.FromContext(ctx).InfoContext(ctx, "Invalidated gym cache")
	}
}
