package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/upliftapp/gymstatus/internal/app"
	"github.com/upliftapp/gymstatus/internal/domain"
	"github.com/upliftapp/gymstatus/internal/domaintest"
)

func TestBuildGetGymStatuses(t *testing.T) {
	t.Parallel()

	now := domaintest.ParseTime(t, "12/25/2023 12:00 PM")
	nowFunc := func() time.Time { return now }

	morning := domaintest.NewInterval(t, "12/25/2023 7:00 AM", "12/25/2023 11:00 AM")
	midday := domaintest.NewInterval(t, "12/25/2023 11:00 AM", "12/25/2023 1:00 PM")
	evening := domaintest.NewInterval(t, "12/25/2023 6:00 PM", "12/25/2023 8:00 PM")
	nextDay := domaintest.NewInterval(t, "12/26/2023 7:00 AM", "12/26/2023 11:00 AM")

	closedGym := domain.Gym{
		ID:   "noyes",
		Name: "Noyes",
		Facilities: []domain.Facility{
			{ID: "noyes-fitness", Type: domain.FacilityTypeFitness, Hours: []domain.Interval{evening}},
		},
	}
	unknownGym := domain.Gym{
		ID:   "appel",
		Name: "Appel",
		Facilities: []domain.Facility{
			{ID: "appel-fitness", Type: domain.FacilityTypeFitness, Hours: []domain.Interval{morning}},
		},
	}
	openGym := domain.Gym{
		ID:   "teagle",
		Name: "Teagle",
		Facilities: []domain.Facility{
			{ID: "teagle-up", Type: domain.FacilityTypeFitness, Hours: []domain.Interval{midday}},
			{ID: "teagle-pool", Type: domain.FacilityTypePool, Hours: []domain.Interval{nextDay}},
		},
	}

	t.Run("open gyms first", func(t *testing.T) {
		t.Parallel()

		getGyms := func(ctx context.Context) ([]domain.Gym, error) {
			return []domain.Gym{unknownGym, closedGym, openGym}, nil
		}

		getGymStatuses := app.BuildGetGymStatuses(getGyms, nowFunc)

		statuses, err := getGymStatuses(t.Context())
		require.NoError(t, err)
		require.Len(t, statuses, 3)

		require.Equal(t, "teagle", statuses[0].ID)
		require.Equal(t, domain.Open{CloseTime: midday.End}, statuses[0].Status)
		require.Equal(t, domain.Open{CloseTime: midday.End}, statuses[0].FitnessStatus)
		require.Equal(t, []app.FacilityStatus{
			{Facility: openGym.Facilities[0], Status: domain.Open{CloseTime: midday.End}},
			{Facility: openGym.Facilities[1], Status: domain.Closed{OpenTime: nextDay.Start}},
		}, statuses[0].Facilities)

		require.Equal(t, "noyes", statuses[1].ID)
		require.Equal(t, domain.Closed{OpenTime: evening.Start}, statuses[1].Status)

		require.Equal(t, "appel", statuses[2].ID)
		require.Nil(t, statuses[2].Status)
	})

	t.Run("fitness status only covers fitness centers", func(t *testing.T) {
		t.Parallel()

		gym := domain.Gym{
			ID:   "helen-newman",
			Name: "Helen Newman",
			Facilities: []domain.Facility{
				{ID: "hnh-pool", Type: domain.FacilityTypePool, Hours: []domain.Interval{midday}},
				{ID: "hnh-fitness", Type: domain.FacilityTypeFitness, Hours: []domain.Interval{evening}},
				{ID: "hnh-bowling", Type: domain.FacilityTypeBowling, Hours: []domain.Interval{morning}},
			},
		}
		poolOnly := domain.Gym{
			ID:   "noyes-pool",
			Name: "Noyes Pool",
			Facilities: []domain.Facility{
				{ID: "noyes-pool", Type: domain.FacilityTypePool, Hours: []domain.Interval{midday}},
			},
		}
		getGyms := func(ctx context.Context) ([]domain.Gym, error) {
			return []domain.Gym{gym, poolOnly}, nil
		}

		statuses, err := app.BuildGetGymStatuses(getGyms, nowFunc)(t.Context())
		require.NoError(t, err)
		require.Len(t, statuses, 2)

		for _, status := range statuses {
			require.Equal(t, domain.Open{CloseTime: midday.End}, status.Status)
		}
		require.Equal(t, "helen-newman", statuses[0].ID)
		require.Equal(t, domain.Closed{OpenTime: evening.Start}, statuses[0].FitnessStatus)
		require.Equal(t, "noyes-pool", statuses[1].ID)
		require.Nil(t, statuses[1].FitnessStatus)
	})

	t.Run("no gyms", func(t *testing.T) {
		t.Parallel()

		getGyms := func(ctx context.Context) ([]domain.Gym, error) {
			return []domain.Gym{}, nil
		}

		statuses, err := app.BuildGetGymStatuses(getGyms, nowFunc)(t.Context())
		require.NoError(t, err)
		require.Empty(t, statuses)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		getGyms := func(ctx context.Context) ([]domain.Gym, error) {
			return nil, domain.ErrTemporarilyUnavailable
		}

		_, err := app.BuildGetGymStatuses(getGyms, nowFunc)(t.Context())
		require.ErrorIs(t, err, domain.ErrTemporarilyUnavailable)
	})
}

func TestBuildGetGymStatus(t *testing.T) {
	t.Parallel()

	now := domaintest.ParseTime(t, "12/25/2023 12:00 PM")
	nowFunc := func() time.Time { return now }

	midday := domaintest.NewInterval(t, "12/25/2023 11:00 AM", "12/25/2023 1:00 PM")
	gym := domain.Gym{
		ID:   "teagle",
		Name: "Teagle",
		Facilities: []domain.Facility{
			{ID: "teagle-up", Type: domain.FacilityTypeFitness, Hours: []domain.Interval{midday}},
		},
	}

	getGyms := func(ctx context.Context) ([]domain.Gym, error) {
		return []domain.Gym{gym}, nil
	}
	getGymStatus := app.BuildGetGymStatus(getGyms, nowFunc)

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		status, err := getGymStatus(t.Context(), "teagle")
		require.NoError(t, err)
		require.Equal(t, "Teagle", status.Name)
		require.Equal(t, domain.Open{CloseTime: midday.End}, status.Status)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, err := getGymStatus(t.Context(), domaintest.NewID(t))
		require.ErrorIs(t, err, domain.ErrGymNotFound)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		getGyms := func(ctx context.Context) ([]domain.Gym, error) {
			return nil, domain.ErrUnauthorized
		}

		_, err := app.BuildGetGymStatus(getGyms, nowFunc)(t.Context(), "teagle")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
