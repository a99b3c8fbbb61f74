package app

import (
	"context"
	"fmt"
	"time"

	"github.com/upliftapp/gymstatus/internal/domain"
)

type FacilityStatus struct {
	domain.Facility
	Status domain.Status
}

type GymStatus struct {
	ID     string
	Name   string
	Status domain.Status
	// Aggregate over the fitness centers only
	FitnessStatus domain.Status
	Facilities    []FacilityStatus
}

type GetGymStatuses func(ctx context.Context) ([]GymStatus, error)

type GetGymStatus func(ctx context.Context, gymID string) (GymStatus, error)

func gymStatusAt(gym domain.Gym, now time.Time) GymStatus {
	facilities := make([]FacilityStatus, 0, len(gym.Facilities))
	statuses := make([]domain.Status, 0, len(gym.Facilities))
	for _, facility := range gym.Facilities {
		status := facility.Status(now)
		facilities = append(facilities, FacilityStatus{
			Facility: facility,
			Status:   status,
		})
		statuses = append(statuses, status)
	}

	return GymStatus{
		ID:            gym.ID,
		Name:          gym.Name,
		Status:        domain.Aggregate(statuses),
		FitnessStatus: gym.FitnessCenterStatus(now),
		Facilities:    facilities,
	}
}

// BuildGetGymStatuses resolves every gym at the current time, open gyms first
func BuildGetGymStatuses(getGyms GetGyms, nowFunc func() time.Time) GetGymStatuses {
	return func(ctx context.Context) ([]GymStatus, error) {
		gyms, err := getGyms(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get gyms: %w", err)
		}

		now := nowFunc()

		gymStatuses := make([]GymStatus, 0, len(gyms))
		for _, gym := range gyms {
			gymStatuses = append(gymStatuses, gymStatusAt(gym, now))
		}

		domain.SortByStatus(gymStatuses, func(gymStatus GymStatus) domain.Status {
			return gymStatus.Status
		})

		return gymStatuses, nil
	}
}

func BuildGetGymStatus(getGyms GetGyms, nowFunc func() time.Time) GetGymStatus {
	return func(ctx context.Context, gymID string) (GymStatus, error) {
		gyms, err := getGyms(ctx)
		if err != nil {
			return GymStatus{}, fmt.Errorf("could not get gyms: %w", err)
		}

		for _, gym := range gyms {
			if gym.ID == gymID {
				return gymStatusAt(gym, nowFunc()), nil
			}
		}

		return GymStatus{}, fmt.Errorf("%w: %s", domain.ErrGymNotFound, gymID)
	}
}
