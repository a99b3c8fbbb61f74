package ports

import (
	"time"

	"github.com/upliftapp/gymstatus/internal/app"
	"github.com/upliftapp/gymstatus/internal/domain"
)

// statusResponse is null when the status is unknown
type statusResponse struct {
	Open      bool       `json:"open"`
	CloseTime *time.Time `json:"closeTime,omitempty"`
	OpenTime  *time.Time `json:"openTime,omitempty"`
}

type intervalResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	WomenOnly bool      `json:"womenOnly"`
	Special   bool      `json:"special"`
	Court     string    `json:"court,omitempty"`
}

type facilityResponse struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Type   string             `json:"type"`
	Status *statusResponse    `json:"status"`
	Hours  []intervalResponse `json:"hours"`
}

type gymResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Status        *statusResponse    `json:"status"`
	FitnessStatus *statusResponse    `json:"fitnessStatus"`
	Facilities    []facilityResponse `json:"facilities"`
}

func statusToResponse(status domain.Status) *statusResponse {
	switch s := status.(type) {
	case domain.Open:
		closeTime := s.CloseTime.UTC()
		return &statusResponse{Open: true, CloseTime: &closeTime}
	case domain.Closed:
		openTime := s.OpenTime.UTC()
		return &statusResponse{Open: false, OpenTime: &openTime}
	default:
		return nil
	}
}

func intervalToResponse(interval domain.Interval) intervalResponse {
	court := ""
	if interval.Tags.Court != domain.CourtTypeNone {
		court = interval.Tags.Court.String()
	}

	return intervalResponse{
		Start:     interval.Start.UTC(),
		End:       interval.End.UTC(),
		WomenOnly: interval.Tags.WomenOnly,
		Special:   interval.Tags.Special,
		Court:     court,
	}
}

func gymStatusToResponse(gymStatus app.GymStatus) gymResponse {
	facilities := make([]facilityResponse, 0, len(gymStatus.Facilities))
	for _, facility := range gymStatus.Facilities {
		hours := make([]intervalResponse, 0, len(facility.Hours))
		for _, interval := range facility.Hours {
			hours = append(hours, intervalToResponse(interval))
		}

		facilities = append(facilities, facilityResponse{
			ID:     facility.ID,
			Name:   facility.Name,
			Type:   facility.Type.String(),
			Status: statusToResponse(facility.Status),
			Hours:  hours,
		})
	}

	return gymResponse{
		ID:            gymStatus.ID,
		Name:          gymStatus.Name,
		Status:        statusToResponse(gymStatus.Status),
		FitnessStatus: statusToResponse(gymStatus.FitnessStatus),
		Facilities:    facilities,
	}
}
