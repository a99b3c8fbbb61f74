package gymprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/upliftapp/gymstatus/internal/domain"
	"github.com/upliftapp/gymstatus/internal/reporting"
)

type graphQLResponse struct {
	Data   *graphQLData   `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLData struct {
	Gyms []graphQLGym `json:"gyms"`
}

type graphQLGym struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Facilities []graphQLFacility `json:"facilities"`
}

type graphQLFacility struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	FacilityType string         `json:"facilityType"`
	Hours        []graphQLHours `json:"hours"`
}

// Start and end are unix seconds
type graphQLHours struct {
	Start     int64   `json:"start"`
	End       int64   `json:"end"`
	IsWomen   bool    `json:"isWomen"`
	IsSpecial bool    `json:"isSpecial"`
	CourtType *string `json:"courtType"`
}

func gymsFromGraphQLResponse(ctx context.Context, statusCode int, data []byte) ([]domain.Gym, error) {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: graphql API returned status code %d", domain.ErrTemporarilyUnavailable, statusCode)
	case http.StatusUnauthorized,
		http.StatusForbidden:
		return nil, fmt.Errorf("%w: graphql API returned status code %d", domain.ErrUnauthorized, statusCode)
	}

	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("graphql API returned status code %d", statusCode)
	}

	var response graphQLResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse graphql response: %w", err)
	}

	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("graphql API returned %d error(s), first: %s", len(response.Errors), response.Errors[0].Message)
	}

	if response.Data == nil {
		return nil, errors.New("graphql response is missing data")
	}

	gyms := make([]domain.Gym, 0, len(response.Data.Gyms))
	for _, gym := range response.Data.Gyms {
		facilities := make([]domain.Facility, 0, len(gym.Facilities))
		for _, facility := range gym.Facilities {
			facilities = append(facilities, facilityFromGraphQL(ctx, facility))
		}

		gyms = append(gyms, domain.Gym{
			ID:         gym.ID,
			Name:       gym.Name,
			Facilities: facilities,
		})
	}

	return gyms, nil
}

func facilityFromGraphQL(ctx context.Context, facility graphQLFacility) domain.Facility {
	facilityType, ok := parseFacilityType(facility.FacilityType)
	if !ok {
		reporting.Report(ctx, fmt.Errorf("unknown facility type: %s", facility.FacilityType), map[string]string{
			"facilityID": facility.ID,
		})
	}

	hours := make([]domain.Interval, 0, len(facility.Hours))
	for _, rawHours := range facility.Hours {
		court, ok := parseCourtType(rawHours.CourtType)
		if !ok {
			reporting.Report(ctx, fmt.Errorf("unknown court type: %s", *rawHours.CourtType), map[string]string{
				"facilityID": facility.ID,
			})
		}

		interval, err := domain.NewInterval(
			time.Unix(rawHours.Start, 0).UTC(),
			time.Unix(rawHours.End, 0).UTC(),
			domain.IntervalTags{
				WomenOnly: rawHours.IsWomen,
				Special:   rawHours.IsSpecial,
				Court:     court,
			},
		)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("dropped invalid interval for facility %s: %w", facility.ID, err))
			continue
		}
		hours = append(hours, interval)
	}

	return domain.Facility{
		ID:    facility.ID,
		Name:  facility.Name,
		Type:  facilityType,
		Hours: hours,
	}
}

func parseFacilityType(raw string) (domain.FacilityType, bool) {
	switch raw {
	case "FITNESS":
		return domain.FacilityTypeFitness, true
	case "POOL":
		return domain.FacilityTypePool, true
	case "BOWLING":
		return domain.FacilityTypeBowling, true
	case "COURT":
		return domain.FacilityTypeCourt, true
	default:
		return domain.FacilityTypeUnknown, false
	}
}

func parseCourtType(raw *string) (domain.CourtType, bool) {
	if raw == nil {
		return domain.CourtTypeNone, true
	}

	switch *raw {
	case "BASKETBALL":
		return domain.CourtTypeBasketball, true
	case "VOLLEYBALL":
		return domain.CourtTypeVolleyball, true
	case "BADMINTON":
		return domain.CourtTypeBadminton, true
	default:
		return domain.CourtTypeNone, false
	}
}
