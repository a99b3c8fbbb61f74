package gymprovider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/upliftapp/gymstatus/internal/config"
	"github.com/upliftapp/gymstatus/internal/domain"
)

// mockGymProvider serves a fixed set of gyms with hours around the current day
type mockGymProvider struct {
	nowFunc func() time.Time
}

func (m *mockGymProvider) GetGyms(ctx context.Context) ([]domain.Gym, error) {
	today := m.nowFunc().UTC().Truncate(24 * time.Hour)

	daily := func(days int, fromHour, toHour int, tags domain.IntervalTags) []domain.Interval {
		intervals := make([]domain.Interval, 0, days)
		for day := range days {
			start := today.AddDate(0, 0, day).Add(time.Duration(fromHour) * time.Hour)
			end := today.AddDate(0, 0, day).Add(time.Duration(toHour) * time.Hour)
			intervals = append(intervals, domain.Interval{Start: start, End: end, Tags: tags})
		}
		return intervals
	}

	return []domain.Gym{
		{
			ID:   "teagle",
			Name: "Teagle",
			Facilities: []domain.Facility{
				{ID: "teagle-up", Name: "Teagle Up", Type: domain.FacilityTypeFitness, Hours: daily(7, 7, 23, domain.IntervalTags{})},
				{ID: "teagle-down", Name: "Teagle Down", Type: domain.FacilityTypeFitness, Hours: daily(7, 7, 11, domain.IntervalTags{})},
				{ID: "teagle-pool", Name: "Teagle Pool", Type: domain.FacilityTypePool, Hours: daily(7, 18, 20, domain.IntervalTags{WomenOnly: true})},
			},
		},
		{
			ID:   "helen-newman",
			Name: "Helen Newman",
			Facilities: []domain.Facility{
				{ID: "hnh-fitness", Name: "Helen Newman Fitness Center", Type: domain.FacilityTypeFitness, Hours: daily(7, 6, 22, domain.IntervalTags{})},
				{ID: "hnh-bowling", Name: "Helen Newman Bowling", Type: domain.FacilityTypeBowling, Hours: daily(7, 16, 21, domain.IntervalTags{Special: true})},
				{ID: "hnh-court", Name: "Helen Newman Court", Type: domain.FacilityTypeCourt, Hours: daily(7, 12, 15, domain.IntervalTags{Court: domain.CourtTypeBadminton})},
			},
		},
		{
			ID:         "appel",
			Name:       "Appel",
			Facilities: []domain.Facility{},
		},
	}, nil
}

func NewGraphQLOrMock(config config.Config, httpClient HttpClient, nowFunc func() time.Time) (GymProvider, error) {
	if config.GraphQLURL() != "" {
		return NewGraphQL(httpClient, config.GraphQLURL(), config.APIToken())
	}

	if config.IsDevelopment() {
		return &mockGymProvider{nowFunc: nowFunc}, nil
	}

	return nil, fmt.Errorf("missing GraphQL URL in non-development environment")
}

// Type assertions
var _ GymProvider = (*mockGymProvider)(nil)
var _ GymProvider = (*graphQL)(nil)
var _ HttpClient = (*http.Client)(nil)
