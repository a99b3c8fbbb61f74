package domain

import (
	"fmt"
	"time"
)

type FacilityType int

const (
	FacilityTypeUnknown FacilityType = iota
	FacilityTypeFitness
	FacilityTypePool
	FacilityTypeBowling
	FacilityTypeCourt
)

func (ft FacilityType) String() string {
	switch ft {
	case FacilityTypeUnknown:
		return "unknown"
	case FacilityTypeFitness:
		return "fitness"
	case FacilityTypePool:
		return "pool"
	case FacilityTypeBowling:
		return "bowling"
	case FacilityTypeCourt:
		return "court"
	default:
		return fmt.Sprintf("<invalid facility type>(%d)", int(ft))
	}
}

type Facility struct {
	ID    string
	Name  string
	Type  FacilityType
	Hours []Interval
}

func (f Facility) Status(now time.Time) Status {
	return Resolve(f.Hours, now)
}

// Gym is a building made up of one or more facilities
type Gym struct {
	ID         string
	Name       string
	Facilities []Facility
}

func (g Gym) Status(now time.Time) Status {
	statuses := make([]Status, 0, len(g.Facilities))
	for _, facility := range g.Facilities {
		statuses = append(statuses, facility.Status(now))
	}
	return Aggregate(statuses)
}

// FitnessCenterStatus aggregates only the gym's fitness centers
func (g Gym) FitnessCenterStatus(now time.Time) Status {
	statuses := make([]Status, 0, len(g.Facilities))
	for _, facility := range g.Facilities {
		if facility.Type != FacilityTypeFitness {
			continue
		}
		statuses = append(statuses, facility.Status(now))
	}
	return Aggregate(statuses)
}
