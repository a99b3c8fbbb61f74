package domain

import (
	"fmt"
	"time"
)

type CourtType int

const (
	CourtTypeNone CourtType = iota
	CourtTypeBasketball
	CourtTypeVolleyball
	CourtTypeBadminton
)

func (ct CourtType) String() string {
	switch ct {
	case CourtTypeNone:
		return "none"
	case CourtTypeBasketball:
		return "basketball"
	case CourtTypeVolleyball:
		return "volleyball"
	case CourtTypeBadminton:
		return "badminton"
	default:
		return fmt.Sprintf("<invalid court type>(%d)", int(ct))
	}
}

// IntervalTags are display-only attributes of an Interval.
// They never affect status resolution.
type IntervalTags struct {
	WomenOnly bool
	Special   bool
	Court     CourtType
}

// Interval is a half-open window [Start, End) during which a facility is open.
type Interval struct {
	Start time.Time
	End   time.Time
	Tags  IntervalTags
}

func NewInterval(start, end time.Time, tags IntervalTags) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{
		Start: start,
		End:   end,
		Tags:  tags,
	}, nil
}

// Contains reports whether t is within [Start, End)
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

func (i Interval) EndedBy(t time.Time) bool {
	return !i.End.After(t)
}
