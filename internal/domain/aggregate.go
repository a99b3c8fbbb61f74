package domain

import "time"

// Aggregate combines the statuses of sibling facilities into one status.
//
// The entity is open if any sub-status is open, and stays open until the last of
// them closes. Otherwise it opens at the soonest opening among the closed ones.
// nil sub-statuses are skipped; if nothing remains the result is nil.
func Aggregate(statuses []Status) Status {
	var open *Open
	var closed *Closed

	for _, status := range statuses {
		switch s := status.(type) {
		case Open:
			if open == nil || s.CloseTime.After(open.CloseTime) {
				open = &s
			}
		case Closed:
			if closed == nil || s.OpenTime.Before(closed.OpenTime) {
				closed = &s
			}
		}
	}

	if open != nil {
		return *open
	}
	if closed != nil {
		return *closed
	}
	return nil
}

func ResolveAggregate(intervalSets [][]Interval, now time.Time) Status {
	statuses := make([]Status, 0, len(intervalSets))
	for _, intervals := range intervalSets {
		statuses = append(statuses, Resolve(intervals, now))
	}
	return Aggregate(statuses)
}
