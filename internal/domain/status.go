package domain

import (
	"slices"
	"time"
)

// FarFuture is used as the opening time of an entity that has no hours at all.
// Effectively infinitely far in the future while staying well inside UnixNano range.
var FarFuture = time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC)

// Status is either Open or Closed.
//
// A nil Status means there is no information to resolve a status from.
type Status interface {
	isStatus()
}

type Open struct {
	CloseTime time.Time
}

type Closed struct {
	OpenTime time.Time
}

func (Open) isStatus()   {}
func (Closed) isStatus() {}

// Resolve computes the status at now from an unordered set of intervals.
//
// Intervals that have ended at or before now are ignored. When open, the reported
// close time is the latest end among all intervals open at now. Returns nil when
// every interval is in the past.
func Resolve(intervals []Interval, now time.Time) Status {
	if len(intervals) == 0 {
		return Closed{OpenTime: FarFuture}
	}

	var earliest *Interval
	for i := range intervals {
		interval := &intervals[i]
		if interval.EndedBy(now) {
			continue
		}
		if earliest == nil || interval.Start.Before(earliest.Start) {
			earliest = interval
		}
	}

	if earliest == nil {
		return nil
	}

	if now.Before(earliest.Start) {
		return Closed{OpenTime: earliest.Start}
	}

	if earliest.Contains(now) {
		closeTime := earliest.End
		for _, interval := range intervals {
			if interval.Contains(now) && interval.End.After(closeTime) {
				closeTime = interval.End
			}
		}
		return Open{CloseTime: closeTime}
	}

	// Clock skew guard: search forward for the next opening
	openTime, ok := nextStartAfter(intervals, now)
	if !ok {
		return nil
	}
	return Closed{OpenTime: openTime}
}

func nextStartAfter(intervals []Interval, now time.Time) (time.Time, bool) {
	var next time.Time
	found := false
	for _, interval := range intervals {
		if !interval.Start.After(now) {
			continue
		}
		if !found || interval.Start.Before(next) {
			next = interval.Start
			found = true
		}
	}
	return next, found
}

// CompareStatus orders open before closed, and known before unknown (nil).
//
// Open statuses closing later come first, closed statuses opening sooner come first.
func CompareStatus(a, b Status) int {
	rank := func(s Status) int {
		switch s.(type) {
		case Open:
			return 0
		case Closed:
			return 1
		default:
			return 2
		}
	}

	if rankA, rankB := rank(a), rank(b); rankA != rankB {
		return rankA - rankB
	}

	switch a := a.(type) {
	case Open:
		return b.(Open).CloseTime.Compare(a.CloseTime)
	case Closed:
		return a.OpenTime.Compare(b.(Closed).OpenTime)
	}
	return 0
}

// SortByStatus stably sorts items by the status returned from statusOf
func SortByStatus[T any](items []T, statusOf func(T) Status) {
	slices.SortStableFunc(items, func(a, b T) int {
		return CompareStatus(statusOf(a), statusOf(b))
	})
}
