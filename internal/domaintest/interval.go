package domaintest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/upliftapp/gymstatus/internal/domain"
)

// TimeLayout is MM/dd/yyyy h:mm a
const TimeLayout = "01/02/2006 3:04 PM"

// ParseTime parses a UTC timestamp like "12/25/2023 11:00 AM"
func ParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(TimeLayout, value, time.UTC)
	require.NoError(t, err)
	return parsed
}

func NewInterval(t *testing.T, start, end string) domain.Interval {
	t.Helper()
	return NewTaggedInterval(t, start, end, domain.IntervalTags{})
}

func NewTaggedInterval(t *testing.T, start, end string, tags domain.IntervalTags) domain.Interval {
	t.Helper()
	interval, err := domain.NewInterval(ParseTime(t, start), ParseTime(t, end), tags)
	require.NoError(t, err)
	return interval
}
