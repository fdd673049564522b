// Package valueobject contains domain value objects for the ledger.
package valueobject

import (
	"strings"
	"time"
)

// TimeRange is the symbolic range a statistics query is scoped to.
type TimeRange string

const (
	TimeRangeDay    TimeRange = "day"
	TimeRangeWeek   TimeRange = "week"
	TimeRangeMonth  TimeRange = "month"
	TimeRangeYear   TimeRange = "year"
	TimeRangeCustom TimeRange = "custom"
)

// DefaultTimeRange is used when a query does not name a range.
const DefaultTimeRange = TimeRangeMonth

// ParseTimeRange parses a range name. It is case-insensitive and returns false
// for unknown names.
func ParseTimeRange(s string) (TimeRange, bool) {
	r := TimeRange(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", false
	}
	return r, true
}

// IsValid reports whether r is a known range.
func (r TimeRange) IsValid() bool {
	switch r {
	case TimeRangeDay, TimeRangeWeek, TimeRangeMonth, TimeRangeYear, TimeRangeCustom:
		return true
	default:
		return false
	}
}

// TrendGranularity returns the bucket size used for the trend series of r.
func (r TimeRange) TrendGranularity() Granularity {
	switch r {
	case TimeRangeDay:
		return GranularityHourly
	case TimeRangeYear:
		return GranularityMonthly
	default:
		return GranularityDaily
	}
}

// Granularity is the size of a trend bucket.
type Granularity string

const (
	GranularityHourly  Granularity = "hourly"
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

// Bucket key layouts. All are zero-padded so lexicographic order is chronological.
const (
	HourKeyLayout  = "2006-01-02 15:00"
	DayKeyLayout   = "2006-01-02"
	MonthKeyLayout = "2006-01"
)

// PeriodKey formats t as the bucket key for granularity g, in t's location.
func (g Granularity) PeriodKey(t time.Time) string {
	switch g {
	case GranularityHourly:
		return t.Format(HourKeyLayout)
	case GranularityMonthly:
		return t.Format(MonthKeyLayout)
	default:
		return t.Format(DayKeyLayout)
	}
}

// Bounds is a resolved time range. Both ends are inclusive.
type Bounds struct {
	Range TimeRange
	Start time.Time
	End   time.Time
}

// Duration returns End - Start. It is negative for inverted bounds.
func (b Bounds) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Contains reports whether t lies within the bounds, inclusive on both ends.
func (b Bounds) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// Location returns the location calendar buckets are computed in.
func (b Bounds) Location() *time.Location {
	return b.Start.Location()
}
