// Package statistics contains the aggregation engine and the statistics use cases.
package statistics

import (
	"time"

	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// ResolveBounds computes concrete bounds for r relative to now.
// Calendar boundaries are computed in now's location. Weeks start on Monday.
// For custom ranges the caller's bounds are used verbatim: a missing start
// defaults to the Unix epoch and a missing end to now. Inverted custom bounds
// are returned as-is.
func ResolveBounds(r valueobject.TimeRange, now time.Time, customStart, customEnd *time.Time) valueobject.Bounds {
	loc := now.Location()

	switch r {
	case valueobject.TimeRangeDay:
		return valueobject.Bounds{Range: r, Start: startOfDay(now), End: now}
	case valueobject.TimeRangeWeek:
		return valueobject.Bounds{Range: r, Start: getWeekStartDate(now), End: now}
	case valueobject.TimeRangeYear:
		return valueobject.Bounds{Range: r, Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), End: now}
	case valueobject.TimeRangeCustom:
		start := time.Unix(0, 0).In(loc)
		if customStart != nil {
			start = *customStart
		}
		end := now
		if customEnd != nil {
			end = *customEnd
		}
		return valueobject.Bounds{Range: r, Start: start, End: end}
	default:
		return valueobject.Bounds{
			Range: valueobject.TimeRangeMonth,
			Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc),
			End:   now,
		}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// getWeekStartDate returns local midnight of the Monday of the week containing date.
func getWeekStartDate(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7
	}
	daysFromMonday := weekday - 1
	return time.Date(date.Year(), date.Month(), date.Day()-daysFromMonday, 0, 0, 0, 0, date.Location())
}
