package dashboard

import "time"

// Week is a calendar week running from Sunday midnight to the following
// Saturday midnight, both ends inclusive.
type Week struct {
	Start time.Time
	End   time.Time
}

// WeekBounds returns the week containing date, cut at local midnight in loc.
// End is Saturday 00:00, not the end of Saturday.
func WeekBounds(date time.Time, loc *time.Location) Week {
	if loc == nil {
		loc = time.UTC
	}
	local := date.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day()-int(local.Weekday()), 0, 0, 0, 0, loc)
	return Week{Start: start, End: start.AddDate(0, 0, 6)}
}

// PreviousWeekBounds shifts a week start back by seven calendar days.
func PreviousWeekBounds(currentStart time.Time) Week {
	start := currentStart.AddDate(0, 0, -7)
	return Week{Start: start, End: start.AddDate(0, 0, 6)}
}

// InRange reports start <= date <= end.
func InRange(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

func (w Week) Contains(t time.Time) bool {
	return InRange(t, w.Start, w.End)
}
