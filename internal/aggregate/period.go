package aggregate

import (
	"fmt"
	"time"
)

// MonthStart returns the bucket key for monthly aggregation: the first
// day of the date's month at midnight.
func MonthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthLabel renders a monthly bucket as "August 2025".
func MonthLabel(start time.Time) string {
	return fmt.Sprintf("%s %d", start.Month(), start.Year())
}

// BiweekStart returns the bucket key for biweekly aggregation: the
// Sunday-aligned week start of the date, shifted back one week when that
// week's ordinal number within its year is even. Periods span 14 days.
//
// The parity rule uses the week start's own year, so buckets are not
// calendar-aligned across year boundaries — a known limitation carried
// over from the workbook's reporting conventions.
func BiweekStart(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))

	jan1 := time.Date(weekStart.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	days := int(weekStart.Sub(jan1).Hours() / 24)
	weekNum := (days + 1 + 6) / 7 // ceil((days+1)/7)
	if weekNum%2 == 0 {
		weekStart = weekStart.AddDate(0, 0, -7)
	}
	return weekStart
}

// BiweekLabel renders a biweekly bucket as "8/3 - 8/16": month/day of the
// period start and start+13, no leading zeros, no year.
func BiweekLabel(start time.Time) string {
	end := start.AddDate(0, 0, 13)
	return fmt.Sprintf("%d/%d - %d/%d", start.Month(), start.Day(), end.Month(), end.Day())
}
