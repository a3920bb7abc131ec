package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t, date(2025, time.August, 1), MonthStart(date(2025, time.August, 1)))
	assert.Equal(t, date(2025, time.August, 1), MonthStart(date(2025, time.August, 31)))

	// Same month collides, different month never does.
	assert.Equal(t, MonthStart(date(2025, time.August, 3)), MonthStart(date(2025, time.August, 27)))
	assert.NotEqual(t, MonthStart(date(2025, time.August, 31)), MonthStart(date(2025, time.September, 1)))
	assert.NotEqual(t, MonthStart(date(2024, time.August, 1)), MonthStart(date(2025, time.August, 1)))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "August 2025", MonthLabel(date(2025, time.August, 1)))
	assert.Equal(t, "January 2024", MonthLabel(date(2024, time.January, 1)))
}

func TestBiweekStart_SundayAligned(t *testing.T) {
	start := BiweekStart(date(2025, time.August, 6)) // a Wednesday
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.True(t, !start.After(date(2025, time.August, 6)))
}

func TestBiweekStart_Idempotent(t *testing.T) {
	for d := date(2025, time.January, 1); d.Year() == 2025; d = d.AddDate(0, 0, 11) {
		start := BiweekStart(d)
		assert.Equal(t, start, BiweekStart(start), "date: %s", d)
	}
}

func TestBiweekStart_FourteenDayPeriods(t *testing.T) {
	start := BiweekStart(date(2025, time.August, 6))
	// Every day of the 14-day span maps to the same start.
	for i := 0; i < 14; i++ {
		assert.Equal(t, start, BiweekStart(start.AddDate(0, 0, i)), "offset %d", i)
	}
	// The day after the span starts a new period.
	assert.NotEqual(t, start, BiweekStart(start.AddDate(0, 0, 14)))
}

func TestBiweekLabel(t *testing.T) {
	// 14-day span, no leading zeros, no year.
	assert.Equal(t, "8/3 - 8/16", BiweekLabel(date(2025, time.August, 3)))
	assert.Equal(t, "12/28 - 1/10", BiweekLabel(date(2025, time.December, 28)))
}
