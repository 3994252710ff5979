package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 6, 15, 18, 42, 13, 500, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}

func TestStartOfDayConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 02:00 on June 16 in UTC+5 is 21:00 on June 15 in UTC.
	in := time.Date(2025, 6, 16, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC)
	want := time.Date(2025, 6, 15, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	assert.Equal(t, want, EndOfDay(in))
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2025-06-15", DateKey(time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-05", DateKey(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestIsSameDay(t *testing.T) {
	morning := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	nextDay := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsSameDay(morning, evening))
	assert.False(t, IsSameDay(evening, nextDay))
}

func TestCalendarDaysBetween(t *testing.T) {
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, CalendarDaysBetween(base, base.Add(11*time.Hour)))
	assert.Equal(t, 1, CalendarDaysBetween(base, base.Add(13*time.Hour)))
	assert.Equal(t, 5, CalendarDaysBetween(base, base.AddDate(0, 0, 5)))
	assert.Equal(t, -1, CalendarDaysBetween(base, base.AddDate(0, 0, -1)))
}

func TestCalendarDaysBetweenAcrossMidnight(t *testing.T) {
	lateNight := time.Date(2025, 6, 15, 23, 50, 0, 0, time.UTC)
	earlyMorning := time.Date(2025, 6, 16, 0, 10, 0, 0, time.UTC)

	// Twenty minutes apart but on different calendar days.
	assert.Equal(t, 1, CalendarDaysBetween(lateNight, earlyMorning))
}

func TestIsConsecutiveDay(t *testing.T) {
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsConsecutiveDay(base, base.AddDate(0, 0, 1)))
	assert.False(t, IsConsecutiveDay(base, base))
	assert.False(t, IsConsecutiveDay(base, base.AddDate(0, 0, 2)))
}

func TestMinutesBetween(t *testing.T) {
	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 45, MinutesBetween(start, start.Add(45*time.Minute)))
	assert.Equal(t, 45, MinutesBetween(start, start.Add(45*time.Minute+30*time.Second)))
	assert.Equal(t, 0, MinutesBetween(start, start))
	assert.Equal(t, 0, MinutesBetween(start, start.Add(-time.Hour)))
}
