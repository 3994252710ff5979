// Package timeutil provides calendar-day utilities for streak tracking and
// leaderboard windows. All studio timestamps are stored and compared in UTC.
// No external dependencies - uses only standard library.
package timeutil

import "time"

// FormatDate is the standard date format (YYYY-MM-DD).
const FormatDate = "2006-01-02"

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// StartOfDay returns the start of the day (00:00:00) in UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in UTC.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// DateKey formats a time as a YYYY-MM-DD key in UTC.
// Used for heatmap bucketing and streak comparisons.
func DateKey(t time.Time) string {
	return t.UTC().Format(FormatDate)
}

// IsSameDay checks if two times fall on the same UTC calendar day.
func IsSameDay(t1, t2 time.Time) bool {
	a, b := t1.UTC(), t2.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// CalendarDaysBetween returns the signed number of calendar days from t1 to t2.
// Positive when t2 is after t1, negative when the clock moved backward.
func CalendarDaysBetween(t1, t2 time.Time) int {
	d1 := StartOfDay(t1)
	d2 := StartOfDay(t2)
	return int(d2.Sub(d1).Hours() / 24)
}

// IsConsecutiveDay checks if t2 is the calendar day after t1.
func IsConsecutiveDay(t1, t2 time.Time) bool {
	return CalendarDaysBetween(t1, t2) == 1
}

// DaysSince returns the number of whole calendar days since the given time.
func DaysSince(t time.Time) int {
	return CalendarDaysBetween(t, Now())
}

// MinutesBetween returns the whole minutes elapsed from start to end.
// Negative intervals are clamped to zero.
func MinutesBetween(start, end time.Time) int {
	mins := int(end.Sub(start).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}
