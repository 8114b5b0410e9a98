package model

import (
	"fmt"
	"time"
)

// MonthLayout is the canonical period key format used on PlannedSlot,
// PeriodLock and Accrual rows.
const MonthLayout = "2006-01"

// ParseMonth parses a "YYYY-MM" key into the first day of that month
// (UTC, midnight).
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return t, nil
}

// MonthKey formats a date's period key.
func MonthKey(t time.Time) string { return t.Format(MonthLayout) }

// MonthRange returns the first and last calendar day of the month.
func MonthRange(month string) (first, last time.Time, err error) {
	first, err = ParseMonth(month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	last = first.AddDate(0, 1, -1)
	return first, last, nil
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(month string) (int, error) {
	first, err := ParseMonth(month)
	if err != nil {
		return 0, err
	}
	return first.AddDate(0, 1, -1).Day(), nil
}

// MonthKeysBetween lists every month key touched by [start, end] in
// chronological order. An end before start yields nil.
func MonthKeysBetween(start, end time.Time) []string {
	var keys []string
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	stop := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(stop) {
		keys = append(keys, MonthKey(cur))
		cur = cur.AddDate(0, 1, 0)
	}
	return keys
}

// DateOnly truncates a timestamp to its calendar day in UTC. Trip-date
// comparisons across the codebase go through this so that rows written
// with differing time components still match.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
