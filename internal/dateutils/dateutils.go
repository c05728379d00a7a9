// Package dateutils provides the date, duration and reporting-week
// operations used throughout the application.
package dateutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Common layout constants used throughout the application
const (
	LayoutTimestamp    = "2006-01-02 15:04:05"
	LayoutISO          = "2006-01-02"
	LayoutDayMonthYear = "02/01/2006"
)

// CallTimeFormats is the list of layouts tried when parsing export
// timestamps. Export files are not consistent about which one they use.
var CallTimeFormats = []string{
	LayoutTimestamp,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	LayoutISO,
	LayoutDayMonthYear,
}

// ParseCallTime attempts to parse an export timestamp using the known
// layouts. Footer rows ("Totals") and corrupted cells fail here and are
// dropped by the caller.
func ParseCallTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range CallTimeFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", value)
}

// ParseClockDuration converts an "H:M:S" duration field to whole seconds.
// Malformed input (wrong segment count, non-numeric component, empty cell)
// yields 0 rather than an error: bad duration cells are routine in exports
// and must not abort a multi-thousand-row aggregation.
func ParseClockDuration(value string) int {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0
	}

	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	s, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return 0
	}

	total := h*3600 + m*60 + s
	if total < 0 {
		return 0
	}
	return total
}

// WeekWindow is one rolling 7-day reporting window derived from a reference
// max date. Bounds are half-open: Start < t <= End.
type WeekWindow struct {
	Week  int
	Start time.Time
	End   time.Time
}

// WeekWindows returns the two comparison windows for a reference max date:
// week 1 covers (max-7d, max], week 2 covers (max-14d, max-7d]. The windows
// are contiguous with no gap and no overlap.
func WeekWindows(maxDate time.Time) [2]WeekWindow {
	week1Start := maxDate.AddDate(0, 0, -7)
	week2Start := maxDate.AddDate(0, 0, -14)
	return [2]WeekWindow{
		{Week: 1, Start: week1Start, End: maxDate},
		{Week: 2, Start: week2Start, End: week1Start},
	}
}

// Contains reports whether t falls inside the window, exclusive of the lower
// bound and inclusive of the upper.
func (w WeekWindow) Contains(t time.Time) bool {
	return t.After(w.Start) && !t.After(w.End)
}

// AssignWeek buckets a timestamp relative to the reference max date:
// 1 for the most recent 7 days, 2 for the 7 days before that, 3 for
// anything older (or otherwise outside both windows).
func AssignWeek(t, maxDate time.Time) int {
	for _, w := range WeekWindows(maxDate) {
		if w.Contains(t) {
			return w.Week
		}
	}
	return 3
}

// WeekDateRange returns the day-based inclusive date range used for report
// narrative labels: week n ends maxDate minus 7*(n-1) days and starts six
// days before its end, so both endpoint dates belong to the week.
func WeekDateRange(week int, maxDate time.Time) (start, end time.Time) {
	end = maxDate.AddDate(0, 0, -7*(week-1))
	start = end.AddDate(0, 0, -6)
	return start, end
}

// WeekDateLabel formats the start date of a narrative week as DD/MM/YYYY.
func WeekDateLabel(week int, maxDate time.Time) string {
	start, _ := WeekDateRange(week, maxDate)
	return start.Format(LayoutDayMonthYear)
}

// FormatDayMonthYear formats a date as DD/MM/YYYY for narrative display.
func FormatDayMonthYear(t time.Time) string {
	return t.Format(LayoutDayMonthYear)
}

// ToISODate formats a time value as an ISO date (YYYY-MM-DD).
func ToISODate(t time.Time) string {
	return t.Format(LayoutISO)
}
