package metrics

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"southside/call-report/internal/models"
)

// DayHours is the opening window for one weekday, in whole hours. A call at
// exactly the opening hour is in hours; one at exactly the closing hour is
// after closing.
type DayHours struct {
	Open  int `yaml:"open"`
	Close int `yaml:"close"`
}

// Schedule maps each weekday to its opening window. Days absent from the
// schedule count as closed all day, with every call before opening.
type Schedule map[time.Weekday]DayHours

// DefaultSchedule returns the call center's standard opening hours.
func DefaultSchedule() Schedule {
	return Schedule{
		time.Monday:    {Open: 8, Close: 20},
		time.Tuesday:   {Open: 8, Close: 20},
		time.Wednesday: {Open: 8, Close: 20},
		time.Thursday:  {Open: 8, Close: 20},
		time.Friday:    {Open: 8, Close: 20},
		time.Saturday:  {Open: 8, Close: 18},
		time.Sunday:    {Open: 10, Close: 16},
	}
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// LoadSchedule reads an opening-hours schedule from a YAML file keyed by
// lowercase weekday name.
func LoadSchedule(path string) (Schedule, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("error reading schedule file: %w", err)
	}

	var raw map[string]DayHours
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing schedule file: %w", err)
	}

	schedule := make(Schedule, len(raw))
	for name, hours := range raw {
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday in schedule file: %s", name)
		}
		if hours.Open < 0 || hours.Close > 24 || hours.Open >= hours.Close {
			return nil, fmt.Errorf("invalid hours for %s: open=%d close=%d", name, hours.Open, hours.Close)
		}
		schedule[day] = hours
	}
	return schedule, nil
}

// HoursCategory places a call time relative to the opening window.
type HoursCategory int

const (
	DuringHours HoursCategory = iota
	BeforeOpening
	AfterClosing
)

// Classify places t relative to that weekday's opening window.
func (s Schedule) Classify(t time.Time) HoursCategory {
	hours, ok := s[t.Weekday()]
	if !ok {
		return BeforeOpening
	}
	switch {
	case t.Hour() < hours.Open:
		return BeforeOpening
	case t.Hour() >= hours.Close:
		return AfterClosing
	default:
		return DuringHours
	}
}

// OutOfHoursStats counts calls received outside the opening window.
type OutOfHoursStats struct {
	Total         int
	BeforeOpening int
	AfterClosing  int
}

// AnalyzeOutOfHours counts out-of-hours calls across both logs combined.
// Only reporting-week records contribute; the abandoned stream is included
// because out-of-hours callers usually abandon rather than reach anyone.
func AnalyzeOutOfHours(calls []models.Call, abandoned []models.AbandonedCall, schedule Schedule) OutOfHoursStats {
	var stats OutOfHoursStats

	tally := func(t time.Time) {
		switch schedule.Classify(t) {
		case BeforeOpening:
			stats.Total++
			stats.BeforeOpening++
		case AfterClosing:
			stats.Total++
			stats.AfterClosing++
		}
	}

	for _, c := range FilterReportingWeeks(calls) {
		tally(c.CallStart.Time)
	}
	for _, a := range FilterAbandonedReportingWeeks(abandoned) {
		tally(a.CallTime.Time)
	}
	return stats
}
