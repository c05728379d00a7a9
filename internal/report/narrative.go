package report

import (
	"fmt"
	"strings"
	"time"

	"southside/call-report/internal/dateutils"
	"southside/call-report/internal/metrics"
)

// Narrative renders the analysis as the plain-text executive summary that
// accompanies the exported datasets.
func Narrative(a *Analysis, schedule metrics.Schedule) string {
	s := a.Summary
	var b strings.Builder

	fmt.Fprintf(&b, "Received a total of %d calls across This Week and Last Week.\n\n", s.TotalCalls())

	writeWeek(&b, "This Week", s.ThisWeek)
	writeWeek(&b, "Last Week", s.LastWeek)

	fmt.Fprintf(&b, "Out of Hours Analysis:\n")
	fmt.Fprintf(&b, "Operating hours: %s\n", formatSchedule(schedule))
	fmt.Fprintf(&b, "  - Total OOH calls: %d received outside operating hours\n", a.OutOfHours.Total)
	fmt.Fprintf(&b, "  - Before opening: %d\n", a.OutOfHours.BeforeOpening)
	fmt.Fprintf(&b, "  - After closing: %d\n\n", a.OutOfHours.AfterClosing)

	fmt.Fprintf(&b, "Abandoned call details (from abandoned logs):\n")
	fmt.Fprintf(&b, "  - Agents logged out: %d abandoned calls when no agents were logged in\n",
		a.Journey.AbandonedAgentLoggedOut)
	fmt.Fprintf(&b, "    (before opening: %d, during business hours: %d, after closing: %d)\n",
		a.Journey.LoggedOutBeforeOpening, a.Journey.LoggedOutDuringHours, a.Journey.LoggedOutAfterClosing)
	fmt.Fprintf(&b, "  - Zero polling: %d abandoned calls with 0 polling attempts (system could not reach any agent)\n",
		a.Journey.AbandonedZeroPolling)

	if skipped := a.SkippedFiles(); skipped > 0 {
		fmt.Fprintf(&b, "\nWARNING: %d input file(s) could not be read; figures may undercount.\n", skipped)
	}

	return b.String()
}

func writeWeek(b *strings.Builder, label string, w metrics.WeekMetrics) {
	fmt.Fprintf(b, "%s (%s to %s): received %d calls total.\n",
		label, dateutils.FormatDayMonthYear(w.Start), dateutils.FormatDayMonthYear(w.End), w.TotalCalls())
	fmt.Fprintf(b, "  - Retail: %d calls\n", w.RetailCalls)
	fmt.Fprintf(b, "  - Trade: %d calls\n", w.TradeCalls)
	fmt.Fprintf(b, "  - Abandoned: %d calls (Retail: %d, Trade: %d)\n\n",
		w.AbandonedCalls(), w.RetailAbandoned, w.TradeAbandoned)
}

// formatSchedule renders the opening hours Monday through Sunday in a single
// line, e.g. "Mon 08:00-20:00, ... Sun 10:00-16:00".
func formatSchedule(schedule metrics.Schedule) string {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	parts := make([]string, 0, len(order))
	for _, day := range order {
		hours, ok := schedule[day]
		if !ok {
			parts = append(parts, fmt.Sprintf("%s closed", day.String()[:3]))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %02d:00-%02d:00", day.String()[:3], hours.Open, hours.Close))
	}
	return strings.Join(parts, ", ")
}
