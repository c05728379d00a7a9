// Package aggregator collapses cleaned call legs into one record per call
// and derives the call-level reporting fields.
package aggregator

import (
	"sort"
	"strings"
	"time"

	"southside/call-report/internal/dateutils"
	"southside/call-report/internal/models"
)

// Aggregate groups cleaned legs by call ID and produces one Call per group:
// start time is the earliest leg, durations are summed, direction/status
// sets are deduplicated and sorted for audit display, the customer type is
// resolved by precedence, and answered/abandoned flags are derived. Week
// labels are assigned against the batch's own max start time; the
// reconciler recomputes them against the global max date when merging
// multiple files. Output is sorted by call ID so repeated runs are
// byte-identical.
func Aggregate(legs []models.CallLeg) []models.Call {
	groups := make(map[string][]models.CallLeg)
	order := make([]string, 0)
	for _, leg := range legs {
		if _, ok := groups[leg.CallID]; !ok {
			order = append(order, leg.CallID)
		}
		groups[leg.CallID] = append(groups[leg.CallID], leg)
	}

	calls := make([]models.Call, 0, len(order))
	for _, id := range order {
		calls = append(calls, aggregateGroup(id, groups[id]))
	}

	sort.Slice(calls, func(i, j int) bool { return calls[i].CallID < calls[j].CallID })

	if maxDate, ok := MaxCallStart(calls); ok {
		AssignWeeks(calls, maxDate)
	}

	return calls
}

// aggregateGroup builds the call-level record for one call ID. Legs arrive
// in file order, so "first" fields (from/to numbers) are stable.
func aggregateGroup(id string, legs []models.CallLeg) models.Call {
	start := legs[0].StartTime
	ringing := 0
	talking := 0
	directions := make(map[string]bool)
	statuses := make(map[string]bool)
	details := make(map[string]bool)
	classifications := make([]models.LegClassification, 0, len(legs))

	for _, leg := range legs {
		if leg.StartTime.Before(start) {
			start = leg.StartTime
		}
		ringing += leg.RingingSec
		talking += leg.TalkingSec
		directions[leg.Direction] = true
		statuses[leg.Status] = true
		if leg.ActivityDetail != "" {
			details[leg.ActivityDetail] = true
		}
		classifications = append(classifications, leg.Classification)
	}

	return models.Call{
		CallID:          id,
		CallStart:       models.NewTimestamp(start),
		FromNumber:      legs[0].FromNumber,
		ToNumber:        legs[0].ToNumber,
		Directions:      joinSorted(directions, ","),
		Statuses:        joinSorted(statuses, ","),
		RingingTotalSec: ringing,
		TalkingTotalSec: talking,
		CustomerType:    models.ResolveCustomerType(classifications),
		IsAnswered:      talking > 0,
		// A call that rang but was never picked up. Zero ring time means the
		// call never entered a queue and is not abandoned by this definition.
		IsAbandoned:     talking == 0 && ringing > 0,
		ActivityDetails: joinSorted(details, " | "),
	}
}

// AssignWeeks stamps each call's week label against the given reference max
// date using the rolling 7-day windows.
func AssignWeeks(calls []models.Call, maxDate time.Time) {
	for i := range calls {
		calls[i].Week = dateutils.AssignWeek(calls[i].CallStart.Time, maxDate)
	}
}

// MaxCallStart returns the latest call start in the batch, or false when the
// batch is empty.
func MaxCallStart(calls []models.Call) (time.Time, bool) {
	if len(calls) == 0 {
		return time.Time{}, false
	}
	max := calls[0].CallStart.Time
	for _, c := range calls[1:] {
		if c.CallStart.After(max) {
			max = c.CallStart.Time
		}
	}
	return max, true
}

// joinSorted renders a set as a deterministic separator-joined list.
func joinSorted(set map[string]bool, sep string) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, sep)
}
