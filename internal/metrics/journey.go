package metrics

import (
	"regexp"
	"strings"
	"unicode"

	"southside/call-report/internal/models"
)

// Terminator identifies which party ended a call, inferred from the "Ended
// by" marker in the activity details.
type Terminator int

const (
	TerminatorUnknown Terminator = iota
	TerminatorAgent
	TerminatorCustomer
	TerminatorSystem
)

// JourneyStats describes how callers moved through the phone system.
type JourneyStats struct {
	QueueCalls       int
	OutOfOfficeCalls int
	VoicemailCalls   int

	EndedByAgent    int
	EndedByCustomer int
	EndedBySystem   int
	EndedByUnknown  int

	AbandonedAgentLoggedOut int
	AbandonedAgentLoggedIn  int

	LoggedOutBeforeOpening int
	LoggedOutDuringHours   int
	LoggedOutAfterClosing  int

	AbandonedZeroPolling int
}

var endedByPattern = regexp.MustCompile(`Ended by ([^:|]+)`)

// ExtractTerminator infers who ended a call from its activity details. The
// voice agent marker always means the system; otherwise a terminator token
// that looks like a phone number (digits, longer than five characters) is
// the customer and anything else is an agent name.
func ExtractTerminator(details string) Terminator {
	if strings.Contains(details, "Ended by Voice Agent") {
		return TerminatorSystem
	}
	m := endedByPattern.FindStringSubmatch(details)
	if m == nil {
		return TerminatorUnknown
	}
	token := strings.TrimSpace(m[1])
	if len(token) > 5 && containsDigit(token) {
		return TerminatorCustomer
	}
	return TerminatorAgent
}

// AnalyzeJourney derives journey statistics from the reporting weeks of both
// logs. Activity-detail matching is case-insensitive substring search, the
// same markers the phone system writes.
func AnalyzeJourney(calls []models.Call, abandoned []models.AbandonedCall, schedule Schedule) JourneyStats {
	var stats JourneyStats

	for _, c := range FilterReportingWeeks(calls) {
		details := c.ActivityDetails
		lower := strings.ToLower(details)
		if strings.Contains(lower, "queue") {
			stats.QueueCalls++
		}
		if strings.Contains(lower, "out of office") {
			stats.OutOfOfficeCalls++
		}
		if strings.Contains(lower, "voice agent") {
			stats.VoicemailCalls++
		}
		switch ExtractTerminator(details) {
		case TerminatorAgent:
			stats.EndedByAgent++
		case TerminatorCustomer:
			stats.EndedByCustomer++
		case TerminatorSystem:
			stats.EndedBySystem++
		default:
			stats.EndedByUnknown++
		}
	}

	for _, a := range FilterAbandonedReportingWeeks(abandoned) {
		switch a.AgentState {
		case "Logged Out":
			stats.AbandonedAgentLoggedOut++
			switch schedule.Classify(a.CallTime.Time) {
			case BeforeOpening:
				stats.LoggedOutBeforeOpening++
			case AfterClosing:
				stats.LoggedOutAfterClosing++
			default:
				stats.LoggedOutDuringHours++
			}
		case "Logged In":
			stats.AbandonedAgentLoggedIn++
		}
		if a.PollingAttempts == 0 {
			stats.AbandonedZeroPolling++
		}
	}

	return stats
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
