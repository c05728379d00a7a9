package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"southside/call-report/internal/metrics"
	"southside/call-report/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	callLogHeader   = "Call ID,Call Time,Direction,Status,Ringing,Talking,From,To,Call Activity Details\n"
	abandonedHeader = "Caller ID,Call Time,Waiting Time,Agent State,Polling Attempts,Queue\n"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

// fixtureAnalysis runs the pipeline over a small but complete data directory:
// two main-log calls this week (one retail, one trade), one retail call last
// week, and one abandoned call per week whose customer type resolves through
// trade-number matching against the main log.
func fixtureAnalysis(t *testing.T) *Analysis {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, dir, "CallLogLastWeek_1.csv", callLogHeader+
		`C1,2025-11-28 15:00:00,Inbound,Answered,00:00:10,00:02:00,0871234567,012345678,Inbound: 0871234567 → Queue | Ended by Mary Byrne
C2,2025-11-27 10:00:00,Inbound,Answered,00:00:05,00:03:00,0861112222,012345678,Inbound: Acme Builders → Queue | Ended by Voice Agent
C3,2025-11-18 09:00:00,Inbound,Unanswered,00:00:40,00:00:00,0859876543,012345678,Inbound: 0859876543 → Queue
`)
	writeFixture(t, dir, "AbandonedCalls_1.csv", abandonedHeader+
		`0861112222,2025-11-27 12:00:00,00:01:30,Logged In,2,Sales
0852223333,2025-11-17 12:00:00,00:00:45,Logged Out,0,Sales
`)

	analysis, err := Analyze(Options{
		DataDir:          dir,
		CallLogPattern:   "CallLogLastWeek_*.csv",
		AbandonedPattern: "AbandonedCalls_*.csv",
	}, nil)
	require.NoError(t, err)
	return analysis
}

func TestAnalyzePipeline(t *testing.T) {
	a := fixtureAnalysis(t)

	assert.True(t, a.MaxDate.Equal(time.Date(2025, 11, 28, 15, 0, 0, 0, time.UTC)))
	assert.Len(t, a.Calls, 3)
	assert.Len(t, a.Abandoned, 2)
	assert.Equal(t, 0, a.SkippedFiles())

	s := a.Summary
	assert.Equal(t, 1, s.ThisWeek.RetailCalls)
	assert.Equal(t, 1, s.ThisWeek.TradeCalls)
	assert.Equal(t, 1, s.LastWeek.RetailCalls)
	assert.Equal(t, 0, s.LastWeek.TradeCalls)

	// 0861112222 matches the trade caller from the main log; 0852223333 does
	// not appear there and defaults to retail.
	assert.Equal(t, 1, s.ThisWeek.TradeAbandoned)
	assert.Equal(t, 0, s.ThisWeek.RetailAbandoned)
	assert.Equal(t, 1, s.LastWeek.RetailAbandoned)

	assert.Equal(t, 5, s.TotalCalls())
	assert.Equal(t, 2, s.AnsweredCalls)
	assert.Equal(t, 2, s.AbandonedCalls)

	assert.Equal(t, 1, a.Journey.AbandonedAgentLoggedOut)
	assert.Equal(t, 1, a.Journey.AbandonedZeroPolling)
}

func TestValidateConsistentAnalysis(t *testing.T) {
	a := fixtureAnalysis(t)
	assert.Empty(t, Validate(a))
}

func TestValidateDetectsTamperedFigures(t *testing.T) {
	a := fixtureAnalysis(t)
	a.Summary.ThisWeek.RetailCalls++

	errs := Validate(a)
	require.NotEmpty(t, errs)
	assert.Contains(t, strings.Join(errs, "\n"), "this week main-call recount")
}

func TestValidateSnapshot(t *testing.T) {
	good := &store.WeekSnapshot{
		WeekStart: "2025-11-22", WeekEnd: "2025-11-28",
		TotalCalls: 10, RetailCalls: 6, TradeCalls: 2,
		AbandonedTotal: 2, RetailAbandoned: 1, TradeAbandoned: 1,
	}
	assert.Empty(t, ValidateSnapshot(good))

	badTotal := *good
	badTotal.TotalCalls = 11
	errs := ValidateSnapshot(&badTotal)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "breakdown")

	badSplit := *good
	badSplit.TradeAbandoned = 5
	errs = ValidateSnapshot(&badSplit)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "abandoned split")
}

func TestApplyHistorical(t *testing.T) {
	a := fixtureAnalysis(t)
	thisWeekBefore := a.Summary.ThisWeek

	snap := &store.WeekSnapshot{
		WeekStart: "2025-11-15", WeekEnd: "2025-11-21",
		TotalCalls: 50, RetailCalls: 30, TradeCalls: 10,
		AbandonedTotal: 10, RetailAbandoned: 7, TradeAbandoned: 3,
	}
	ApplyHistorical(a, snap, nil)

	lw := a.Summary.LastWeek
	assert.Equal(t, 30, lw.RetailCalls)
	assert.Equal(t, 10, lw.TradeCalls)
	assert.Equal(t, 7, lw.RetailAbandoned)
	assert.Equal(t, 3, lw.TradeAbandoned)
	assert.Equal(t, 50, lw.TotalCalls())

	assert.Equal(t, thisWeekBefore, a.Summary.ThisWeek)
}

func TestNarrative(t *testing.T) {
	a := fixtureAnalysis(t)
	text := Narrative(a, metrics.DefaultSchedule())

	assert.Contains(t, text, "Received a total of 5 calls")
	assert.Contains(t, text, "This Week (22/11/2025 to 28/11/2025)")
	assert.Contains(t, text, "Last Week (15/11/2025 to 21/11/2025)")
	assert.Contains(t, text, "Retail: 1 calls")
	assert.Contains(t, text, "Mon 08:00-20:00")
	assert.Contains(t, text, "Sun 10:00-16:00")
	assert.Contains(t, text, "Zero polling: 1 abandoned")
	assert.NotContains(t, text, "WARNING")
}

func TestNarrativeWarnsOnSkippedFiles(t *testing.T) {
	a := fixtureAnalysis(t)
	a.SkippedCallFiles = 2

	text := Narrative(a, metrics.DefaultSchedule())
	assert.Contains(t, text, "WARNING: 2 input file(s) could not be read")
}

func TestAnalyzeSkipsUnreadableAbandonedFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "CallLogLastWeek_1.csv", callLogHeader+
		"C1,2025-11-28 15:00:00,Inbound,Answered,00:00:10,00:02:00,0871234567,012345678,\n")
	writeFixture(t, dir, "AbandonedCalls_1.csv", "Caller ID,Call Time\n\"unterminated,2025-11-27\n")

	a, err := Analyze(Options{
		DataDir:          dir,
		CallLogPattern:   "CallLogLastWeek_*.csv",
		AbandonedPattern: "AbandonedCalls_*.csv",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, a.SkippedAbandonedFiles)
	assert.Equal(t, 1, a.SkippedFiles())
}

func TestValidationSummary(t *testing.T) {
	ok := ValidationSummary(nil)
	assert.Contains(t, ok, "All metric consistency checks passed")

	failed := ValidationSummary([]string{"total mismatch: 5 != 6"})
	assert.Contains(t, failed, "1 check(s) FAILED")
	assert.Contains(t, failed, "total mismatch: 5 != 6")
}
