package reconciler

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"southside/call-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const callLogHeader = "Call ID,Call Time,Direction,Status,Ringing,Talking,From,To,Call Activity Details\n"

func writeCallLog(t *testing.T, dir, name, rows string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(callLogHeader+rows), 0600))
	return path
}

func TestReconcileMergesOverlappingFiles(t *testing.T) {
	dir := t.TempDir()

	// Older export: weeks are computed per file, so C1 looks recent here.
	writeCallLog(t, dir, "CallLogLastWeek_1.csv",
		`C1,2025-11-21 10:00:00,Inbound,Answered,00:00:10,00:02:00,0871234567,012345678,Inbound: 0871234567 → Queue
C2,2025-11-20 09:00:00,Inbound,Answered,00:00:05,00:01:00,0861112222,012345678,Inbound: Acme Builders → Queue
`)
	// Newer export overlaps C2 with different leg data; first file wins.
	writeCallLog(t, dir, "CallLogLastWeek_2.csv",
		`C2,2025-11-20 09:00:00,Inbound,Answered,00:00:59,00:59:00,0861112222,012345678,Inbound: Acme Builders → Queue
C3,2025-11-28 15:00:00,Inbound,Unanswered,00:00:40,00:00:00,0859876543,012345678,Inbound: 0859876543 → Queue
`)

	result, err := ReconcileDir(dir, "CallLogLastWeek_*.csv", nil)
	require.NoError(t, err)

	assert.Len(t, result.Calls, 3)
	assert.Equal(t, 0, result.SkippedFiles)
	assert.True(t, result.MaxDate.Equal(time.Date(2025, 11, 28, 15, 0, 0, 0, time.UTC)))

	byID := map[string]models.Call{}
	for _, c := range result.Calls {
		byID[c.CallID] = c
	}

	// Dedup kept the first file's version of C2.
	assert.Equal(t, 5, byID["C2"].RingingTotalSec)
	assert.Equal(t, 60, byID["C2"].TalkingTotalSec)

	// Weeks recomputed against the GLOBAL max date (2025-11-28 15:00): C1 and
	// C2 fall in the second window, not week 1 as their own file suggested.
	assert.Equal(t, 1, byID["C3"].Week)
	assert.Equal(t, 2, byID["C1"].Week)
	assert.Equal(t, 2, byID["C2"].Week)
}

func TestReconcileDeterministicAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeCallLog(t, dir, "CallLogLastWeek_1.csv",
		"C1,2025-11-28 10:00:00,Inbound,Answered,00:00:10,00:02:00,0871234567,012345678,\n")
	writeCallLog(t, dir, "CallLogLastWeek_2.csv",
		"C2,2025-11-27 10:00:00,Inbound,Answered,00:00:10,00:02:00,0861112222,012345678,\n")

	first, err := ReconcileDir(dir, "CallLogLastWeek_*.csv", nil)
	require.NoError(t, err)
	second, err := ReconcileDir(dir, "CallLogLastWeek_*.csv", nil)
	require.NoError(t, err)

	assert.Equal(t, first.Calls, second.Calls)
	assert.True(t, first.MaxDate.Equal(second.MaxDate))
}

func TestReconcileSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	writeCallLog(t, dir, "CallLogLastWeek_1.csv",
		"C1,2025-11-28 10:00:00,Inbound,Answered,00:00:10,00:02:00,0871234567,012345678,\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CallLogLastWeek_2.csv"),
		[]byte("not,a,call,log\n1,2,3,4\n"), 0600))

	result, err := ReconcileDir(dir, "CallLogLastWeek_*.csv", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SkippedFiles)
	assert.Len(t, result.Calls, 1)
}

func TestReconcileNoData(t *testing.T) {
	dir := t.TempDir()

	_, err := ReconcileDir(dir, "CallLogLastWeek_*.csv", nil)
	assert.ErrorIs(t, err, ErrNoData)

	// A file with only a footer row also yields no usable data.
	writeCallLog(t, dir, "CallLogLastWeek_1.csv", "Totals,,,,00:00:50,00:06:45,,,\n")
	_, err = ReconcileDir(dir, "CallLogLastWeek_*.csv", nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestAssignAbandonedWeeks(t *testing.T) {
	maxDate := time.Date(2025, 11, 30, 23, 59, 59, 0, time.UTC)
	records := []models.AbandonedCall{
		{CallerID: "a", CallTime: models.NewTimestamp(maxDate.AddDate(0, 0, -1))},
		{CallerID: "b", CallTime: models.NewTimestamp(maxDate.AddDate(0, 0, -10))},
		{CallerID: "c", CallTime: models.NewTimestamp(maxDate.AddDate(0, 0, -30))},
	}

	AssignAbandonedWeeks(records, maxDate)

	assert.Equal(t, 1, records[0].Week)
	assert.Equal(t, 2, records[1].Week)
	assert.Equal(t, 3, records[2].Week)
}
