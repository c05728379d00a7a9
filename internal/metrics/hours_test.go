package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"southside/call-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleClassify(t *testing.T) {
	schedule := DefaultSchedule()

	tests := []struct {
		name     string
		t        time.Time
		expected HoursCategory
	}{
		// 2025-11-24 is a Monday.
		{"Weekday during hours", time.Date(2025, 11, 24, 10, 0, 0, 0, time.UTC), DuringHours},
		{"Weekday at opening", time.Date(2025, 11, 24, 8, 0, 0, 0, time.UTC), DuringHours},
		{"Weekday just before opening", time.Date(2025, 11, 24, 7, 59, 0, 0, time.UTC), BeforeOpening},
		{"Weekday at closing", time.Date(2025, 11, 24, 20, 0, 0, 0, time.UTC), AfterClosing},
		{"Weekday late evening", time.Date(2025, 11, 24, 23, 0, 0, 0, time.UTC), AfterClosing},
		{"Saturday during hours", time.Date(2025, 11, 29, 17, 30, 0, 0, time.UTC), DuringHours},
		{"Saturday after closing", time.Date(2025, 11, 29, 18, 0, 0, 0, time.UTC), AfterClosing},
		{"Sunday before opening", time.Date(2025, 11, 30, 9, 0, 0, 0, time.UTC), BeforeOpening},
		{"Sunday during hours", time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC), DuringHours},
		{"Sunday after closing", time.Date(2025, 11, 30, 16, 0, 0, 0, time.UTC), AfterClosing},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, schedule.Classify(tc.t))
		})
	}
}

func TestScheduleClassifyClosedDay(t *testing.T) {
	schedule := Schedule{time.Monday: {Open: 9, Close: 17}}
	// Tuesday is absent from the schedule: closed all day.
	assert.Equal(t, BeforeOpening, schedule.Classify(time.Date(2025, 11, 25, 12, 0, 0, 0, time.UTC)))
}

func TestLoadSchedule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hours.yaml")
	content := `monday:
  open: 9
  close: 17
saturday:
  open: 10
  close: 14
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	schedule, err := LoadSchedule(path)
	require.NoError(t, err)

	assert.Equal(t, DayHours{Open: 9, Close: 17}, schedule[time.Monday])
	assert.Equal(t, DayHours{Open: 10, Close: 14}, schedule[time.Saturday])
	_, hasSunday := schedule[time.Sunday]
	assert.False(t, hasSunday)
}

func TestLoadScheduleRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	unknownDay := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknownDay, []byte("funday:\n  open: 9\n  close: 17\n"), 0600))
	_, err := LoadSchedule(unknownDay)
	assert.Error(t, err)

	inverted := filepath.Join(dir, "inverted.yaml")
	require.NoError(t, os.WriteFile(inverted, []byte("monday:\n  open: 17\n  close: 9\n"), 0600))
	_, err = LoadSchedule(inverted)
	assert.Error(t, err)

	_, err = LoadSchedule(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestAnalyzeOutOfHours(t *testing.T) {
	schedule := DefaultSchedule()

	// 2025-11-24 Monday, 2025-11-30 Sunday.
	calls := []models.Call{
		{CallID: "C1", CallStart: models.NewTimestamp(time.Date(2025, 11, 24, 7, 0, 0, 0, time.UTC)), Week: 1},
		{CallID: "C2", CallStart: models.NewTimestamp(time.Date(2025, 11, 24, 12, 0, 0, 0, time.UTC)), Week: 1},
		{CallID: "C3", CallStart: models.NewTimestamp(time.Date(2025, 11, 24, 21, 0, 0, 0, time.UTC)), Week: 2},
		// Week 3 is excluded even though it is out of hours.
		{CallID: "C4", CallStart: models.NewTimestamp(time.Date(2025, 11, 10, 3, 0, 0, 0, time.UTC)), Week: 3},
	}
	abd := []models.AbandonedCall{
		{CallerID: "A1", CallTime: models.NewTimestamp(time.Date(2025, 11, 30, 9, 0, 0, 0, time.UTC)), Week: 1},
		{CallerID: "A2", CallTime: models.NewTimestamp(time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC)), Week: 1},
	}

	stats := AnalyzeOutOfHours(calls, abd, schedule)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.BeforeOpening)
	assert.Equal(t, 1, stats.AfterClosing)
}
