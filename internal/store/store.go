// Package store persists per-week reporting snapshots to a small CSV file so
// that later runs can reuse verified figures instead of recomputing them
// from partially-overlapping raw exports.
package store

import (
	"fmt"
	"os"
	"sort"
	"time"

	"southside/call-report/internal/common"
	"southside/call-report/internal/dateutils"
	"southside/call-report/internal/logging"
	"southside/call-report/internal/metrics"
)

// WeekSnapshot is one stored reporting week. Dates are ISO (YYYY-MM-DD) so
// the file sorts and diffs cleanly.
type WeekSnapshot struct {
	WeekStart       string `csv:"week_start"`
	WeekEnd         string `csv:"week_end"`
	TotalCalls      int    `csv:"total_calls"`
	RetailCalls     int    `csv:"retail_calls"`
	TradeCalls      int    `csv:"trade_calls"`
	AbandonedTotal  int    `csv:"abandoned_total"`
	RetailAbandoned int    `csv:"retail_abandoned"`
	TradeAbandoned  int    `csv:"trade_abandoned"`
	GeneratedAt     string `csv:"report_generated_date"`
}

// Store reads and writes week snapshots at a fixed file path.
type Store struct {
	path   string
	logger logging.Logger
}

// NewStore creates a snapshot store backed by the given CSV file. The file
// is created on first save.
func NewStore(path string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Store{path: path, logger: logger}
}

// Load returns all stored snapshots. A missing file is an empty store, not
// an error.
func (s *Store) Load() ([]WeekSnapshot, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil
	}
	snapshots, err := common.ReadCSVFile[WeekSnapshot](s.path)
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot store: %w", err)
	}
	return snapshots, nil
}

// Find returns the stored snapshot for the given week range, if present.
func (s *Store) Find(start, end time.Time) (*WeekSnapshot, bool, error) {
	snapshots, err := s.Load()
	if err != nil {
		return nil, false, err
	}
	startISO := dateutils.ToISODate(start)
	endISO := dateutils.ToISODate(end)
	// Last match wins, matching the overwrite behaviour of Save.
	for i := len(snapshots) - 1; i >= 0; i-- {
		if snapshots[i].WeekStart == startISO && snapshots[i].WeekEnd == endISO {
			return &snapshots[i], true, nil
		}
	}
	return nil, false, nil
}

// Save writes or replaces the snapshot for its week range. Reruns over the
// same data therefore converge on one row per week instead of accumulating
// duplicates.
func (s *Store) Save(snapshot WeekSnapshot) error {
	snapshots, err := s.Load()
	if err != nil {
		return err
	}

	kept := snapshots[:0:0]
	for _, existing := range snapshots {
		if existing.WeekStart == snapshot.WeekStart && existing.WeekEnd == snapshot.WeekEnd {
			continue
		}
		kept = append(kept, existing)
	}
	kept = append(kept, snapshot)

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].WeekStart < kept[j].WeekStart })

	if err := common.WriteCSVFile(kept, s.path); err != nil {
		return fmt.Errorf("error writing snapshot store: %w", err)
	}

	s.logger.Info("Saved weekly snapshot",
		logging.Field{Key: logging.FieldFile, Value: s.path},
		logging.Field{Key: "week_start", Value: snapshot.WeekStart},
		logging.Field{Key: "week_end", Value: snapshot.WeekEnd})
	return nil
}

// SnapshotFromSummary builds the stored row for the summary's most recent
// week. Only the latest week is persisted per run; the older week is served
// from the snapshot saved by the previous run.
func SnapshotFromSummary(summary *metrics.Summary, generatedAt time.Time) WeekSnapshot {
	w := summary.ThisWeek
	return WeekSnapshot{
		WeekStart:       dateutils.ToISODate(w.Start),
		WeekEnd:         dateutils.ToISODate(w.End),
		TotalCalls:      w.TotalCalls(),
		RetailCalls:     w.RetailCalls,
		TradeCalls:      w.TradeCalls,
		AbandonedTotal:  w.AbandonedCalls(),
		RetailAbandoned: w.RetailAbandoned,
		TradeAbandoned:  w.TradeAbandoned,
		GeneratedAt:     generatedAt.Format(dateutils.LayoutTimestamp),
	}
}
