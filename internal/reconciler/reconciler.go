// Package reconciler merges call-level records from multiple overlapping
// weekly export files into one consistent collection.
package reconciler

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"southside/call-report/internal/aggregator"
	"southside/call-report/internal/calllogparser"
	"southside/call-report/internal/dateutils"
	"southside/call-report/internal/logging"
	"southside/call-report/internal/models"
)

// ErrNoData signals that no usable call data was found in any input file.
// Zero metrics are indistinguishable from a quiet week, so callers must
// treat this as a hard stop rather than report empty numbers.
var ErrNoData = errors.New("no usable call data in input files")

// Result is the reconciled output of one run.
type Result struct {
	Calls        []models.Call
	MaxDate      time.Time
	SkippedFiles int
}

// ReconcileDir loads every call-log export matching pattern in dir and
// reconciles them. See Reconcile for semantics.
func ReconcileDir(dir, pattern string, logger logging.Logger) (*Result, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("error listing call log exports: %w", err)
	}
	return Reconcile(paths, logger)
}

// Reconcile cleans and aggregates each export independently, concatenates
// the results in lexicographic file order, deduplicates by call ID with the
// first occurrence winning, and recomputes every week label against the
// single global max date. Per-file week labels produced by aggregation are
// a byproduct and never reach the output. Files that fail to parse are
// logged, counted and skipped; an entirely empty result yields ErrNoData.
func Reconcile(paths []string, logger logging.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	var combined []models.Call
	skipped := 0
	for _, path := range sorted {
		legs, err := calllogparser.ParseFileWithLogger(path, logger)
		if err != nil {
			logger.WithError(err).Warn("Skipping unreadable call log file",
				logging.Field{Key: logging.FieldFile, Value: path})
			skipped++
			continue
		}
		combined = append(combined, aggregator.Aggregate(legs)...)
	}

	combined = dedupeByCallID(combined)
	if len(combined) == 0 {
		return nil, ErrNoData
	}

	maxDate, _ := aggregator.MaxCallStart(combined)
	aggregator.AssignWeeks(combined, maxDate)

	sort.Slice(combined, func(i, j int) bool { return combined[i].CallID < combined[j].CallID })

	logger.Info("Reconciled call log exports",
		logging.Field{Key: logging.FieldCount, Value: len(combined)},
		logging.Field{Key: logging.FieldSkipped, Value: skipped},
		logging.Field{Key: logging.FieldMaxDate, Value: maxDate})

	return &Result{
		Calls:        combined,
		MaxDate:      maxDate,
		SkippedFiles: skipped,
	}, nil
}

// AssignAbandonedWeeks stamps abandoned records with week labels computed
// against the MAIN log's global max date, so both streams share one
// reference window.
func AssignAbandonedWeeks(records []models.AbandonedCall, maxDate time.Time) {
	for i := range records {
		records[i].Week = dateutils.AssignWeek(records[i].CallTime.Time, maxDate)
	}
}

// dedupeByCallID keeps the first occurrence of each call ID. Processing
// order is deterministic (lexicographic by file), so reruns agree.
func dedupeByCallID(calls []models.Call) []models.Call {
	seen := make(map[string]bool, len(calls))
	out := calls[:0:0]
	for _, c := range calls {
		if seen[c.CallID] {
			continue
		}
		seen[c.CallID] = true
		out = append(out, c)
	}
	return out
}
