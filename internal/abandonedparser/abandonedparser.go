// Package abandonedparser parses abandoned-call CSV exports. These records
// come from a separate export stream with no call identifier shared with the
// main log, so deduplication keys on the (caller id, call time) pair and
// customer type is filled in later by phone-number matching.
package abandonedparser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"southside/call-report/internal/common"
	"southside/call-report/internal/dateutils"
	"southside/call-report/internal/logging"
	"southside/call-report/internal/models"
)

// AbandonedCSVRow represents a single row in an abandoned-calls CSV export.
type AbandonedCSVRow struct {
	CallerID        string `csv:"Caller ID"`
	CallTime        string `csv:"Call Time"`
	WaitingTime     string `csv:"Waiting Time"`
	AgentState      string `csv:"Agent State"`
	PollingAttempts int    `csv:"Polling Attempts"`
	Queue           string `csv:"Queue"`
}

// ParseFile parses one abandoned-calls CSV file.
func ParseFile(filePath string) ([]models.AbandonedCall, error) {
	return ParseFileWithLogger(filePath, nil)
}

// ParseFileWithLogger parses one abandoned-calls CSV file with a custom
// logger. Rows whose call time fails to parse are dropped.
func ParseFileWithLogger(filePath string, logger logging.Logger) ([]models.AbandonedCall, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.WithField(logging.FieldFile, filePath).Info("Parsing abandoned calls CSV file")

	rows, err := common.ReadCSVFile[AbandonedCSVRow](filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to read abandoned calls CSV file")
		return nil, fmt.Errorf("error reading abandoned calls CSV: %w", err)
	}

	var records []models.AbandonedCall
	for _, row := range rows {
		callTime, err := dateutils.ParseCallTime(row.CallTime)
		if err != nil {
			logger.Debug("Dropping abandoned row with unparsable call time",
				logging.Field{Key: "call_time", Value: row.CallTime})
			continue
		}

		records = append(records, models.AbandonedCall{
			CallerID:        cleanCallerID(row.CallerID),
			CallTime:        models.NewTimestamp(callTime),
			WaitingTime:     row.WaitingTime,
			AgentState:      row.AgentState,
			PollingAttempts: row.PollingAttempts,
			Queue:           row.Queue,
		})
	}

	logger.Info("Successfully parsed abandoned calls CSV file",
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return records, nil
}

// LoadDir loads every abandoned-calls export matching pattern in dir,
// deduplicates across files by (caller id, call time) with the first
// occurrence winning, and returns the records sorted for deterministic
// output. Files are processed in lexicographic order; unreadable files are
// skipped and counted, not fatal.
func LoadDir(dir, pattern string, logger logging.Logger) ([]models.AbandonedCall, int, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing abandoned call exports: %w", err)
	}
	sort.Strings(paths)

	var combined []models.AbandonedCall
	skipped := 0
	for _, path := range paths {
		records, err := ParseFileWithLogger(path, logger)
		if err != nil {
			logger.WithError(err).Warn("Skipping unreadable abandoned calls file",
				logging.Field{Key: logging.FieldFile, Value: path})
			skipped++
			continue
		}
		combined = append(combined, records...)
	}

	before := len(combined)
	combined = Deduplicate(combined)
	logger.Info("Deduplicated abandoned call records",
		logging.Field{Key: "before", Value: before},
		logging.Field{Key: "after", Value: len(combined)},
		logging.Field{Key: logging.FieldSkipped, Value: skipped})

	sort.SliceStable(combined, func(i, j int) bool {
		if !combined[i].CallTime.Equal(combined[j].CallTime.Time) {
			return combined[i].CallTime.Before(combined[j].CallTime.Time)
		}
		return combined[i].CallerID < combined[j].CallerID
	})

	return combined, skipped, nil
}

// Deduplicate removes repeated (caller id, call time) pairs, keeping the
// first occurrence. The same abandonment can appear in more than one export
// due to operational re-exports.
func Deduplicate(records []models.AbandonedCall) []models.AbandonedCall {
	type key struct {
		caller string
		time   int64
	}
	seen := make(map[key]bool, len(records))
	out := records[:0:0]
	for _, r := range records {
		k := key{caller: r.CallerID, time: r.CallTime.UnixNano()}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// cleanCallerID strips the trailing-".0" float-as-string artifact that
// numeric CSV round-tripping leaves on caller ids.
func cleanCallerID(callerID string) string {
	callerID = strings.TrimSpace(callerID)
	return strings.TrimSuffix(callerID, ".0")
}

// Exists reports whether dir contains at least one export matching pattern.
func Exists(dir, pattern string) bool {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return false
	}
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
