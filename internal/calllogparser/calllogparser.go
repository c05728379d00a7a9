// Package calllogparser parses raw main call-log CSV exports into cleaned
// call legs: footer rows dropped, durations converted to seconds, each leg
// classified, and only inbound directions retained.
package calllogparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"southside/call-report/internal/classifier"
	"southside/call-report/internal/common"
	"southside/call-report/internal/dateutils"
	"southside/call-report/internal/logging"
	"southside/call-report/internal/models"

	"github.com/gocarina/gocsv"
)

// InboundDirections is the fixed, case-sensitive set of directions that
// count as inbound. Everything else (including "Outbound") is dropped.
var InboundDirections = map[string]bool{
	"Inbound":       true,
	"Inbound Queue": true,
}

// CallLogRow represents a single row in a raw call-log CSV export.
// Additional columns in the file are ignored.
type CallLogRow struct {
	CallID          string `csv:"Call ID"`
	CallTime        string `csv:"Call Time"`
	Direction       string `csv:"Direction"`
	Status          string `csv:"Status"`
	Ringing         string `csv:"Ringing"`
	Talking         string `csv:"Talking"`
	From            string `csv:"From"`
	To              string `csv:"To"`
	ActivityDetails string `csv:"Call Activity Details"`
}

// Parse reads a raw call-log CSV from an io.Reader and returns cleaned legs.
func Parse(r io.Reader, logger logging.Logger) ([]models.CallLeg, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.Info("Parsing call log CSV from reader")

	var rows []*CallLogRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		logger.WithError(err).Error("Failed to read call log CSV from reader")
		return nil, fmt.Errorf("error reading call log CSV: %w", err)
	}

	legs := cleanRows(rows, logger)

	logger.Info("Successfully parsed call log CSV",
		logging.Field{Key: logging.FieldCount, Value: len(legs)})
	return legs, nil
}

// ParseFile parses a raw call-log CSV file and returns cleaned legs.
// This is the main entry point for parsing call-log exports.
func ParseFile(filePath string) ([]models.CallLeg, error) {
	return ParseFileWithLogger(filePath, nil)
}

// ParseFileWithLogger parses a raw call-log CSV file with a custom logger.
func ParseFileWithLogger(filePath string, logger logging.Logger) ([]models.CallLeg, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.WithField(logging.FieldFile, filePath).Info("Parsing call log CSV file")

	valid, err := ValidateFormatWithLogger(filePath, logger)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("invalid call log CSV format: %s", filePath)
	}

	rows, err := common.ReadCSVFile[CallLogRow](filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to read call log CSV file")
		return nil, fmt.Errorf("error reading call log CSV: %w", err)
	}

	rowPtrs := make([]*CallLogRow, len(rows))
	for i := range rows {
		rowPtrs[i] = &rows[i]
	}
	legs := cleanRows(rowPtrs, logger)

	logger.Info("Successfully parsed call log CSV file",
		logging.Field{Key: logging.FieldCount, Value: len(legs)})
	return legs, nil
}

// cleanRows converts raw rows to cleaned legs: rows whose timestamp fails to
// parse are dropped (this removes "Totals" footers), durations become
// seconds, each leg is classified, and non-inbound directions are filtered
// out.
func cleanRows(rows []*CallLogRow, logger logging.Logger) []models.CallLeg {
	var legs []models.CallLeg
	dropped := 0

	for _, row := range rows {
		startTime, err := dateutils.ParseCallTime(row.CallTime)
		if err != nil {
			// Footer/summary rows and corrupted timestamps land here.
			dropped++
			continue
		}

		if !InboundDirections[row.Direction] {
			continue
		}

		legs = append(legs, models.CallLeg{
			CallID:         row.CallID,
			StartTime:      startTime,
			Direction:      row.Direction,
			Status:         row.Status,
			RingingSec:     dateutils.ParseClockDuration(row.Ringing),
			TalkingSec:     dateutils.ParseClockDuration(row.Talking),
			FromNumber:     row.From,
			ToNumber:       row.To,
			ActivityDetail: row.ActivityDetails,
			Classification: classifier.ClassifyActivity(row.ActivityDetails),
		})
	}

	if dropped > 0 {
		logger.Debug("Dropped rows with unparsable timestamps",
			logging.Field{Key: logging.FieldCount, Value: dropped})
	}
	return legs
}

// ValidateFormat checks if the file is a valid call-log CSV export.
func ValidateFormat(filePath string) (bool, error) {
	return ValidateFormatWithLogger(filePath, nil)
}

// ValidateFormatWithLogger checks if the file is a valid call-log CSV export
// by inspecting its header for the required columns.
func ValidateFormatWithLogger(filePath string, logger logging.Logger) (bool, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.Debug("Validating call log CSV format",
		logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath) // #nosec G304 -- paths come from operator configuration
	if err != nil {
		logger.WithError(err).Error("Failed to open file for validation")
		return false, fmt.Errorf("error opening file for validation: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		logger.WithError(err).Error("Failed to read CSV header")
		return false, fmt.Errorf("error reading CSV header: %w", err)
	}

	requiredColumns := []string{"Call ID", "Call Time", "Direction", "Ringing", "Talking"}
	columnMap := make(map[string]bool)
	for _, col := range header {
		columnMap[col] = true
	}

	for _, required := range requiredColumns {
		if !columnMap[required] {
			logger.Info("Required column not found",
				logging.Field{Key: "column", Value: required})
			return false, nil
		}
	}

	return true, nil
}
