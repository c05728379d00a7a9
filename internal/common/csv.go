// Package common provides shared CSV functionality used by the parsers and
// exporters.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"southside/call-report/internal/logging"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Delimiter is the global CSV delimiter, configurable via environment.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter used for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns; unmapped columns
// in the file are ignored.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField(logging.FieldFile, filePath).Info("Reading CSV file")

	file, err := os.Open(filePath) // #nosec G304 -- paths come from operator configuration
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField(logging.FieldCount, len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// WriteCSVFile writes a slice of structs to a CSV file using gocsv,
// creating the parent directory if needed. All exporters use this function
// so output formatting stays consistent.
func WriteCSVFile[TCSVRow any](rows []TCSVRow, csvFile string) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}

	log.WithFields(logrus.Fields{
		logging.FieldFile:  csvFile,
		logging.FieldCount: len(rows),
	}).Info("Writing CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- paths come from operator configuration
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(logrus.Fields{
		logging.FieldFile:  csvFile,
		logging.FieldCount: len(rows),
	}).Info("Successfully wrote CSV file")

	return nil
}
