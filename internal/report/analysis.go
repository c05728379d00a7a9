// Package report runs the full weekly analysis and turns it into the
// operator-facing outputs: the metric summary, the plain-text narrative, the
// validation summary and the historical-consistency override.
package report

import (
	"fmt"
	"time"

	"southside/call-report/internal/abandonedparser"
	"southside/call-report/internal/logging"
	"southside/call-report/internal/metrics"
	"southside/call-report/internal/models"
	"southside/call-report/internal/phoneutils"
	"southside/call-report/internal/reconciler"
)

// Options configures one analysis run.
type Options struct {
	DataDir          string
	CallLogPattern   string
	AbandonedPattern string
	Schedule         metrics.Schedule
}

// Analysis is the complete result of one run. Calls and Abandoned hold the
// reporting weeks only; the All slices keep every week for audit exports.
type Analysis struct {
	Calls        []models.Call
	AllCalls     []models.Call
	Abandoned    []models.AbandonedCall
	AllAbandoned []models.AbandonedCall

	Summary    *metrics.Summary
	OutOfHours metrics.OutOfHoursStats
	Journey    metrics.JourneyStats

	MaxDate time.Time

	SkippedCallFiles      int
	SkippedAbandonedFiles int
}

// SkippedFiles is the total number of input files dropped during the run.
// Non-zero means the figures may undercount.
func (a *Analysis) SkippedFiles() int {
	return a.SkippedCallFiles + a.SkippedAbandonedFiles
}

// Analyze runs the whole pipeline: reconcile the main log exports, load and
// deduplicate the abandoned exports, resolve abandoned customer types by
// trade-number matching, align both streams on the main log's max date, and
// derive all reporting figures.
func Analyze(opts Options, logger logging.Logger) (*Analysis, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.Schedule == nil {
		opts.Schedule = metrics.DefaultSchedule()
	}

	result, err := reconciler.ReconcileDir(opts.DataDir, opts.CallLogPattern, logger)
	if err != nil {
		return nil, fmt.Errorf("error reconciling call logs: %w", err)
	}

	abandoned, skippedAbd, err := abandonedparser.LoadDir(opts.DataDir, opts.AbandonedPattern, logger)
	if err != nil {
		return nil, fmt.Errorf("error loading abandoned calls: %w", err)
	}

	tradeNumbers := phoneutils.BuildTradeNumberSet(result.Calls)
	phoneutils.ClassifyAbandoned(abandoned, tradeNumbers)
	reconciler.AssignAbandonedWeeks(abandoned, result.MaxDate)

	logger.Info("Classified abandoned calls against trade numbers",
		logging.Field{Key: logging.FieldCount, Value: len(abandoned)},
		logging.Field{Key: "trade_numbers", Value: len(tradeNumbers)})

	analysis := &Analysis{
		Calls:                 metrics.FilterReportingWeeks(result.Calls),
		AllCalls:              result.Calls,
		Abandoned:             metrics.FilterAbandonedReportingWeeks(abandoned),
		AllAbandoned:          abandoned,
		MaxDate:               result.MaxDate,
		SkippedCallFiles:      result.SkippedFiles,
		SkippedAbandonedFiles: skippedAbd,
	}

	analysis.Summary = metrics.Compute(result.Calls, abandoned, result.MaxDate)
	analysis.OutOfHours = metrics.AnalyzeOutOfHours(result.Calls, abandoned, opts.Schedule)
	analysis.Journey = metrics.AnalyzeJourney(result.Calls, abandoned, opts.Schedule)

	if analysis.SkippedFiles() > 0 {
		logger.Warn("Some input files were skipped; figures may undercount",
			logging.Field{Key: logging.FieldSkipped, Value: analysis.SkippedFiles()})
	}

	return analysis, nil
}
