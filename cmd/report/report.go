// Package report generates the weekly call report: validated metrics, the
// plain-text narrative, and the historical snapshot row.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"southside/call-report/cmd/root"
	"southside/call-report/internal/reconciler"
	"southside/call-report/internal/report"
	"southside/call-report/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the weekly call report",
	Long: `Report runs the full analysis, validates that every figure adds up,
applies verified historical figures for the older week when the snapshot
store has them, saves this week's snapshot, and writes the narrative and the
verification summary to the report directory.`,
	Run: reportFunc,
}

func reportFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	schedule, err := root.Schedule()
	if err != nil {
		root.Log.Fatalf("Error loading operating-hours schedule: %v", err)
	}

	analysis, err := report.Analyze(report.Options{
		DataDir:          root.Cfg.Data.Directory,
		CallLogPattern:   root.Cfg.Data.CallLogPattern,
		AbandonedPattern: root.Cfg.Data.AbandonedPattern,
		Schedule:         schedule,
	}, logger)
	if err != nil {
		if errors.Is(err, reconciler.ErrNoData) {
			root.Log.Fatal("No usable call data found; report generation aborted")
		}
		root.Log.Fatalf("Analysis failed: %v", err)
	}

	reportDir := root.Cfg.Data.ReportDirectory
	snapshots := store.NewStore(filepath.Join(root.Cfg.Data.Directory, root.Cfg.Snapshot.File), logger)

	// Validate against this run's raw data before any historical override.
	validationErrs := report.Validate(analysis)

	lw := analysis.Summary.LastWeek
	snap, found, err := snapshots.Find(lw.Start, lw.End)
	if err != nil {
		root.Log.Fatalf("Error reading snapshot store: %v", err)
	}
	if found {
		validationErrs = append(validationErrs, report.ValidateSnapshot(snap)...)
	}

	if err := writeFile(filepath.Join(reportDir, "report_verification_summary.md"),
		report.ValidationSummary(validationErrs)); err != nil {
		root.Log.Fatalf("Error writing verification summary: %v", err)
	}
	if len(validationErrs) > 0 {
		for _, e := range validationErrs {
			root.Log.Error(e)
		}
		root.Log.Fatal("Metric validation failed; report generation aborted")
	}

	if found {
		report.ApplyHistorical(analysis, snap, logger)
	} else {
		root.Log.Infof("No stored snapshot for last week (%s to %s); using computed values",
			lw.Start.Format("2006-01-02"), lw.End.Format("2006-01-02"))
	}

	if err := snapshots.Save(store.SnapshotFromSummary(analysis.Summary, time.Now())); err != nil {
		root.Log.Fatalf("Error saving weekly snapshot: %v", err)
	}

	narrative := report.Narrative(analysis, schedule)
	narrativePath := filepath.Join(reportDir,
		fmt.Sprintf("call_report_%s.txt", analysis.MaxDate.Format("02_01_2006")))
	if err := writeFile(narrativePath, narrative); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}

	root.Log.Infof("Report generated successfully: %s", narrativePath)
	root.Log.Infof("This week: %d calls, last week: %d calls, total: %d",
		analysis.Summary.ThisWeek.TotalCalls(), analysis.Summary.LastWeek.TotalCalls(),
		analysis.Summary.TotalCalls())
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating report directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0600)
}
