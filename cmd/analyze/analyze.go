// Package analyze runs the cleaning pipeline and exports the cleaned
// datasets without generating a report.
package analyze

import (
	"errors"
	"path/filepath"

	"southside/call-report/cmd/root"
	"southside/call-report/internal/common"
	"southside/call-report/internal/reconciler"
	"southside/call-report/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Clean and reconcile raw exports, then export the cleaned datasets",
	Long: `Analyze reads every call-log and abandoned-calls export in the data
directory, cleans and reconciles them, resolves abandoned customer types by
trade-number matching, and writes the cleaned datasets to the report
directory for audit.`,
	Run: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) {
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
			root.Log.Fatal("No usable call data found; nothing to analyze")
		}
		root.Log.Fatalf("Analysis failed: %v", err)
	}

	reportDir := root.Cfg.Data.ReportDirectory
	if err := common.WriteCSVFile(analysis.AllCalls, filepath.Join(reportDir, "call_logs_cleaned.csv")); err != nil {
		root.Log.Fatalf("Error exporting cleaned call logs: %v", err)
	}
	if len(analysis.AllAbandoned) > 0 {
		if err := common.WriteCSVFile(analysis.AllAbandoned, filepath.Join(reportDir, "abandoned_logs_cleaned.csv")); err != nil {
			root.Log.Fatalf("Error exporting cleaned abandoned logs: %v", err)
		}
	} else {
		root.Log.Info("No abandoned call records found; skipping abandoned export")
	}

	root.Log.Infof("Analysis complete: %d calls (%d in reporting weeks), %d abandoned records, max date %s",
		len(analysis.AllCalls), len(analysis.Calls), len(analysis.AllAbandoned),
		analysis.MaxDate.Format("2006-01-02 15:04:05"))
	if analysis.SkippedFiles() > 0 {
		root.Log.Warnf("%d input file(s) were skipped; figures may undercount", analysis.SkippedFiles())
	}
}
