// Package root contains the root command for the application
package root

import (
	"os"

	"southside/call-report/internal/common"
	"southside/call-report/internal/config"
	"southside/call-report/internal/logging"
	"southside/call-report/internal/metrics"
	"southside/call-report/internal/phoneutils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the resolved application configuration, populated before any
	// subcommand runs.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "call-report",
		Short: "A CLI tool to clean call-center exports and build weekly call reports.",
		Long: `call-report cleans raw call-center CSV exports, reconciles overlapping
weekly files, classifies callers as retail or trade, and produces the weekly
metric summary and narrative.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to call-report!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Invalid configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			if DataDir != "" {
				Cfg.Data.Directory = DataDir
			}
			if ReportDir != "" {
				Cfg.Data.ReportDirectory = ReportDir
			}

			common.SetLogger(Log)
			phoneutils.SetCountryCode(Cfg.Phone.CountryCode)

			// Ensure CSV delimiter is updated after env variables are loaded
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// DataDir and ReportDir override the configured directories when set.
	DataDir   string
	ReportDir string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&DataDir, "data-dir", "d", "", "Directory containing raw CSV exports")
	Cmd.PersistentFlags().StringVarP(&ReportDir, "report-dir", "o", "", "Directory for generated outputs")
}

// GetLogrusAdapter wraps the shared logger in the logging.Logger interface
// used by the internal packages.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// Schedule resolves the operating-hours schedule: the configured YAML file
// when set, the built-in default otherwise.
func Schedule() (metrics.Schedule, error) {
	if Cfg == nil || Cfg.Hours.ScheduleFile == "" {
		return metrics.DefaultSchedule(), nil
	}
	return metrics.LoadSchedule(Cfg.Hours.ScheduleFile)
}
