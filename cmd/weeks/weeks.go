// Package weeks lists the stored weekly snapshot rows.
package weeks

import (
	"fmt"
	"path/filepath"

	"southside/call-report/cmd/root"
	"southside/call-report/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the weeks command
var Cmd = &cobra.Command{
	Use:   "weeks",
	Short: "List stored weekly snapshots",
	Long:  `Weeks prints every week stored in the snapshot CSV, oldest first.`,
	Run:   weeksFunc,
}

func weeksFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	snapshots := store.NewStore(filepath.Join(root.Cfg.Data.Directory, root.Cfg.Snapshot.File), logger)

	rows, err := snapshots.Load()
	if err != nil {
		root.Log.Fatalf("Error reading snapshot store: %v", err)
	}
	if len(rows) == 0 {
		fmt.Println("No weekly snapshots stored yet.")
		return
	}

	fmt.Printf("%-12s %-12s %8s %8s %8s %10s  %s\n",
		"week_start", "week_end", "total", "retail", "trade", "abandoned", "generated")
	for _, r := range rows {
		fmt.Printf("%-12s %-12s %8d %8d %8d %10d  %s\n",
			r.WeekStart, r.WeekEnd, r.TotalCalls, r.RetailCalls, r.TradeCalls,
			r.AbandonedTotal, r.GeneratedAt)
	}
}
