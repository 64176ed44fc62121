package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/scanproof/internal/review"
)

var (
	flagHistoryJSON  bool
	flagHistoryLimit int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed review runs",
	Long: `List completed review runs from the history file, most recent first.

Examples:
  # Show the last 10 runs
  scanproof history

  # Show every recorded run as JSON
  scanproof history --limit 0 --json`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&flagHistoryJSON, "json", false, "emit JSON instead of text")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "maximum runs to show (0 = all)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := review.LoadOrCreate(cfg.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to load review history: %w", err)
	}

	records := store.Records()
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}

	if flagHistoryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No completed reviews recorded.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %s\n", rec.CompletedAt.Local().Format("2006-01-02 15:04"), rec.ImagePath)
		fmt.Printf("    accepted %d of %d issue(s), report: %s\n", rec.AcceptedCount, rec.IssueCount, rec.ReportPath)
	}
	return nil
}
