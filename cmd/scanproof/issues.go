package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/scanproof/internal/issue"
)

var flagIssuesJSON bool

// issuesCmd represents the issues command
var issuesCmd = &cobra.Command{
	Use:   "issues <image>",
	Short: "Analyze an image and list the detected issues without reviewing",
	Long: `Run the analysis phase only: extract text from the image, spell-check
it, and print the merged issue list. No review session is started and no
report is generated.

Examples:
  # List issues as text
  scanproof issues ~/scans/receipt.png

  # Emit machine-readable JSON
  scanproof issues receipt.png --json`,
	Args: cobra.ExactArgs(1),
	RunE: runIssues,
}

func init() {
	rootCmd.AddCommand(issuesCmd)

	issuesCmd.Flags().BoolVar(&flagIssuesJSON, "json", false, "emit JSON instead of text")
}

func runIssues(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	comp, err := buildComposer(ctx, cfg, log)
	if err != nil {
		return err
	}

	analysis, err := comp.Analyze(ctx, args[0])
	if err != nil {
		return err
	}

	if flagIssuesJSON {
		return printIssuesJSON(analysis.ExtractedText, analysis.Merged)
	}

	fmt.Printf("Extracted text (%d characters):\n%s\n\n", len(analysis.ExtractedText), analysis.ExtractedText)
	if len(analysis.Merged) == 0 {
		fmt.Println("No issues detected.")
		return nil
	}

	fmt.Printf("%d issue(s) detected:\n", len(analysis.Merged))
	for i, iss := range analysis.Merged {
		fmt.Printf("  %d. %s\n", i+1, iss.Summary())
	}
	return nil
}

func printIssuesJSON(extractedText string, issues []issue.Issue) error {
	out := struct {
		ExtractedText string        `json:"extracted_text"`
		Issues        []issue.Issue `json:"issues"`
	}{
		ExtractedText: extractedText,
		Issues:        issues,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
