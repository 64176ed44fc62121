package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/scanproof/internal/composer"
	"github.com/platinummonkey/scanproof/internal/issue"
)

var (
	flagAcceptAll bool
	flagRejectAll bool
)

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review <image>",
	Short: "Analyze an image and review the detected issues",
	Long: `Analyze a scanned document image, then step through every detected
issue and accept or reject its suggested correction. Accepted corrections
become interactive comment annotations in the generated PDF report.

The report is written as <image-basename>_OCR_Interactive_Report.pdf, next
to the image unless --output is set. A report is generated even when no
issues are found or accepted.

Examples:
  # Review a scan against the local Ollama instance
  scanproof review ~/scans/receipt.png

  # Use a dictionary wordlist and a custom output directory
  scanproof review receipt.png --wordlist /usr/share/dict/words --output ~/reports

  # Accept every suggestion without prompting
  scanproof review receipt.png --accept-all`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().BoolVar(&flagAcceptAll, "accept-all", false, "accept every suggestion without prompting")
	reviewCmd.Flags().BoolVar(&flagRejectAll, "reject-all", false, "reject every suggestion without prompting")
}

func runReview(cmd *cobra.Command, args []string) error {
	if flagAcceptAll && flagRejectAll {
		return fmt.Errorf("--accept-all and --reject-all are mutually exclusive")
	}

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

	fmt.Printf("Extracted %d characters of text, %d issue(s) to review.\n\n",
		len(analysis.ExtractedText), len(analysis.Merged))

	if err := driveSession(analysis, os.Stdin); err != nil {
		return err
	}

	result, err := comp.Finalize(analysis)
	if err != nil {
		return err
	}

	fmt.Printf("\nAccepted %d of %d correction(s).\n", result.AcceptedCount, result.IssueCount)
	fmt.Printf("Report: %s\n", result.ReportPath)
	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
	return nil
}

// driveSession walks the review session to completion, prompting on stdin
// unless a bulk flag was given
func driveSession(analysis *composer.AnalysisResult, in io.Reader) error {
	session := analysis.Session
	reader := bufio.NewReader(in)

	for {
		cur, ok := session.Current()
		if !ok {
			return nil
		}

		if flagAcceptAll {
			if err := session.Accept(); err != nil {
				return err
			}
			continue
		}
		if flagRejectAll {
			if err := session.Reject(); err != nil {
				return err
			}
			continue
		}

		printIssue(cur, session.Cursor()+1, session.Len())

		for {
			fmt.Print("Accept this correction? [y]es / [n]o / [q]uit: ")
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("review aborted: %w", err)
			}

			switch strings.ToLower(strings.TrimSpace(line)) {
			case "y", "yes", "a", "accept":
				if err := session.Accept(); err != nil {
					return err
				}
			case "n", "no", "r", "reject":
				if err := session.Reject(); err != nil {
					return err
				}
			case "q", "quit":
				return fmt.Errorf("review aborted by user")
			default:
				continue
			}
			break
		}
	}
}

// printIssue renders one issue to the review prompt
func printIssue(iss issue.Issue, num, total int) {
	fmt.Printf("[%d/%d] %s issue (%s)\n", num, total, iss.Kind, iss.Source)
	fmt.Printf("  original:  %s\n", iss.Original)
	fmt.Printf("  suggested: %s\n", iss.Suggested)
	if iss.Description != "" {
		fmt.Printf("  note:      %s\n", iss.Description)
	}
	if iss.HasPosition() {
		fmt.Printf("  word:      #%d\n", iss.Position+1)
	}
}
