package composer

import (
	"time"

	"github.com/platinummonkey/scanproof/internal/issue"
	"github.com/platinummonkey/scanproof/internal/review"
)

// AnalysisResult carries everything the analysis phase produced: the
// extracted text, the merged issue list, and the review session the caller
// drives to completion before finalizing.
type AnalysisResult struct {
	// RunID uniquely identifies this analysis run
	RunID string

	// ImagePath is the source image
	ImagePath string

	// ImageWidth and ImageHeight are the source image dimensions in pixels
	ImageWidth  int
	ImageHeight int

	// ExtractedText is the text the vision model read from the image
	ExtractedText string

	// ModelIssues are the normalized issues reported by the vision model
	ModelIssues []issue.Issue

	// DictionaryIssues are the issues found by the dictionary validator
	DictionaryIssues []issue.Issue

	// Merged is the deduplicated, ordered issue list under review
	Merged []issue.Issue

	// Session is the review session over the merged list
	Session *review.Session
}

// RunResult summarizes a finalized review run
type RunResult struct {
	// RunID matches the analysis run
	RunID string

	// ImagePath is the source image
	ImagePath string

	// ReportPath is the generated PDF report
	ReportPath string

	// IssueCount is the size of the merged issue list
	IssueCount int

	// AcceptedCount is how many corrections the reviewer accepted
	AcceptedCount int

	// AnnotationsAttached is how many comment annotations made it into the PDF
	AnnotationsAttached int

	// AnnotationsFailed is how many comment annotations could not be attached
	AnnotationsFailed int

	// Duration is the wall-clock time of the finalize phase
	Duration time.Duration

	// Warnings are non-fatal problems encountered along the way
	Warnings []string
}

// AddWarning records a non-fatal problem
func (r *RunResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
