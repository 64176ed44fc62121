// Package composer orchestrates a full proofreading run: vision analysis,
// dictionary validation, issue merging, the review session, and the final
// annotated report.
package composer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"

	"github.com/platinummonkey/scanproof/internal/issue"
	"github.com/platinummonkey/scanproof/internal/layout"
	"github.com/platinummonkey/scanproof/internal/logger"
	"github.com/platinummonkey/scanproof/internal/report"
	"github.com/platinummonkey/scanproof/internal/review"
	"github.com/platinummonkey/scanproof/internal/spellcheck"
	"github.com/platinummonkey/scanproof/internal/vision"
)

// Composer runs the proofreading pipeline end to end
type Composer struct {
	vision    vision.Client
	model     string
	validator *spellcheck.Validator
	generator *report.Generator
	store     *review.Store
	outputDir string
	logger    *logger.Logger
}

// Config holds configuration for the composer
type Config struct {
	// Vision is the LLM client used for text extraction, required
	Vision vision.Client

	// Model is the vision model name
	Model string

	// Validator spell-checks the extracted text; nil disables the
	// dictionary pass
	Validator *spellcheck.Validator

	// Generator builds the report PDF; nil gets a default A4 generator
	Generator *report.Generator

	// Store records completed runs; nil disables history
	Store *review.Store

	// OutputDir is where reports land; empty means next to the image
	OutputDir string

	Logger *logger.Logger
}

// New creates a new composer instance
func New(cfg *Config) (*Composer, error) {
	if cfg.Vision == nil {
		return nil, fmt.Errorf("vision client is required")
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}

	generator := cfg.Generator
	if generator == nil {
		generator = report.New(&report.Config{Logger: log})
	}

	return &Composer{
		vision:    cfg.Vision,
		model:     cfg.Model,
		validator: cfg.Validator,
		generator: generator,
		store:     cfg.Store,
		outputDir: cfg.OutputDir,
		logger:    log,
	}, nil
}

// Analyze runs the analysis phase: vision extraction, dictionary validation,
// and the merge. The returned result holds a fresh review session; the caller
// drives it to completion and then calls Finalize.
func (c *Composer) Analyze(ctx context.Context, imagePath string) (*AnalysisResult, error) {
	runID := uuid.NewString()
	log := c.logger.WithRun(runID).WithImage(imagePath)
	log.Info("Analyzing image")

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image dimensions: %w", err)
	}

	analysis, err := c.vision.Analyze(ctx, c.model, vision.EncodeImageBytes(imageData))
	if err != nil {
		return nil, fmt.Errorf("vision analysis failed: %w", err)
	}

	modelIssues := issue.NormalizeAll(analysis.Issues, issue.SourceModel, c.logger)

	var dictIssues []issue.Issue
	if c.validator != nil {
		dictIssues = c.validator.Validate(analysis.ExtractedText)
	}

	merged := issue.Merge(modelIssues, dictIssues)

	log.WithFields(
		"model_issues", len(modelIssues),
		"dictionary_issues", len(dictIssues),
		"merged", len(merged),
		"text_length", len(analysis.ExtractedText),
	).Info("Analysis complete")

	return &AnalysisResult{
		RunID:            runID,
		ImagePath:        imagePath,
		ImageWidth:       imgCfg.Width,
		ImageHeight:      imgCfg.Height,
		ExtractedText:    analysis.ExtractedText,
		ModelIssues:      modelIssues,
		DictionaryIssues: dictIssues,
		Merged:           merged,
		Session:          review.NewSession(merged),
	}, nil
}

// Finalize generates the annotated report from the accepted corrections and
// records the run in history. A report is generated even when nothing was
// accepted, so a clean scan still yields an artifact.
func (c *Composer) Finalize(analysis *AnalysisResult) (*RunResult, error) {
	if analysis == nil {
		return nil, fmt.Errorf("analysis result is required")
	}
	if !analysis.Session.Complete() {
		return nil, fmt.Errorf("review session has %d issues left", analysis.Session.Remaining())
	}

	startTime := time.Now()
	log := c.logger.WithRun(analysis.RunID).WithImage(analysis.ImagePath)

	accepted := analysis.Session.Accepted()
	log.WithFields("accepted", len(accepted), "total", analysis.Session.Len()).Info("Finalizing review")

	imageData, err := os.ReadFile(analysis.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	pageW := c.generator.PageWidth()
	pageH := c.generator.PageHeight()
	imageRect := layout.ComputeImageLayout(
		float64(analysis.ImageWidth), float64(analysis.ImageHeight), pageW, pageH)

	annotations := make([]report.Annotation, len(accepted))
	for i, iss := range accepted {
		annotations[i] = report.Annotation{
			Issue:     iss,
			Placement: layout.ComputePlacement(imageRect, i, pageW, pageH),
		}
	}

	reportPath := report.Path(analysis.ImagePath, c.outputDir)
	genResult, err := c.generator.Generate(reportPath, imageData, imageRect, annotations)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		RunID:               analysis.RunID,
		ImagePath:           analysis.ImagePath,
		ReportPath:          genResult.OutputPath,
		IssueCount:          len(analysis.Merged),
		AcceptedCount:       len(accepted),
		AnnotationsAttached: genResult.Attached,
		AnnotationsFailed:   genResult.Failed,
		Duration:            time.Since(startTime),
	}
	if genResult.Failed > 0 {
		result.AddWarning(fmt.Sprintf("%d comment annotations could not be attached", genResult.Failed))
	}

	if c.store != nil {
		c.store.Append(review.Record{
			RunID:         result.RunID,
			ImagePath:     result.ImagePath,
			ReportPath:    result.ReportPath,
			IssueCount:    result.IssueCount,
			AcceptedCount: result.AcceptedCount,
			CompletedAt:   time.Now().UTC(),
		})
		if err := c.store.Save(); err != nil {
			log.WithError(err).Warn("Failed to save review history")
			result.AddWarning(fmt.Sprintf("history not saved: %v", err))
		}
	}

	log.WithFields("report", result.ReportPath, "duration", result.Duration.String()).Info("Review finalized")
	return result, nil
}

// HealthCheck verifies the vision provider is reachable and the model is
// available
func (c *Composer) HealthCheck(ctx context.Context) error {
	return c.vision.HealthCheck(ctx, c.model)
}
