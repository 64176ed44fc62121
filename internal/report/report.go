// Package report renders the annotated proofreading artifact: a PDF page
// embedding the reviewed image, with a visible marker and an interactive
// comment annotation for every accepted correction.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/color"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/signintech/gopdf"

	"github.com/platinummonkey/scanproof/internal/issue"
	"github.com/platinummonkey/scanproof/internal/layout"
	"github.com/platinummonkey/scanproof/internal/logger"
)

// ErrDocumentGeneration indicates the PDF artifact could not be produced
var ErrDocumentGeneration = errors.New("document generation failed")

// ReportSuffix is appended to the source image's base name to form the
// artifact filename
const ReportSuffix = "_OCR_Interactive_Report"

// A4 page dimensions in PDF points
const (
	PageWidthA4  = 595.28
	PageHeightA4 = 841.89
)

// Annotation pairs an accepted correction with its computed page placement
type Annotation struct {
	Issue     issue.Issue
	Placement layout.Placement
}

// Result summarizes one report generation
type Result struct {
	// OutputPath is the generated PDF
	OutputPath string

	// Attached is the number of comment annotations written
	Attached int

	// Failed is the number of annotations that could not be attached
	Failed int
}

// Generator builds annotated report PDFs
type Generator struct {
	logger     *logger.Logger
	pageWidth  float64
	pageHeight float64
}

// Config holds configuration for the report generator
type Config struct {
	Logger *logger.Logger

	// PageWidth and PageHeight are in PDF points, defaulting to A4
	PageWidth  float64
	PageHeight float64
}

// New creates a new report generator
func New(cfg *Config) *Generator {
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}

	pageWidth := cfg.PageWidth
	pageHeight := cfg.PageHeight
	if pageWidth <= 0 || pageHeight <= 0 {
		pageWidth = PageWidthA4
		pageHeight = PageHeightA4
	}

	return &Generator{
		logger:     log,
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
	}
}

// Path derives the report filename from the source image path. When
// outputDir is empty the report lands next to the image.
func Path(imagePath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	if outputDir == "" {
		outputDir = filepath.Dir(imagePath)
	}
	return filepath.Join(outputDir, base+ReportSuffix+".pdf")
}

// PageWidth returns the configured page width in points
func (g *Generator) PageWidth() float64 {
	return g.pageWidth
}

// PageHeight returns the configured page height in points
func (g *Generator) PageHeight() float64 {
	return g.pageHeight
}

// Generate writes the report PDF. The base page with the embedded image and
// marker squares is built first; interactive comment annotations are then
// attached one at a time, so a single bad annotation degrades the report
// instead of failing it. The finished file is validated before returning.
func (g *Generator) Generate(outputPath string, imageData []byte, imageRect layout.Rect, annotations []Annotation) (*Result, error) {
	g.logger.WithFields("output", outputPath, "annotations", len(annotations)).Info("Generating report")

	base, err := g.buildBasePDF(imageData, imageRect, annotations)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create output directory: %v", ErrDocumentGeneration, err)
	}
	if err := os.WriteFile(outputPath, base, 0644); err != nil {
		return nil, fmt.Errorf("%w: failed to write report: %v", ErrDocumentGeneration, err)
	}

	attached, failed := g.attachComments(outputPath, annotations)

	if err := g.Validate(outputPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentGeneration, err)
	}

	g.logger.WithFields("output", outputPath, "attached", attached, "failed", failed).Info("Report generated")
	return &Result{
		OutputPath: outputPath,
		Attached:   attached,
		Failed:     failed,
	}, nil
}

// buildBasePDF draws the single report page: white background, the source
// image, and one filled marker square per annotation
func (g *Generator) buildBasePDF(imageData []byte, imageRect layout.Rect, annotations []Annotation) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		PageSize: gopdf.Rect{
			W: g.pageWidth,
			H: g.pageHeight,
		},
	})

	pdf.AddPage()

	pdf.SetFillColor(255, 255, 255)
	pdf.RectFromUpperLeftWithStyle(0, 0, g.pageWidth, g.pageHeight, "F")

	if err := g.embedImage(&pdf, imageData, imageRect); err != nil {
		return nil, err
	}

	for _, ann := range annotations {
		r, gr, b := markerColor(ann.Issue.Kind)
		pdf.SetFillColor(r, gr, b)

		icon := ann.Placement.Icon
		pdf.RectFromUpperLeftWithStyle(icon.X, g.topY(icon), icon.W, icon.H, "F")
	}

	var buf bytes.Buffer
	if err := pdf.Write(&buf); err != nil {
		return nil, fmt.Errorf("%w: failed to write PDF: %v", ErrDocumentGeneration, err)
	}

	return buf.Bytes(), nil
}

// embedImage places the image on the page, re-encoding it as PNG when the
// original bytes are rejected. Both encodings failing is fatal.
func (g *Generator) embedImage(pdf *gopdf.GoPdf, imageData []byte, imageRect layout.Rect) error {
	rect := &gopdf.Rect{W: imageRect.W, H: imageRect.H}

	holder, err := gopdf.ImageHolderByBytes(imageData)
	if err == nil {
		if err = pdf.ImageByHolder(holder, imageRect.X, g.topY(imageRect), rect); err == nil {
			return nil
		}
	}
	g.logger.WithFields("error", err.Error()).Debug("Direct image embed failed, re-encoding as PNG")

	reencoded, reErr := reencodePNG(imageData)
	if reErr != nil {
		return fmt.Errorf("%w: image rejected by both direct embed and PNG re-encode: %v", ErrDocumentGeneration, reErr)
	}

	holder, err = gopdf.ImageHolderByBytes(reencoded)
	if err != nil {
		return fmt.Errorf("%w: failed to embed re-encoded image: %v", ErrDocumentGeneration, err)
	}
	if err := pdf.ImageByHolder(holder, imageRect.X, g.topY(imageRect), rect); err != nil {
		return fmt.Errorf("%w: failed to embed re-encoded image: %v", ErrDocumentGeneration, err)
	}

	return nil
}

// attachComments adds one interactive Text annotation per accepted
// correction. Failures are logged and counted, not fatal.
func (g *Generator) attachComments(pdfPath string, annotations []Annotation) (attached, failed int) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	for _, ann := range annotations {
		icon := ann.Placement.Icon
		rect := types.NewRectangle(icon.X, icon.Y, icon.Right(), icon.Top())

		ta := model.NewTextAnnotation(
			*rect,
			0,
			ann.Issue.Summary(),
			uuid.NewString(),
			"",
			model.AnnotationFlags(0),
			annotationColor(ann.Issue.Kind),
			"scanproof",
			nil,
			nil,
			"",
			ann.Issue.Original,
			0,
			0,
			0,
			false,
			"Comment",
		)

		if err := api.AddAnnotationsFile(pdfPath, "", nil, ta, conf, false); err != nil {
			g.logger.WithFields("original", ann.Issue.Original, "error", err.Error()).Warn("Failed to attach comment annotation")
			failed++
			continue
		}
		attached++
	}

	return attached, failed
}

// Validate checks that the generated report is a readable PDF
func (g *Generator) Validate(pdfPath string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(pdfPath, conf); err != nil {
		return fmt.Errorf("report validation failed: %w", err)
	}

	return nil
}

// PageCount returns the number of pages in a PDF file
func PageCount(pdfPath string) (int, error) {
	ctx, err := api.ReadContextFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF: %w", err)
	}
	return ctx.PageCount, nil
}

// topY converts a bottom-left-origin rect to the top-left origin gopdf draws in
func (g *Generator) topY(r layout.Rect) float64 {
	return g.pageHeight - (r.Y + r.H)
}

// markerColor picks the marker fill for an issue kind
func markerColor(kind issue.Kind) (r, gr, b uint8) {
	switch kind {
	case issue.KindDecimal:
		return 255, 153, 0
	case issue.KindSpelling:
		return 220, 53, 69
	default:
		return 108, 117, 125
	}
}

// annotationColor picks the comment annotation color for an issue kind
func annotationColor(kind issue.Kind) *color.SimpleColor {
	r, gr, b := markerColor(kind)
	return &color.SimpleColor{
		R: float32(r) / 255.0,
		G: float32(gr) / 255.0,
		B: float32(b) / 255.0,
	}
}

// reencodePNG decodes the image with any registered decoder and re-encodes
// it as PNG
func reencodePNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}
