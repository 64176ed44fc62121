package report

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/platinummonkey/scanproof/internal/issue"
	"github.com/platinummonkey/scanproof/internal/layout"
)

// testPNG builds a small valid PNG in memory
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func testAnnotations(gen *Generator, imageRect layout.Rect, issues []issue.Issue) []Annotation {
	annotations := make([]Annotation, len(issues))
	for i, iss := range issues {
		annotations[i] = Annotation{
			Issue:     iss,
			Placement: layout.ComputePlacement(imageRect, i, gen.PageWidth(), gen.PageHeight()),
		}
	}
	return annotations
}

func TestGenerator_Generate(t *testing.T) {
	gen := New(&Config{})
	imageData := testPNG(t, 200, 300)
	imageRect := layout.ComputeImageLayout(200, 300, gen.PageWidth(), gen.PageHeight())

	issues := []issue.Issue{
		{Kind: issue.KindSpelling, Original: "recieve", Suggested: "receive", Description: "Not found in dictionary", Source: issue.SourceDictionary, Position: 4},
		{Kind: issue.KindDecimal, Original: "12,5", Suggested: "12.5", Description: "comma as decimal separator", Source: issue.SourceModel, Position: issue.NoPosition},
	}

	outputPath := filepath.Join(t.TempDir(), "scan_OCR_Interactive_Report.pdf")
	result, err := gen.Generate(outputPath, imageData, imageRect, testAnnotations(gen, imageRect, issues))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.OutputPath != outputPath {
		t.Errorf("OutputPath = %q, want %q", result.OutputPath, outputPath)
	}
	if result.Attached != 2 || result.Failed != 0 {
		t.Errorf("attached = %d, failed = %d, want 2 and 0", result.Attached, result.Failed)
	}

	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	if err := gen.Validate(outputPath); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	pages, err := PageCount(outputPath)
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if pages != 1 {
		t.Errorf("page count = %d, want 1", pages)
	}
}

func TestGenerator_GenerateNoAnnotations(t *testing.T) {
	gen := New(&Config{})
	imageData := testPNG(t, 100, 100)
	imageRect := layout.ComputeImageLayout(100, 100, gen.PageWidth(), gen.PageHeight())

	outputPath := filepath.Join(t.TempDir(), "clean_OCR_Interactive_Report.pdf")
	result, err := gen.Generate(outputPath, imageData, imageRect, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Attached != 0 {
		t.Errorf("attached = %d, want 0", result.Attached)
	}
	if err := gen.Validate(outputPath); err != nil {
		t.Errorf("report with no annotations should still validate: %v", err)
	}
}

func TestGenerator_GenerateRejectsGarbageImage(t *testing.T) {
	gen := New(&Config{})
	imageRect := layout.ComputeImageLayout(100, 100, gen.PageWidth(), gen.PageHeight())

	outputPath := filepath.Join(t.TempDir(), "bad_OCR_Interactive_Report.pdf")
	_, err := gen.Generate(outputPath, []byte("not an image"), imageRect, nil)
	if !errors.Is(err, ErrDocumentGeneration) {
		t.Errorf("Generate() error = %v, want ErrDocumentGeneration", err)
	}
}

func TestGenerator_CreatesOutputDirectory(t *testing.T) {
	gen := New(&Config{})
	imageData := testPNG(t, 50, 50)
	imageRect := layout.ComputeImageLayout(50, 50, gen.PageWidth(), gen.PageHeight())

	outputPath := filepath.Join(t.TempDir(), "nested", "dir", "scan_OCR_Interactive_Report.pdf")
	if _, err := gen.Generate(outputPath, imageData, imageRect, nil); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Errorf("report not created in nested directory: %v", err)
	}
}

func TestPath(t *testing.T) {
	tests := []struct {
		name      string
		imagePath string
		outputDir string
		want      string
	}{
		{"next to image", "/scans/receipt.png", "", "/scans/receipt_OCR_Interactive_Report.pdf"},
		{"custom dir", "/scans/receipt.png", "/out", "/out/receipt_OCR_Interactive_Report.pdf"},
		{"jpeg extension", "/scans/page.jpeg", "", "/scans/page_OCR_Interactive_Report.pdf"},
		{"no extension", "/scans/page", "", "/scans/page_OCR_Interactive_Report.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Path(tt.imagePath, tt.outputDir); got != tt.want {
				t.Errorf("Path(%q, %q) = %q, want %q", tt.imagePath, tt.outputDir, got, tt.want)
			}
		})
	}
}

func TestNew_DefaultsToA4(t *testing.T) {
	gen := New(&Config{})
	if gen.PageWidth() != PageWidthA4 || gen.PageHeight() != PageHeightA4 {
		t.Errorf("default page size = %gx%g, want A4", gen.PageWidth(), gen.PageHeight())
	}
}

func TestMarkerColor_DistinguishesKinds(t *testing.T) {
	r1, g1, b1 := markerColor(issue.KindSpelling)
	r2, g2, b2 := markerColor(issue.KindDecimal)
	if r1 == r2 && g1 == g2 && b1 == b2 {
		t.Error("spelling and decimal markers should use different colors")
	}
}
