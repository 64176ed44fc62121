package vision

import (
	"testing"
)

func TestParseAnalysis_DirectJSON(t *testing.T) {
	content := `{"extracted_text": "Total: 12,5", "issues": [{"type": "decimal", "original": "12,5", "suggested": "12.5", "description": "comma used as decimal separator", "source": "model"}]}`

	analysis := ParseAnalysis(content, nil)
	if analysis.ExtractedText != "Total: 12,5" {
		t.Errorf("ExtractedText = %q", analysis.ExtractedText)
	}
	if len(analysis.Issues) != 1 {
		t.Fatalf("issues length = %d, want 1", len(analysis.Issues))
	}
	if analysis.Issues[0].Type != "decimal" || analysis.Issues[0].Suggested != "12.5" {
		t.Errorf("unexpected issue: %+v", analysis.Issues[0])
	}
}

func TestParseAnalysis_CodeFenced(t *testing.T) {
	content := "```json\n{\"extracted_text\": \"hello world\", \"issues\": []}\n```"

	analysis := ParseAnalysis(content, nil)
	if analysis.ExtractedText != "hello world" {
		t.Errorf("ExtractedText = %q, want %q", analysis.ExtractedText, "hello world")
	}
	if len(analysis.Issues) != 0 {
		t.Errorf("issues length = %d, want 0", len(analysis.Issues))
	}
}

func TestParseAnalysis_EmbeddedInProse(t *testing.T) {
	content := `Here is the analysis you asked for:

{"extracted_text": "the quick brown fox", "issues": []}

Let me know if you need anything else.`

	analysis := ParseAnalysis(content, nil)
	if analysis.ExtractedText != "the quick brown fox" {
		t.Errorf("ExtractedText = %q", analysis.ExtractedText)
	}
}

func TestParseAnalysis_BracesInsideStrings(t *testing.T) {
	content := `{"extracted_text": "set {x} to 1", "issues": []}`

	analysis := ParseAnalysis(content, nil)
	if analysis.ExtractedText != "set {x} to 1" {
		t.Errorf("ExtractedText = %q", analysis.ExtractedText)
	}
}

func TestParseAnalysis_UnparseableKeepsRawText(t *testing.T) {
	content := "I could not read the image, sorry."

	analysis := ParseAnalysis(content, nil)
	if analysis.ExtractedText != content {
		t.Errorf("ExtractedText = %q, want the raw response", analysis.ExtractedText)
	}
	if len(analysis.Issues) != 0 {
		t.Errorf("issues length = %d, want 0", len(analysis.Issues))
	}
}

func TestParseAnalysis_NonArrayIssuesDegradesToEmpty(t *testing.T) {
	content := `{"extracted_text": "some text", "issues": "none"}`

	analysis := ParseAnalysis(content, nil)
	if analysis.ExtractedText != "some text" {
		t.Errorf("ExtractedText = %q, want %q", analysis.ExtractedText, "some text")
	}
	if len(analysis.Issues) != 0 {
		t.Errorf("issues length = %d, want 0", len(analysis.Issues))
	}
}

func TestParseAnalysis_MissingExtractedTextKeepsRawText(t *testing.T) {
	content := `{"issues": []}`

	analysis := ParseAnalysis(content, nil)
	if analysis.ExtractedText != content {
		t.Errorf("ExtractedText = %q, want the raw response", analysis.ExtractedText)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"with language tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"without language tag", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no fences", `{"a": 1}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.content); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"prose around", `text {"a": {"b": 2}} more`, `{"a": {"b": 2}}`},
		{"brace in string", `{"a": "}"}`, `{"a": "}"}`},
		{"escaped quote", `{"a": "\"}"}`, `{"a": "\"}"}`},
		{"unbalanced", `{"a": 1`, ""},
		{"no object", "plain text", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstJSONObject(tt.content); got != tt.want {
				t.Errorf("firstJSONObject(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
