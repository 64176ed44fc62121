package vision

import (
	"encoding/json"
	"strings"

	"github.com/platinummonkey/scanproof/internal/issue"
	"github.com/platinummonkey/scanproof/internal/logger"
)

// ParseAnalysis recovers a structured Analysis from whatever text the model
// returned. Models wrap JSON in code fences or prose often enough that a
// strict parse would throw away usable responses, so the parse tries the
// content verbatim, then with code fences stripped, then the first balanced
// JSON object found anywhere in the text. When nothing parses, the whole
// response is kept as extracted text with no issues rather than failing the
// run.
func ParseAnalysis(content string, log *logger.Logger) *Analysis {
	if log == nil {
		log = logger.Get()
	}

	candidates := []string{
		content,
		stripCodeFences(content),
		firstJSONObject(content),
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if analysis, ok := decodeAnalysis(candidate, log); ok {
			return analysis
		}
	}

	log.WithFields("content_length", len(content)).Debug("Response not parseable as JSON, keeping raw text")
	return &Analysis{ExtractedText: content}
}

// decodeAnalysis attempts a tolerant decode of one candidate string. The
// issues field is decoded separately so a malformed or non-array issues
// value degrades to an empty list instead of discarding the extracted text.
func decodeAnalysis(candidate string, log *logger.Logger) (*Analysis, bool) {
	var raw struct {
		ExtractedText string          `json:"extracted_text"`
		Issues        json.RawMessage `json:"issues"`
	}

	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, false
	}
	if raw.ExtractedText == "" {
		return nil, false
	}

	analysis := &Analysis{ExtractedText: raw.ExtractedText}
	if len(raw.Issues) > 0 {
		var issues []issue.Raw
		if err := json.Unmarshal(raw.Issues, &issues); err != nil {
			log.WithFields("error", err.Error()).Debug("Issues field not an array, treating as empty")
		} else {
			analysis.Issues = issues
		}
	}

	return analysis, true
}

// stripCodeFences removes a surrounding markdown code fence, with or without
// a language tag
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json")
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// firstJSONObject returns the first balanced {...} block in the text,
// tracking string literals so braces inside values don't break the scan
func firstJSONObject(content string) string {
	start := strings.Index(content, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(content); i++ {
		ch := content[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}

	return ""
}
