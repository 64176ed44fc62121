package issue

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/scanproof/internal/logger"
)

// Raw is an issue record as produced by an external detector, before
// validation. Field shapes follow the JSON the vision model is asked to emit.
type Raw struct {
	Type        string `json:"type"`
	Original    string `json:"original"`
	Suggested   string `json:"suggested"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Normalize canonicalizes a raw record into an Issue. Missing description
// becomes the empty string, missing source defaults to fallback, missing kind
// defaults to spelling. Returns ErrMalformed when original or suggested is
// missing or empty.
func Normalize(r Raw, fallback Source) (Issue, error) {
	original := strings.TrimSpace(r.Original)
	suggested := strings.TrimSpace(r.Suggested)

	if original == "" {
		return Issue{}, fmt.Errorf("%w: missing original", ErrMalformed)
	}
	if suggested == "" {
		return Issue{}, fmt.Errorf("%w: missing suggested", ErrMalformed)
	}

	return Issue{
		Kind:        normalizeKind(r.Type),
		Original:    original,
		Suggested:   suggested,
		Description: strings.TrimSpace(r.Description),
		Source:      normalizeSource(r.Source, fallback),
		Position:    NoPosition,
	}, nil
}

// NormalizeAll canonicalizes a batch of raw records, dropping malformed ones.
// A dropped record is logged and never fails the batch.
func NormalizeAll(raws []Raw, fallback Source, log *logger.Logger) []Issue {
	if log == nil {
		log = logger.Get()
	}

	issues := make([]Issue, 0, len(raws))
	for idx, r := range raws {
		iss, err := Normalize(r, fallback)
		if err != nil {
			log.WithFields("index", idx, "type", r.Type, "original", r.Original).
				Debug("Dropping malformed issue record")
			continue
		}
		issues = append(issues, iss)
	}
	return issues
}

func normalizeKind(t string) Kind {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "decimal", "decimal_separator":
		return KindDecimal
	case "", "spelling", "typo":
		return KindSpelling
	default:
		// Extensible enum: preserve unknown kinds verbatim
		return Kind(strings.ToLower(strings.TrimSpace(t)))
	}
}

func normalizeSource(s string, fallback Source) Source {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "model", "ai", "llm":
		return SourceModel
	case "dictionary", "dict", "spellcheck":
		return SourceDictionary
	default:
		return fallback
	}
}
