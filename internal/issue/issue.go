// Package issue defines the common issue model shared by the vision analysis
// and dictionary validation stages, and the merge logic that reconciles them.
package issue

import (
	"errors"
	"strings"
)

// ErrMalformed indicates a raw issue record missing required fields.
// Malformed records are dropped from the batch, never fatal.
var ErrMalformed = errors.New("malformed issue record")

// Kind classifies what a detected issue is about
type Kind string

const (
	// KindSpelling is a misspelled word
	KindSpelling Kind = "spelling"

	// KindDecimal is a decimal separator discrepancy (e.g. "1,5" vs "1.5")
	KindDecimal Kind = "decimal"
)

// Source identifies which detector produced an issue
type Source string

const (
	// SourceModel marks issues reported by the vision model
	SourceModel Source = "model"

	// SourceDictionary marks issues found by the local dictionary validator
	SourceDictionary Source = "dictionary"
)

// NoPosition marks an issue whose token position in the extracted text is unknown.
// Dictionary issues always carry a position; model issues usually do not.
const NoPosition = -1

// Issue is a single detected discrepancy in the extracted text
type Issue struct {
	// Kind classifies the issue (spelling, decimal, ...)
	Kind Kind `json:"kind"`

	// Original is the exact substring as found in the extracted text
	Original string `json:"original"`

	// Suggested is the proposed replacement
	Suggested string `json:"suggested"`

	// Description is a human-readable rationale
	Description string `json:"description,omitempty"`

	// Source identifies the detector that produced this issue
	Source Source `json:"source"`

	// Position is the ordinal token index within the extracted text,
	// or NoPosition when the detector did not provide one
	Position int `json:"position"`
}

// HasPosition reports whether the issue carries a token position
func (i Issue) HasPosition() bool {
	return i.Position != NoPosition
}

// Key returns the duplicate key used during merging: (lowercase(original), kind).
// Case-insensitive exact-string matching is a heuristic inherited from the
// original design; two unrelated identical misspellings at different text
// locations collapse into a single entry.
func (i Issue) Key() string {
	return strings.ToLower(i.Original) + "\x00" + string(i.Kind)
}

// Summary returns a one-line rendering used in review prompts and PDF notes
func (i Issue) Summary() string {
	var b strings.Builder
	b.WriteString(string(i.Kind))
	b.WriteString(": ")
	b.WriteString(i.Original)
	b.WriteString(" -> ")
	b.WriteString(i.Suggested)
	if i.Description != "" {
		b.WriteString(" (")
		b.WriteString(i.Description)
		b.WriteString(")")
	}
	return b.String()
}
