// Package spellcheck validates extracted text against a local dictionary and
// reports misspelled tokens with replacement suggestions.
package spellcheck

// Dictionary is the minimal surface the validator needs from a spell-checking
// engine. Implementations must be safe for repeated calls and must never
// block indefinitely; the validator itself is synchronous and CPU-bound.
type Dictionary interface {
	// Check reports whether the dictionary accepts the word
	Check(word string) bool

	// Suggest returns replacement candidates for a misspelled word,
	// best candidate first. An empty slice means no suggestion.
	Suggest(word string) []string
}
