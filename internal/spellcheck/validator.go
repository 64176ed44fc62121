package spellcheck

import (
	"regexp"
	"strings"

	"github.com/platinummonkey/scanproof/internal/issue"
	"github.com/platinummonkey/scanproof/internal/logger"
)

// Fixed skip heuristics, matched against the unstripped token. The precise
// boundaries of this list decide which tokens are silently ignored, so it is
// deliberately a closed set rather than anything configurable.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]{2,}$`),              // all-caps acronym (NASA, GDP)
	regexp.MustCompile(`^\d+[A-Za-z]+$`),           // digit+letter mix (5kg, 3rd)
	regexp.MustCompile(`^[A-Za-z]+\d+$`),           // letter+digit mix (A4, COVID19)
	regexp.MustCompile(`^(https?|ftp)://`),         // URL
	regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`), // email-like
	regexp.MustCompile(`\.(com|org|net|io|gov|edu)$`), // bare domain suffix
}

var (
	nonWordRE   = regexp.MustCompile(`[^A-Za-z0-9_]+`)
	allDigitsRE = regexp.MustCompile(`^\d+$`)
)

// Validator scans extracted text for spelling issues using a Dictionary
type Validator struct {
	dict   Dictionary
	logger *logger.Logger
}

// Config holds configuration for the validator
type Config struct {
	// Dictionary is the spell-checking engine. A nil dictionary disables
	// validation entirely (AI-only mode) instead of failing.
	Dictionary Dictionary

	Logger *logger.Logger
}

// New creates a new dictionary validator
func New(cfg *Config) *Validator {
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}

	return &Validator{
		dict:   cfg.Dictionary,
		logger: log,
	}
}

// Validate scans text split on whitespace and returns one spelling issue per
// flagged token, carrying the token's ordinal index as its position. It has
// no side effects and never fails: an absent dictionary degrades to an empty
// result.
func (v *Validator) Validate(text string) []issue.Issue {
	if v.dict == nil {
		v.logger.Debug("No dictionary configured, skipping spell check")
		return nil
	}

	var issues []issue.Issue
	for pos, token := range strings.Fields(text) {
		cleanWord := strings.ToLower(nonWordRE.ReplaceAllString(token, ""))

		if len(cleanWord) <= 2 || allDigitsRE.MatchString(cleanWord) {
			continue
		}
		if matchesSkipPattern(token) {
			continue
		}
		if v.dict.Check(cleanWord) {
			continue
		}

		suggestions := v.dict.Suggest(cleanWord)
		if len(suggestions) == 0 {
			continue
		}

		issues = append(issues, issue.Issue{
			Kind:        issue.KindSpelling,
			Original:    token,
			Suggested:   replaceWord(token, cleanWord, suggestions[0]),
			Description: "Not found in dictionary",
			Source:      issue.SourceDictionary,
			Position:    pos,
		})
	}

	v.logger.WithFields("issues", len(issues)).Debug("Dictionary validation completed")
	return issues
}

func matchesSkipPattern(token string) bool {
	for _, re := range skipPatterns {
		if re.MatchString(token) {
			return true
		}
	}
	return false
}

// replaceWord substitutes the first case-insensitive occurrence of cleanWord
// inside the original token, preserving surrounding punctuation.
func replaceWord(token, cleanWord, suggestion string) string {
	idx := strings.Index(strings.ToLower(token), cleanWord)
	if idx < 0 {
		return suggestion
	}
	return token[:idx] + suggestion + token[idx+len(cleanWord):]
}
