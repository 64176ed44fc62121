package spellcheck

import (
	"testing"

	"github.com/platinummonkey/scanproof/internal/issue"
)

// fakeDict is a scripted Dictionary for validator tests
type fakeDict struct {
	known       map[string]bool
	suggestions map[string][]string
}

func (f *fakeDict) Check(word string) bool {
	return f.known[word]
}

func (f *fakeDict) Suggest(word string) []string {
	return f.suggestions[word]
}

func newFakeDict(known []string, suggestions map[string][]string) *fakeDict {
	m := make(map[string]bool, len(known))
	for _, w := range known {
		m[w] = true
	}
	return &fakeDict{known: m, suggestions: suggestions}
}

func TestValidate_FlagsMisspelling(t *testing.T) {
	dict := newFakeDict(
		[]string{"please", "the", "package", "today"},
		map[string][]string{"recieve": {"receive", "relieve"}},
	)
	v := New(&Config{Dictionary: dict})

	issues := v.Validate("please recieve the package today")
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}

	got := issues[0]
	if got.Kind != issue.KindSpelling {
		t.Errorf("kind = %s, want spelling", got.Kind)
	}
	if got.Source != issue.SourceDictionary {
		t.Errorf("source = %s, want dictionary", got.Source)
	}
	if got.Position != 1 {
		t.Errorf("position = %d, want 1", got.Position)
	}
	if got.Original != "recieve" || got.Suggested != "receive" {
		t.Errorf("unexpected correction: %q -> %q", got.Original, got.Suggested)
	}
}

func TestValidate_PreservesPunctuation(t *testing.T) {
	dict := newFakeDict(nil, map[string][]string{"recieve": {"receive"}})
	v := New(&Config{Dictionary: dict})

	issues := v.Validate("Recieve, please")
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	// Case-insensitive first occurrence replaced inside the raw token
	if issues[0].Original != "Recieve," {
		t.Errorf("original = %q, want raw token", issues[0].Original)
	}
	if issues[0].Suggested != "receive," {
		t.Errorf("suggested = %q, want punctuation preserved", issues[0].Suggested)
	}
}

func TestValidate_SkipHeuristics(t *testing.T) {
	// Nothing is known, everything has a suggestion: only non-skipped
	// tokens may surface
	dict := &fakeDict{
		known:       map[string]bool{},
		suggestions: map[string][]string{},
	}
	v := New(&Config{Dictionary: dict})

	tests := []struct {
		name  string
		token string
	}{
		{"short token", "ab"},
		{"all digits", "12345"},
		{"acronym", "NASA"},
		{"digit letter mix", "5kg"},
		{"letter digit mix", "A4"},
		{"url", "https://example.com/path"},
		{"email", "user@example.com"},
		{"domain suffix", "example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if issues := v.Validate(tt.token); len(issues) != 0 {
				t.Errorf("token %q should be skipped, got %+v", tt.token, issues)
			}
		})
	}
}

func TestValidate_KnownWordsPass(t *testing.T) {
	dict := newFakeDict([]string{"hello", "world"}, map[string][]string{})
	v := New(&Config{Dictionary: dict})

	if issues := v.Validate("hello world"); len(issues) != 0 {
		t.Errorf("known words should produce no issues, got %+v", issues)
	}
}

func TestValidate_NoSuggestionsNoIssue(t *testing.T) {
	dict := newFakeDict(nil, map[string][]string{})
	v := New(&Config{Dictionary: dict})

	if issues := v.Validate("zxqwv"); len(issues) != 0 {
		t.Errorf("token without suggestions should be silent, got %+v", issues)
	}
}

func TestValidate_NilDictionaryDegrades(t *testing.T) {
	v := New(&Config{})

	if issues := v.Validate("definately wrong"); issues != nil {
		t.Errorf("nil dictionary should yield no issues, got %+v", issues)
	}
}

func TestValidate_PositionsAscend(t *testing.T) {
	dict := newFakeDict(nil, map[string][]string{
		"helo":  {"hello"},
		"wrold": {"world"},
	})
	v := New(&Config{Dictionary: dict})

	issues := v.Validate("helo big wrold")
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if issues[0].Position != 0 || issues[1].Position != 2 {
		t.Errorf("unexpected positions: %d, %d", issues[0].Position, issues[1].Position)
	}
}
