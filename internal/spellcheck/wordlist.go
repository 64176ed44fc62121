package spellcheck

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

const maxSuggestions = 5

// Wordlist is a Dictionary backed by a newline-delimited word file ordered by
// frequency (most common first). Suggestions are edit-distance-1 candidates
// that exist in the list, ranked by their file order.
type Wordlist struct {
	rank map[string]int
}

// NewWordlist builds a Wordlist from an in-memory slice, most common first
func NewWordlist(words []string) *Wordlist {
	rank := make(map[string]int, len(words))
	for i, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := rank[w]; !ok {
			rank[w] = i
		}
	}
	return &Wordlist{rank: rank}
}

// LoadWordlist reads a newline-delimited word file. Lines starting with '#'
// are ignored.
func LoadWordlist(path string) (*Wordlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wordlist: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("wordlist %s contains no words", path)
	}

	return NewWordlist(words), nil
}

// Size returns the number of distinct words in the list
func (w *Wordlist) Size() int {
	return len(w.rank)
}

// Check reports whether the word is in the list (case-insensitive)
func (w *Wordlist) Check(word string) bool {
	_, ok := w.rank[strings.ToLower(word)]
	return ok
}

// Suggest returns up to maxSuggestions known words within edit distance 1 of
// the input, ordered by word rank.
func (w *Wordlist) Suggest(word string) []string {
	word = strings.ToLower(word)

	seen := make(map[string]struct{})
	var candidates []string
	for _, cand := range editsAtDistanceOne(word) {
		if _, dup := seen[cand]; dup {
			continue
		}
		seen[cand] = struct{}{}
		if _, ok := w.rank[cand]; ok && cand != word {
			candidates = append(candidates, cand)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return w.rank[candidates[i]] < w.rank[candidates[j]]
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	return candidates
}

const letters = "abcdefghijklmnopqrstuvwxyz'"

// editsAtDistanceOne generates all deletions, transpositions, replacements
// and insertions one edit away from the word.
func editsAtDistanceOne(word string) []string {
	runes := []rune(word)
	edits := make([]string, 0, len(runes)*(2*len(letters)+2))

	for i := range runes {
		// deletion
		edits = append(edits, string(runes[:i])+string(runes[i+1:]))
		// transposition
		if i < len(runes)-1 {
			swapped := make([]rune, len(runes))
			copy(swapped, runes)
			swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
			edits = append(edits, string(swapped))
		}
		// replacement
		for _, c := range letters {
			if c == runes[i] {
				continue
			}
			edits = append(edits, string(runes[:i])+string(c)+string(runes[i+1:]))
		}
	}

	// insertion
	for i := 0; i <= len(runes); i++ {
		for _, c := range letters {
			edits = append(edits, string(runes[:i])+string(c)+string(runes[i:]))
		}
	}

	return edits
}
