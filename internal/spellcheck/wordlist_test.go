package spellcheck

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWordlist(t *testing.T) {
	w := NewWordlist([]string{"the", "Receive", "", "  world  ", "the"})

	if w.Size() != 3 {
		t.Errorf("Size() = %d, want 3", w.Size())
	}
	if !w.Check("receive") {
		t.Error("Check(receive) should be true (case folded)")
	}
	if !w.Check("RECEIVE") {
		t.Error("Check should be case-insensitive")
	}
	if w.Check("missing") {
		t.Error("Check(missing) should be false")
	}
}

func TestLoadWordlist(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "words.txt")

	content := "# frequency-ordered wordlist\nthe\nreceive\nworld\n\nrelieve\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write wordlist: %v", err)
	}

	w, err := LoadWordlist(path)
	if err != nil {
		t.Fatalf("LoadWordlist() error = %v", err)
	}
	if w.Size() != 4 {
		t.Errorf("Size() = %d, want 4", w.Size())
	}
	if !w.Check("relieve") {
		t.Error("Check(relieve) should be true")
	}
}

func TestLoadWordlist_Missing(t *testing.T) {
	if _, err := LoadWordlist("/nonexistent/words.txt"); err == nil {
		t.Error("LoadWordlist() should error for a missing file")
	}
}

func TestLoadWordlist_Empty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "empty.txt")
	if err := os.WriteFile(path, []byte("# only comments\n\n"), 0644); err != nil {
		t.Fatalf("failed to write wordlist: %v", err)
	}

	if _, err := LoadWordlist(path); err == nil {
		t.Error("LoadWordlist() should error for an empty wordlist")
	}
}

func TestSuggest_EditDistanceOne(t *testing.T) {
	w := NewWordlist([]string{"receive", "relieve", "believe"})

	got := w.Suggest("recieve")
	if len(got) == 0 {
		t.Fatal("Suggest(recieve) returned no candidates")
	}
	// "recieve" -> "receive" is a transposition, "relieve" a replacement;
	// rank order puts receive first
	if got[0] != "receive" {
		t.Errorf("Suggest(recieve)[0] = %q, want receive", got[0])
	}
}

func TestSuggest_RankOrder(t *testing.T) {
	// "cot" is distance 1 from all three; file order decides ranking
	w := NewWordlist([]string{"cat", "cut", "cot"})

	got := w.Suggest("cxt")
	if len(got) < 2 {
		t.Fatalf("Suggest(cxt) = %v, want at least cat and cut", got)
	}
	if got[0] != "cat" || got[1] != "cut" {
		t.Errorf("Suggest(cxt) = %v, want rank order [cat cut ...]", got)
	}
}

func TestSuggest_ExcludesInputWord(t *testing.T) {
	w := NewWordlist([]string{"cat"})
	for _, s := range w.Suggest("cat") {
		if s == "cat" {
			t.Error("Suggest should not return the input word")
		}
	}
}

func TestSuggest_NoCandidates(t *testing.T) {
	w := NewWordlist([]string{"zebra"})
	if got := w.Suggest("qqqqqqqq"); len(got) != 0 {
		t.Errorf("Suggest() = %v, want empty", got)
	}
}

func TestSuggest_CapsResults(t *testing.T) {
	words := []string{"aa", "ab", "ac", "ad", "ae", "af", "ag", "ah"}
	w := NewWordlist(words)

	if got := w.Suggest("ax"); len(got) > maxSuggestions {
		t.Errorf("Suggest() returned %d candidates, cap is %d", len(got), maxSuggestions)
	}
}

func TestWordlistSatisfiesDictionary(t *testing.T) {
	var _ Dictionary = NewWordlist([]string{"word"})
}
