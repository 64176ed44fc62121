package review

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"))

	if err := store.Load(); err != nil {
		t.Errorf("Load() should not error when file doesn't exist, got: %v", err)
	}
	if store.Count() != 0 {
		t.Error("history should be empty when file doesn't exist")
	}
}

func TestStore_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	store := NewStore(path)
	store.Append(Record{
		RunID:         "run-1",
		ImagePath:     "/scans/receipt.png",
		ReportPath:    "/scans/receipt_OCR_Interactive_Report.pdf",
		IssueCount:    4,
		AcceptedCount: 2,
		CompletedAt:   time.Now().UTC(),
	})
	if err := store.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded := NewStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reloaded.Count())
	}

	rec := reloaded.Records()[0]
	if rec.RunID != "run-1" || rec.AcceptedCount != 2 {
		t.Errorf("unexpected record after reload: %+v", rec)
	}
}

func TestStore_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if err := NewStore(path).Load(); err == nil {
		t.Error("Load() should error on invalid JSON")
	}
}

func TestStore_LoadUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	data, err := json.Marshal(History{Version: 99})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if err := NewStore(path).Load(); err == nil {
		t.Error("Load() should error on unsupported version")
	}
}

func TestStore_RecordsMostRecentFirst(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"))

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store.Append(Record{RunID: "old", CompletedAt: base})
	store.Append(Record{RunID: "new", CompletedAt: base.Add(time.Hour)})

	records := store.Records()
	if records[0].RunID != "new" || records[1].RunID != "old" {
		t.Errorf("records not ordered most recent first: %+v", records)
	}
}

func TestLoadOrCreate(t *testing.T) {
	store, err := LoadOrCreate(filepath.Join(t.TempDir(), "history.json"))
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	if store == nil {
		t.Fatal("LoadOrCreate() returned nil store")
	}
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.json")
	store := NewStore(path)
	store.Append(Record{RunID: "run-1", CompletedAt: time.Now()})

	if err := store.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("history file not created: %v", err)
	}
}
