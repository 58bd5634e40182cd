package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndList(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	recs := []Record{
		{When: base, DocumentURL: "https://a.example.com/docs", Title: "A", Total: 10, Probed: 8, Skipped: 2},
		{When: base.Add(time.Minute), DocumentURL: "https://b.example.com/docs", Title: "B", Total: 3, Probed: 3},
	}
	for _, rec := range recs {
		if err := store.Record(rec); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(got))
	}
	if got[0].Title != "A" || got[1].Title != "B" {
		t.Errorf("records out of chronological order: %q then %q", got[0].Title, got[1].Title)
	}
	if got[0].Total != 10 || got[0].Probed != 8 || got[0].Skipped != 2 {
		t.Errorf("record fields not round-tripped: %+v", got[0])
	}
}

func TestStore_RecordFillsTimestamp(t *testing.T) {
	store := openTestStore(t)

	if err := store.Record(Record{DocumentURL: "https://x.example.com/docs"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	got, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].When.IsZero() {
		t.Error("a zero When should be stamped at record time")
	}
}

func TestStore_ListEmpty(t *testing.T) {
	store := openTestStore(t)

	got, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("fresh store should list no runs, got %d", len(got))
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Record(Record{Title: "persisted"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer store.Close()

	got, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "persisted" {
		t.Errorf("records should survive reopening, got %v", got)
	}
}
