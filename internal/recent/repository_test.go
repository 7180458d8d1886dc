package recent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func paths(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func touchAll(t *testing.T, s *Store, values ...string) {
	t.Helper()
	for _, p := range values {
		if err := s.Touch(context.Background(), p); err != nil {
			t.Fatalf("Touch(%q) failed: %v", p, err)
		}
		// distinct timestamps on coarse clocks
		time.Sleep(time.Millisecond)
	}
}

func TestStore_TouchOrdersNewestFirst(t *testing.T) {
	s := NewStore(newTestDB(t), Config{Limit: 10})
	touchAll(t, s, "/a", "/b", "/c", "/a")

	entries, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}

	got := paths(entries)
	want := []string{"/a", "/c", "/b"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}

func TestStore_EvictsOldest(t *testing.T) {
	s := NewStore(newTestDB(t), Config{Limit: 2})
	touchAll(t, s, "/a", "/b", "/c")

	entries, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := paths(entries); len(got) != 2 || got[0] != "/c" || got[1] != "/b" {
		t.Errorf("Expected [/c /b], got %v", got)
	}

	limited, err := s.List(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Path != "/c" {
		t.Errorf("Expected [/c], got %v", paths(limited))
	}
}

func TestStore_PathPrefixesDoNotCollide(t *testing.T) {
	s := NewStore(newTestDB(t), Config{})
	touchAll(t, s, "/repo", "/repo:2")

	if err := s.Remove(context.Background(), "/repo"); err != nil {
		t.Fatal(err)
	}

	entries, _ := s.List(context.Background(), 0)
	if got := paths(entries); len(got) != 1 || got[0] != "/repo:2" {
		t.Errorf("Expected [/repo:2], got %v", got)
	}
}

func TestStore_RemoveUnknown(t *testing.T) {
	s := NewStore(newTestDB(t), Config{})

	if err := s.Remove(context.Background(), "/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
