package localstore

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dir, err := os.MkdirTemp("", "bookbazaar-local-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := Open(filepath.Join(dir, "local.db"))
	if err != nil {
		t.Fatalf("Failed to open local store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestItemRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetItem("cart", []byte(`[]`)); err != nil {
		t.Fatalf("Failed to set item: %v", err)
	}
	value, err := s.GetItem("cart")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if string(value) != `[]` {
		t.Errorf("Expected [], got %s", value)
	}

	// Overwrite replaces, it never appends.
	if err := s.SetItem("cart", []byte(`[1]`)); err != nil {
		t.Fatalf("Failed to overwrite item: %v", err)
	}
	value, err = s.GetItem("cart")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if string(value) != `[1]` {
		t.Errorf("Expected [1], got %s", value)
	}
}

func TestMissingKey(t *testing.T) {
	s := newTestStore(t)

	value, err := s.GetItem("no-such-key")
	if err != nil {
		t.Fatalf("Failed to get missing key: %v", err)
	}
	if value != nil {
		t.Errorf("Expected nil for missing key, got %s", value)
	}
}

func TestRemoveItem(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetItem("currentUser", []byte(`{}`)); err != nil {
		t.Fatalf("Failed to set item: %v", err)
	}
	if err := s.RemoveItem("currentUser"); err != nil {
		t.Fatalf("Failed to remove item: %v", err)
	}
	value, err := s.GetItem("currentUser")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if value != nil {
		t.Error("Expected key to be gone")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := newTestStore(t)

	type payload struct {
		Name string `json:"name"`
	}
	if err := s.SetJSON("books", payload{Name: "test"}); err != nil {
		t.Fatalf("Failed to set JSON: %v", err)
	}

	var got payload
	ok, err := s.GetJSON("books", &got)
	if err != nil {
		t.Fatalf("Failed to get JSON: %v", err)
	}
	if !ok {
		t.Fatal("Expected key to exist")
	}
	if got.Name != "test" {
		t.Errorf("Expected name to round-trip, got %s", got.Name)
	}

	ok, err = s.GetJSON("missing", &got)
	if err != nil {
		t.Fatalf("Failed to get missing JSON: %v", err)
	}
	if ok {
		t.Error("Expected missing key to report false")
	}
}
