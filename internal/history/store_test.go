package history

import (
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddAndRecent(t *testing.T) {
	s := newTestStore(t)

	for _, q := range []string{"SELECT 1", "SELECT 2", "SELECT 3"} {
		if err := s.Add("primary", q); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Add("other", "SELECT 99"); err != nil {
		t.Fatal(err)
	}

	got, err := s.Recent("primary", 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"SELECT 1", "SELECT 2", "SELECT 3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recent = %v, want %v", got, want)
	}
}

func TestRecentLimitKeepsNewest(t *testing.T) {
	s := newTestStore(t)

	for _, q := range []string{"q1", "q2", "q3", "q4"} {
		if err := s.Add("primary", q); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Recent("primary", 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"q3", "q4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recent = %v, want %v", got, want)
	}
}

func TestRecentUnknownConnection(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Recent("missing", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("recent = %v, want empty", got)
	}
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)

	for _, q := range []string{"q1", "q2", "q3", "q4", "q5"} {
		if err := s.Add("primary", q); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Add("other", "keep-me"); err != nil {
		t.Fatal(err)
	}

	if err := s.Prune("primary", 2); err != nil {
		t.Fatal(err)
	}

	got, err := s.Recent("primary", 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"q4", "q5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pruned = %v, want %v", got, want)
	}

	other, err := s.Recent("other", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(other, []string{"keep-me"}) {
		t.Errorf("other connection affected: %v", other)
	}
}
