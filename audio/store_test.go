package audio

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		in   string
		id   int64
		ok   bool
	}{
		{"42", 42, true},
		{" 42 ", 42, true},
		{"0", 0, true},
		{"007", 7, true},
		{"-1", 0, false},
		{"+42", 0, false},
		{"42x", 0, false},
		{"owl", 0, false},
		{"", 0, false},
		{"4.2", 0, false},
	}
	for _, tc := range cases {
		id, ok := ParseID(tc.in)
		if ok != tc.ok || id != tc.id {
			t.Errorf("ParseID(%q) = (%d, %v), expected (%d, %v)", tc.in, id, ok, tc.id, tc.ok)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  OwL  "); got != "owl" {
		t.Fatalf("NormalizeName = %q", got)
	}
}

func TestCreateAndResolve(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec, err := s.Create(ctx, "  OWL ", "m1", 3, 42)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Name != "owl" {
		t.Fatalf("name = %q, expected folded", rec.Name)
	}
	if rec.ID <= 0 {
		t.Fatalf("id = %d, expected positive", rec.ID)
	}

	got, err := s.Resolve(ctx, " Owl ")
	if err != nil {
		t.Fatalf("resolve by name: %v", err)
	}
	if got.ID != rec.ID {
		t.Fatalf("resolved wrong record: %d", got.ID)
	}

	got, err = s.Resolve(ctx, fmt.Sprintf("%d", rec.ID))
	if err != nil {
		t.Fatalf("resolve by id: %v", err)
	}
	if got.Name != "owl" {
		t.Fatalf("resolved wrong record: %q", got.Name)
	}
}

func TestCreateDuplicateNameLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Create(ctx, "owl", "m1", 0, 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, " OWL ", "m2", 0, 1); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 || recs[0].FileID != "m1" {
		t.Fatalf("store changed by failed create: %+v", recs)
	}
}

func TestCreateEmptyName(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Create(context.Background(), "   ", "m1", 0, 1); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestResolveNumericNeverFallsBackToName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Record literally named "42"; no record with id 42 exists.
	if _, err := s.Create(ctx, "42", "m1", 0, 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Resolve(ctx, "42"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("numeric identifier must resolve by id only, got %v", err)
	}
	// The record is still reachable through an explicit name lookup.
	if _, err := s.ByName(ctx, "42"); err != nil {
		t.Fatalf("by name: %v", err)
	}
}

func TestRenameCollisionAppliesNothing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, _ := s.Create(ctx, "alpha", "m1", 0, 1)
	b, _ := s.Create(ctx, "bravo", "m2", 0, 1)

	if err := s.Rename(ctx, a.ID, "Bravo"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	gotA, _ := s.ByID(ctx, a.ID)
	gotB, _ := s.ByID(ctx, b.ID)
	if gotA.Name != "alpha" || gotB.Name != "bravo" {
		t.Fatalf("records changed by failed rename: %q, %q", gotA.Name, gotB.Name)
	}
}

func TestRenameToOwnNameIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec, _ := s.Create(ctx, "owl", "m1", 0, 1)
	if err := s.Rename(ctx, rec.ID, "owl"); err != nil {
		t.Fatalf("self-rename must not trigger duplicate error: %v", err)
	}
	got, _ := s.ByID(ctx, rec.ID)
	if got.Name != "owl" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, _ := s.Create(ctx, "alpha", "m1", 0, 1)
	b, _ := s.Create(ctx, "bravo", "m2", 0, 1)

	if err := s.Delete(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.ByID(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("deleted record still present")
	}
	if _, err := s.ByID(ctx, b.ID); err != nil {
		t.Fatalf("unrelated record removed: %v", err)
	}
}

func TestIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, _ := s.Create(ctx, "alpha", "m1", 0, 1)
	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	b, _ := s.Create(ctx, "bravo", "m2", 0, 1)
	if b.ID <= a.ID {
		t.Fatalf("id reused: %d after %d", b.ID, a.ID)
	}
}

func TestSearchSubstringCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, name := range []string{"barn owl", "eagle", "owlet", "sparrow"} {
		if _, err := s.Create(ctx, name, "m", 0, 1); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	recs, err := s.Search(ctx, " OWL ", 50)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("results = %d, expected 2", len(recs))
	}
	// Alphabetical ordering.
	if recs[0].Name != "barn owl" || recs[1].Name != "owlet" {
		t.Fatalf("unexpected order: %q, %q", recs[0].Name, recs[1].Name)
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for i := 0; i < 5; i++ {
		if _, err := s.Create(ctx, fmt.Sprintf("clip %d", i), "m", 0, 1); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	recs, err := s.Search(ctx, "clip", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("results = %d, expected limit 3", len(recs))
	}
}

func TestRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, name := range []string{"alpha", "bravo", "charlie"} {
		if _, err := s.Create(ctx, name, "m", 0, 1); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	recs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 2 || recs[0].Name != "charlie" || recs[1].Name != "bravo" {
		t.Fatalf("unexpected recent set: %+v", recs)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := EscapeLike(`50%_\x`); got != `50\%\_\\x` {
		t.Fatalf("EscapeLike = %q", got)
	}
}
