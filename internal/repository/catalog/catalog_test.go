package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

const testJSON = `[
  {"id": 1, "title": "Inception", "category": "Sci-Fi", "rating": 8.8, "year": 2010,
   "director": "Christopher Nolan", "description": "Dream heists."},
  {"id": 2, "title": "Interstellar", "category": "Sci-Fi", "rating": 8.7, "year": 2014,
   "director": "Christopher Nolan", "description": "Wormhole voyage."},
  {"id": 3, "title": "Titanic", "category": "Romance", "rating": 7.9, "year": 1997,
   "director": "James Cameron", "description": "Doomed ocean liner."}
]`

func mustParse(t *testing.T, data string) *Catalog {
	t.Helper()
	c, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return c
}

func TestParse_PreservesOrder(t *testing.T) {
	c := mustParse(t, testJSON)

	if c.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", c.Len())
	}

	all := c.All()
	want := []string{"Inception", "Interstellar", "Titanic"}
	for i, title := range want {
		if all[i].Title() != title {
			t.Errorf("record %d = %q, want %q", i, all[i].Title(), title)
		}
	}
}

func TestCategories_FirstOccurrenceOrder(t *testing.T) {
	c := mustParse(t, testJSON)

	got := c.Categories()
	if len(got) != 2 || got[0] != "Sci-Fi" || got[1] != "Romance" {
		t.Errorf("categories = %v, want [Sci-Fi Romance]", got)
	}
}

func TestFindExact_CaseInsensitive(t *testing.T) {
	c := mustParse(t, testJSON)

	for _, q := range []string{"Inception", "inception", "INCEPTION", "  inception  "} {
		m, ok := c.FindExact(q)
		if !ok {
			t.Errorf("FindExact(%q) not found", q)
			continue
		}
		if m.ID() != 1 {
			t.Errorf("FindExact(%q) = record %d, want 1", q, m.ID())
		}
	}

	if _, ok := c.FindExact("Inceptio"); ok {
		t.Error("FindExact must not do fuzzy matching")
	}
}

func TestCanonicalCategory(t *testing.T) {
	c := mustParse(t, testJSON)

	got, ok := c.CanonicalCategory("sci-fi")
	if !ok || got != "Sci-Fi" {
		t.Errorf("CanonicalCategory(sci-fi) = %q, %v; want Sci-Fi, true", got, ok)
	}

	if _, ok := c.CanonicalCategory("Western"); ok {
		t.Error("expected no canonical form for an unknown category")
	}
}

func TestByCategory(t *testing.T) {
	c := mustParse(t, testJSON)

	got := c.ByCategory("SCI-FI")
	if len(got) != 2 {
		t.Fatalf("expected 2 Sci-Fi records, got %d", len(got))
	}
	if got[0].Title() != "Inception" || got[1].Title() != "Interstellar" {
		t.Errorf("unexpected order: %q, %q", got[0].Title(), got[1].Title())
	}

	if c.ByCategory("Western") != nil {
		t.Error("expected nil for unknown category")
	}
}

func TestHasCategory(t *testing.T) {
	c := mustParse(t, testJSON)

	if !c.HasCategory("romance") {
		t.Error("expected romance to be known")
	}
	if c.HasCategory("Western") {
		t.Error("expected Western to be unknown")
	}
}

func TestParse_EmptyArray(t *testing.T) {
	c := mustParse(t, `[]`)
	if c.Len() != 0 {
		t.Errorf("expected empty catalog, got %d records", c.Len())
	}
	if got := c.Categories(); len(got) != 0 {
		t.Errorf("expected no categories, got %v", got)
	}
}

func TestParse_DuplicateID(t *testing.T) {
	_, err := Parse([]byte(`[
	  {"id": 1, "title": "A", "category": "X", "rating": 5},
	  {"id": 1, "title": "B", "category": "X", "rating": 5}
	]`))
	if err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestParse_InvalidRecord(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing title", `[{"id": 1, "category": "X", "rating": 5}]`},
		{"missing category", `[{"id": 1, "title": "A", "rating": 5}]`},
		{"rating out of range", `[{"id": 1, "title": "A", "category": "X", "rating": 11}]`},
		{"malformed json", `{"not": "an array"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(testJSON), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 records, got %d", c.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
