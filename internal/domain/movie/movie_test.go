package movie

import "testing"

func TestNew_Valid(t *testing.T) {
	m, err := New(1, "Inception", "Sci-Fi", 8.8, 2010, "Christopher Nolan", "Dream heists.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID() != 1 || m.Title() != "Inception" || m.Category() != "Sci-Fi" {
		t.Errorf("unexpected fields: %d %q %q", m.ID(), m.Title(), m.Category())
	}
	if m.Rating() != 8.8 || m.Year() != 2010 {
		t.Errorf("unexpected rating/year: %v %d", m.Rating(), m.Year())
	}
	if m.IsZero() {
		t.Error("constructed movie must not be zero")
	}
}

func TestNew_OptionalFieldsMayBeEmpty(t *testing.T) {
	if _, err := New(1, "Inception", "Sci-Fi", 8.8, 0, "", ""); err != nil {
		t.Fatalf("director and description are optional: %v", err)
	}
}

func TestNew_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		title    string
		category string
		rating   float64
	}{
		{"missing title", "", "Sci-Fi", 8.8},
		{"missing category", "Inception", "", 8.8},
		{"rating too high", "Inception", "Sci-Fi", 10.1},
		{"rating negative", "Inception", "Sci-Fi", -0.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(1, tc.title, tc.category, tc.rating, 2010, "", ""); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNew_RatingBoundsInclusive(t *testing.T) {
	for _, r := range []float64{MinRating, MaxRating} {
		if _, err := New(1, "A", "X", r, 2000, "", ""); err != nil {
			t.Errorf("rating %v must be valid: %v", r, err)
		}
	}
}

func TestReconstruct_SkipsValidation(t *testing.T) {
	m := Reconstruct(0, "", "", -5, 0, "", "")
	if !m.IsZero() {
		t.Error("reconstructed empty movie must be zero")
	}
}
