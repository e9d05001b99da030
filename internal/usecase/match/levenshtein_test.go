package match

import (
	"math"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"inceptoin", "inception", 2},
		{"café", "cafe", 1},
	}

	for _, tc := range cases {
		if got := levenshteinDistance(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestStringSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"inception", "inception", 1.0},
		{"", "inception", 0.0},
		{"inception", "", 0.0},
		{"inceptoin", "inception", 1.0 - 2.0/9.0},
		{"abc", "xyz", 0.0},
	}

	for _, tc := range cases {
		got := stringSimilarity(tc.a, tc.b)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("stringSimilarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestStringSimilarity_Symmetric(t *testing.T) {
	a, b := "titanic", "titanc"
	if stringSimilarity(a, b) != stringSimilarity(b, a) {
		t.Errorf("similarity is not symmetric for %q and %q", a, b)
	}
}
