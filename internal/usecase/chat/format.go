package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reelchat/reelchat/internal/domain/movie"
)

// HelpText is the fixed default reply. It is the ultimate fallback and
// depends on nothing that can fail.
const HelpText = "I can help you explore movies: ask for a rating " +
	"(\"What's the rating of Inception?\"), a recommendation " +
	"(\"Recommend top Sci-Fi movies\"), details (\"Tell me about Titanic\"), " +
	"or the list of genres."

// Strategy names reported in recommendation replies for transparency.
const (
	StrategySemantic = "semantic"
	StrategyCategory = "category"
	StrategyDefault  = "default"
)

// formatRating is the short answer for a rating lookup: title, score, category.
func formatRating(m movie.Movie) string {
	return fmt.Sprintf("%s is rated %.1f/10 (%s, %d).", m.Title(), m.Rating(), m.Category(), m.Year())
}

// formatDetail is the full record rendering.
func formatDetail(m movie.Movie) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d) — %s, rated %.1f/10.", m.Title(), m.Year(), m.Category(), m.Rating())
	if m.Director() != "" {
		fmt.Fprintf(&b, " Directed by %s.", m.Director())
	}
	if m.Description() != "" {
		fmt.Fprintf(&b, " %s", m.Description())
	}
	return b.String()
}

// formatList renders a ranked list with a strategy note.
func formatList(intro string, movies []movie.Movie, strategy string) string {
	var b strings.Builder
	b.WriteString(intro)
	for i, m := range movies {
		fmt.Fprintf(&b, "\n%d. %s (%s, %.1f/10)", i+1, m.Title(), m.Category(), m.Rating())
	}
	fmt.Fprintf(&b, "\n[strategy: %s]", strategy)
	return b.String()
}

// formatSuggestions renders a did-you-mean list of titles.
func formatSuggestions(candidate string, movies []movie.Movie) string {
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title()
	}
	return fmt.Sprintf("I couldn't find %q. Did you mean: %s?", candidate, strings.Join(titles, ", "))
}

// sortByRating orders records by score descending, preserving input order
// on ties, without mutating the input.
func sortByRating(movies []movie.Movie) []movie.Movie {
	out := make([]movie.Movie, len(movies))
	copy(out, movies)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating() > out[j].Rating()
	})
	return out
}

// truncate caps a list at n.
func truncate(movies []movie.Movie, n int) []movie.Movie {
	if len(movies) > n {
		return movies[:n]
	}
	return movies
}
