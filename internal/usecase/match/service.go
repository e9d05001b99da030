package match

import (
	"sort"
	"strings"

	"github.com/reelchat/reelchat/internal/domain/movie"
)

// DefaultThreshold is the minimum similarity for a record to count as a
// match. Corresponds to loose fuzzy matching; tunable via config.
const DefaultThreshold = 0.3

// minSubstringLen guards the containment shortcut against one- and
// two-letter queries matching everywhere.
const minSubstringLen = 3

// Weights is the per-field weighting table, fixed at construction.
type Weights struct {
	Title       float64
	Director    float64
	Description float64
}

// DefaultWeights keeps the title heaviest, as resolution targets titles.
func DefaultWeights() Weights {
	return Weights{Title: 1.0, Director: 0.4, Description: 0.3}
}

// CatalogReader is the record source for the matcher.
type CatalogReader interface {
	All() []movie.Movie
}

// Service ranks records against free-text queries using approximate
// string similarity.
type Service struct {
	catalog   CatalogReader
	weights   Weights
	threshold float64
}

// New creates a lexical matcher with default weights and threshold.
func New(catalog CatalogReader) *Service {
	return &Service{
		catalog:   catalog,
		weights:   DefaultWeights(),
		threshold: DefaultThreshold,
	}
}

// WithWeights overrides the field weighting table. Zero weights keep defaults.
func (s *Service) WithWeights(w Weights) *Service {
	d := DefaultWeights()
	if w.Title > 0 {
		d.Title = w.Title
	}
	if w.Director > 0 {
		d.Director = w.Director
	}
	if w.Description > 0 {
		d.Description = w.Description
	}
	s.weights = d
	return s
}

// WithThreshold overrides the similarity cutoff.
func (s *Service) WithThreshold(t float64) *Service {
	if t > 0 {
		s.threshold = t
	}
	return s
}

// Search ranks catalog records against the query, best match first.
// Ties keep catalog insertion order (stable sort). An empty or
// whitespace-only query yields an empty result, not an error.
func (s *Service) Search(query string, limit int) []movie.Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}

	type hit struct {
		m     movie.Movie
		score float64
	}

	var hits []hit
	for _, m := range s.catalog.All() {
		score := s.score(q, m)
		if score < s.threshold {
			continue
		}
		hits = append(hits, hit{m: m, score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]movie.Movie, len(hits))
	for i, h := range hits {
		out[i] = h.m
	}
	return out
}

// Best returns the single best match above the threshold.
func (s *Service) Best(query string) (movie.Movie, bool) {
	res := s.Search(query, 1)
	if len(res) == 0 {
		return movie.Movie{}, false
	}
	return res[0], true
}

// Closest matches a candidate against an arbitrary string list, e.g. to
// suggest the nearest valid category. Same similarity algorithm, generic
// over the compared field. Ties keep list order.
func (s *Service) Closest(candidate string, options []string) (string, float64, bool) {
	q := strings.ToLower(strings.TrimSpace(candidate))
	if q == "" {
		return "", 0, false
	}

	best := ""
	bestScore := 0.0
	for _, opt := range options {
		score := fieldSimilarity(q, strings.ToLower(opt))
		if score > bestScore {
			best = opt
			bestScore = score
		}
	}
	if bestScore < s.threshold {
		return "", 0, false
	}
	return best, bestScore, true
}

// score computes the weighted similarity of a record against a lowercased
// query. The record score is the heaviest weighted field score, so an exact
// title match is always maximal regardless of the other fields.
func (s *Service) score(q string, m movie.Movie) float64 {
	score := s.weights.Title * fieldSimilarity(q, strings.ToLower(m.Title()))
	if d := s.weights.Director * fieldSimilarity(q, strings.ToLower(m.Director())); d > score {
		score = d
	}
	if d := s.weights.Description * fieldSimilarity(q, strings.ToLower(m.Description())); d > score {
		score = d
	}
	return score
}

// fieldSimilarity scores a lowercased query against one lowercased field:
// the best of whole-string edit similarity, substring containment, and
// token-level overlap.
func fieldSimilarity(q, field string) float64 {
	if field == "" {
		return 0
	}
	if q == field {
		return 1.0
	}

	score := stringSimilarity(q, field)

	// Containment in either direction scales with the covered share,
	// floored high enough to beat the threshold. The reverse direction
	// lets a full utterance resolve a title buried inside it.
	if len(q) >= minSubstringLen && strings.Contains(field, q) {
		contained := 0.7 + 0.3*float64(len(q))/float64(len(field))
		if contained > score {
			score = contained
		}
	}
	if len(field) >= minSubstringLen && strings.Contains(q, field) {
		contained := 0.7 + 0.3*float64(len(field))/float64(len(q))
		if contained > score {
			score = contained
		}
	}

	if t := tokenSimilarity(q, field); t > score {
		score = t
	}

	return score
}

// stopwords carry no matching signal of their own. They are dropped from
// the query side before averaging, so an unmatched phrase cannot ride "the"
// or "movies" over the threshold.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "and": {}, "in": {}, "on": {},
	"to": {}, "for": {},
	"movie": {}, "movies": {}, "film": {}, "films": {}, "top": {}, "rated": {},
}

// tokenSimilarity averages, over query tokens, the best edit similarity
// against any field token.
func tokenSimilarity(q, field string) float64 {
	qTokens := contentTokens(strings.Fields(q))
	fTokens := strings.Fields(field)
	if len(qTokens) == 0 || len(fTokens) == 0 {
		return 0
	}

	var sum float64
	for _, qt := range qTokens {
		best := 0.0
		for _, ft := range fTokens {
			if s := stringSimilarity(qt, ft); s > best {
				best = s
			}
		}
		sum += best
	}
	return sum / float64(len(qTokens))
}

// contentTokens drops stopwords, unless that would empty the query.
func contentTokens(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, stop := stopwords[t]; !stop {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return tokens
	}
	return kept
}
