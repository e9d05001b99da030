package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/reelchat/reelchat/internal/domain"
	domintent "github.com/reelchat/reelchat/internal/domain/intent"
	"github.com/reelchat/reelchat/internal/domain/movie"
	"github.com/reelchat/reelchat/internal/metrics"
	intentuc "github.com/reelchat/reelchat/internal/usecase/intent"
)

// DefaultListSize is N: how many records a recommendation reply lists.
// The semantic candidate pool takes 2N before filtering.
const DefaultListSize = 5

// maxSuggestions caps the did-you-mean list for unresolved titles.
const maxSuggestions = 3

// Service is the top-level entry point tying classification, lexical
// matching, and semantic ranking into a user-facing response string.
// Respond always returns a string; every internal failure recovers here.
type Service struct {
	catalog    CatalogReader
	matcher    Matcher
	ranker     Ranker
	classifier Classifier
	logger     *zap.Logger
	listSize   int
	moodTable  map[string]string
}

// New creates the orchestrator. The mood table must cover the classifier's
// whole mood vocabulary; a gap is a programming error caught at startup.
func New(
	catalog CatalogReader, matcher Matcher, ranker Ranker,
	classifier Classifier, logger *zap.Logger,
) (*Service, error) {
	moodTable := map[string]string{
		"happy":    "Animation",
		"sad":      "Drama",
		"excited":  "Action",
		"relaxed":  "Romance",
		"bored":    "Adventure",
		"romantic": "Romance",
		"scared":   "Horror",
	}
	for _, kw := range intentuc.MoodKeywords() {
		if _, ok := moodTable[kw]; !ok {
			return nil, fmt.Errorf("mood table missing entry for %q", kw)
		}
	}

	return &Service{
		catalog:    catalog,
		matcher:    matcher,
		ranker:     ranker,
		classifier: classifier,
		logger:     logger,
		listSize:   DefaultListSize,
		moodTable:  moodTable,
	}, nil
}

// WithListSize overrides N for recommendation replies.
func (s *Service) WithListSize(n int) *Service {
	if n > 0 {
		s.listSize = n
	}
	return s
}

// Respond produces the reply for one utterance. The contract is "always
// returns a string": NotFound becomes a suggestion-bearing message, backend
// failures degrade to lexical strategies, malformed input routes to the
// fixed help text.
func (s *Service) Respond(ctx context.Context, utterance string, sess *Session) string {
	it := s.classifier.Classify(utterance)
	sentiment := s.classifier.Sentiment(utterance)

	metrics.ChatRequestsTotal.WithLabelValues(string(it.Kind())).Inc()
	s.logger.Debug("Utterance classified",
		zap.String("intent", string(it.Kind())),
		zap.Float64("confidence", it.Confidence()),
		zap.String("sentiment", string(sentiment)),
	)

	// answered distinguishes a real answer from a fallback (help text,
	// suggestions, clarifying prompts); only real answers take a tone lead.
	var reply string
	answered := false
	switch it.Kind() {
	case domintent.Greeting:
		reply = s.greet(sess)
	case domintent.Quote:
		reply, answered = s.quote(it, sess)
	case domintent.Rating:
		reply, answered = s.rating(it)
	case domintent.Recommend:
		reply, answered = s.recommend(ctx, utterance, it)
	case domintent.Mood:
		reply, answered = s.mood(it)
	case domintent.GenreList:
		reply, answered = s.genreList()
	case domintent.Comparison:
		reply, answered = s.compare(it)
	case domintent.Detail:
		reply, answered = s.detail(it)
	case domintent.Search:
		reply = s.lexical(it)
	default:
		reply = HelpText
	}

	if answered {
		reply = s.applyTone(reply, sentiment, sess)
	}
	sess.Record(utterance, reply)
	return reply
}

// Categories lists the known categories for callers.
func (s *Service) Categories() []string {
	return s.catalog.Categories()
}

// MoviesByCategory lists one category's records, top-rated first. The
// category is matched case-insensitively against the catalog.
func (s *Service) MoviesByCategory(category string) ([]movie.Movie, error) {
	canonical, ok := s.catalog.CanonicalCategory(category)
	if !ok {
		return nil, fmt.Errorf("browse %q: %w", category, domain.ErrCategoryNotFound)
	}
	return sortByRating(s.catalog.ByCategory(canonical)), nil
}

// Lookup resolves a title (exact, then fuzzy) to a formatted detail string.
func (s *Service) Lookup(title string) (string, error) {
	m, ok := s.resolveTitle(title)
	if !ok {
		return "", fmt.Errorf("lookup %q: %w", title, domain.ErrTitleNotFound)
	}
	return formatDetail(m), nil
}

var greetings = []string{
	"Hello! I'm your movie assistant. Ask me about ratings, recommendations, or genres.",
	"Hi there! I can look up movie ratings, recommend films, or list genres for you.",
}

var followUps = []string{
	"What else would you like to know?",
	"Anything else about movies?",
}

func (s *Service) greet(sess *Session) string {
	if sess.FirstTurn() {
		return greetings[sess.pick(len(greetings))]
	}
	return followUps[sess.pick(len(followUps))]
}

var quoteLines = []string{
	"I don't have a quote database, but %s is worth watching for its lines alone.",
	"No licensed quotes here, sadly. %s is a good pick if you enjoy quotable films.",
}

func (s *Service) quote(it domintent.Intent, sess *Session) (string, bool) {
	if m, ok := s.resolveTitle(it.Title()); ok {
		return fmt.Sprintf(quoteLines[sess.pick(len(quoteLines))], m.Title()), true
	}
	return "I don't have a quote database. Ask me about ratings, recommendations, or genres instead.", false
}

func (s *Service) rating(it domintent.Intent) (string, bool) {
	if strings.TrimSpace(it.Title()) == "" {
		return "Which movie's rating would you like to know?", false
	}
	m, ok := s.resolveTitle(it.Title())
	if !ok {
		return s.suggestTitles(it.Title()), false
	}
	return formatRating(m), true
}

func (s *Service) detail(it domintent.Intent) (string, bool) {
	if strings.TrimSpace(it.Title()) == "" {
		return "Which movie would you like to know about?", false
	}
	m, ok := s.resolveTitle(it.Title())
	if !ok {
		return s.suggestTitles(it.Title()), false
	}
	return formatDetail(m), true
}

// recommend builds the result set by layering strategies: semantic
// candidate pool when available, category filter when a category resolves,
// rating sort as the final pass.
func (s *Service) recommend(ctx context.Context, utterance string, it domintent.Intent) (string, bool) {
	if s.catalog.Len() == 0 {
		return HelpText, false
	}

	pool := s.catalog.All()
	strategy := StrategyDefault

	if s.ranker.Available() && strings.TrimSpace(utterance) != "" {
		if vec, ok := s.ranker.EmbedQuery(ctx, utterance); ok {
			if ranked := s.ranker.Rank(vec, 2*s.listSize); len(ranked) > 0 {
				pool = make([]movie.Movie, len(ranked))
				for i, r := range ranked {
					pool[i] = r.Movie
				}
				strategy = StrategySemantic
			}
		}
	}

	if cat := it.Category(); cat != "" {
		canonical, ok := s.catalog.CanonicalCategory(cat)
		switch {
		case ok:
			filtered := filterByCategory(pool, canonical)
			if len(filtered) == 0 {
				// Semantic pool missed the category entirely; fall back to
				// the unfiltered category-only set.
				filtered = s.catalog.ByCategory(canonical)
				strategy = StrategyCategory
			} else if strategy != StrategySemantic {
				strategy = StrategyCategory
			}
			pool = filtered
		default:
			if reply, near := s.suggestCategory(cat); near {
				return reply, false
			}
			// The candidate resembles no known category; treat the request
			// as unqualified and keep the full pool.
		}
	}

	if len(pool) == 0 {
		return HelpText, false
	}

	top := truncate(sortByRating(pool), s.listSize)
	metrics.ChatStrategyTotal.WithLabelValues(strategy).Inc()
	return formatList("Here are my picks:", top, strategy), true
}

func (s *Service) mood(it domintent.Intent) (string, bool) {
	moods := it.Moods()
	if len(moods) == 0 {
		return "Tell me how you're feeling — happy, sad, excited, relaxed — and I'll pick something.", false
	}

	category := s.moodTable[moods[0]]
	picks := s.catalog.ByCategory(category)
	if len(picks) == 0 {
		// Catalog has nothing in the mapped category; fall back to the
		// overall top-rated list.
		top := truncate(sortByRating(s.catalog.All()), s.listSize)
		if len(top) == 0 {
			return HelpText, false
		}
		return formatList(
			fmt.Sprintf("Nothing tagged %s right now, but these are worth a look:", category),
			top, StrategyDefault,
		), true
	}

	top := truncate(sortByRating(picks), s.listSize)
	metrics.ChatStrategyTotal.WithLabelValues(StrategyCategory).Inc()
	return formatList(
		fmt.Sprintf("Feeling %s? %s should fit:", moods[0], category),
		top, StrategyCategory,
	), true
}

func (s *Service) genreList() (string, bool) {
	cats := s.catalog.Categories()
	if len(cats) == 0 {
		return HelpText, false
	}
	return "I know these genres: " + strings.Join(cats, ", ") + ".", true
}

// comparison connectors, checked in order against the normalized utterance.
var comparisonSplits = []string{" vs ", " versus ", " better than ", " compared to ", " or ", " and "}

func (s *Service) compare(it domintent.Intent) (string, bool) {
	text := it.Title()
	for _, sep := range comparisonSplits {
		left, right, found := strings.Cut(text, sep)
		if !found {
			continue
		}
		left = strings.TrimPrefix(strings.TrimSpace(left), "compare ")
		a, okA := s.resolveTitle(left)
		b, okB := s.resolveTitle(strings.TrimSpace(right))
		if !okA || !okB {
			continue
		}
		if a.Rating() == b.Rating() {
			return fmt.Sprintf("Dead heat: %s and %s are both rated %.1f/10.",
				a.Title(), b.Title(), a.Rating()), true
		}
		hi, lo := a, b
		if b.Rating() > a.Rating() {
			hi, lo = b, a
		}
		return fmt.Sprintf("%s edges it: %.1f/10 against %s's %.1f/10.",
			hi.Title(), hi.Rating(), lo.Title(), lo.Rating()), true
	}
	return "Name two movies to compare, e.g. \"compare Inception and Titanic\".", false
}

func (s *Service) lexical(it domintent.Intent) string {
	found := s.matcher.Search(it.Title(), maxSuggestions)
	if len(found) == 0 {
		return HelpText
	}
	if len(found) == 1 {
		return formatDetail(found[0])
	}
	return formatList("Here's what I found:", found, StrategyDefault)
}

// resolveTitle tries a case-insensitive exact match first, then the fuzzy
// matcher.
func (s *Service) resolveTitle(candidate string) (movie.Movie, bool) {
	if strings.TrimSpace(candidate) == "" {
		return movie.Movie{}, false
	}
	if m, ok := s.catalog.FindExact(candidate); ok {
		return m, true
	}
	return s.matcher.Best(candidate)
}

// suggestTitles falls back to up to three lexically similar titles, then
// the generic help text.
func (s *Service) suggestTitles(candidate string) string {
	similar := s.matcher.Search(candidate, maxSuggestions)
	if len(similar) == 0 {
		return HelpText
	}
	return formatSuggestions(candidate, similar)
}

// suggestCategory answers "category not found, did you mean X" using the
// matcher's suggestion against the category list. Reports false when the
// candidate near-matches nothing.
func (s *Service) suggestCategory(candidate string) (string, bool) {
	nearest, _, ok := s.matcher.Closest(candidate, s.catalog.Categories())
	if !ok {
		return "", false
	}
	return fmt.Sprintf("I don't know the genre %q. Did you mean %s?", candidate, nearest), true
}

var positiveLead = []string{"Glad to hear it! ", "Love the enthusiasm! "}
var negativeLead = []string{"Sorry to hear that. ", "Let's find something better. "}

// applyTone prefixes a sentiment-flavored lead. Only answered replies get
// one; fallbacks, suggestions, and the fixed help text stay byte-identical.
func (s *Service) applyTone(
	reply string, sentiment domintent.Sentiment, sess *Session,
) string {
	switch sentiment {
	case domintent.Positive:
		return positiveLead[sess.pick(len(positiveLead))] + reply
	case domintent.Negative:
		return negativeLead[sess.pick(len(negativeLead))] + reply
	default:
		return reply
	}
}

func filterByCategory(movies []movie.Movie, category string) []movie.Movie {
	var out []movie.Movie
	for _, m := range movies {
		if strings.EqualFold(m.Category(), category) {
			out = append(out, m)
		}
	}
	return out
}
