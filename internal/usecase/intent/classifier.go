package intent

import (
	"regexp"
	"strings"

	domintent "github.com/reelchat/reelchat/internal/domain/intent"
)

// Rule confidences. Values carried over from the tuned originals; treat as
// tunable constants, not derived quantities.
const (
	ConfidenceGreeting = 0.9
	ConfidenceKeyword  = 0.7
	ConfidenceFallback = 0.4
)

// CategoryReader supplies the known category names for literal extraction.
type CategoryReader interface {
	Categories() []string
}

// Classifier maps a raw utterance to an Intent via an ordered rule table.
// First matching rule wins; rules are not scored against each other.
type Classifier struct {
	categories CategoryReader
}

// New creates a classifier over the given category source.
func New(categories CategoryReader) *Classifier {
	return &Classifier{categories: categories}
}

var (
	greetingRe   = regexp.MustCompile(`^(hi|hello|hey|yo|greetings|good (morning|afternoon|evening))\b`)
	quoteRe      = regexp.MustCompile(`\bquote(s)?\b|\bfamous line\b`)
	ratingRe     = regexp.MustCompile(`\brating\b|\brated\b|\bscore\b|\bhow good is\b|\bout of (10|ten)\b`)
	recommendRe  = regexp.MustCompile(`\brecommend\b|\bsuggest\b|\bwhat should i watch\b|\btop\b|\bbest\b`)
	moodRe       = regexp.MustCompile(`\bmood\b|\bfeel(ing)?\b|\bi am (happy|sad|excited|relaxed|bored)\b`)
	genreListRe  = regexp.MustCompile(`\b(what|which|list|show me)\b.*\b(genres|categories|kinds of movies)\b|^genres$|^categories$`)
	comparisonRe = regexp.MustCompile(`\bcompare\b|\bversus\b|\bvs\b|\bbetter than\b`)
	detailRe     = regexp.MustCompile(`\btell me about\b|\bwhat is\b|\bwho directed\b|\bwhen was\b|\babout\b|\bdetails\b`)
)

// moodKeywords is the closed mood vocabulary; the orchestrator owns the
// mood-to-category mapping.
var moodKeywords = []string{"happy", "sad", "excited", "relaxed", "bored", "romantic", "scared"}

// MoodKeywords returns the closed mood vocabulary. The orchestrator checks
// its mood-to-category table against this list at construction.
func MoodKeywords() []string {
	return append([]string(nil), moodKeywords...)
}

// leadPhrases are question openers stripped before treating the remainder
// as a raw title candidate. Longest first, so broader phrases win.
var leadPhrases = []string{
	"what is the rating of",
	"what is the rating for",
	"how good is the movie",
	"what is the score of",
	"can you tell me about",
	"tell me more about",
	"who is the director of",
	"tell me about",
	"what is the rating",
	"how good is",
	"who directed",
	"when was",
	"what is",
	"what about",
	"about",
	"rating of",
	"rating for",
	"details on",
	"details of",
}

// Classify maps a raw user utterance to an Intent. Empty and
// whitespace-only input classifies as Unknown (malformed-input policy).
func (c *Classifier) Classify(utterance string) domintent.Intent {
	text := Normalize(utterance)
	if text == "" {
		return domintent.New(domintent.Unknown, 0, "", "", nil)
	}

	switch {
	case greetingRe.MatchString(text):
		return domintent.New(domintent.Greeting, ConfidenceGreeting, "", "", nil)

	case quoteRe.MatchString(text):
		return domintent.New(domintent.Quote, ConfidenceKeyword, extractTitle(text), "", nil)

	case ratingRe.MatchString(text):
		return domintent.New(domintent.Rating, ConfidenceKeyword, extractTitle(text), "", nil)

	case recommendRe.MatchString(text):
		return domintent.New(domintent.Recommend, ConfidenceKeyword, "", c.extractCategory(text), nil)

	case moodRe.MatchString(text):
		return domintent.New(domintent.Mood, ConfidenceKeyword, "", "", extractMoods(text))

	case genreListRe.MatchString(text):
		return domintent.New(domintent.GenreList, ConfidenceKeyword, "", "", nil)

	case comparisonRe.MatchString(text):
		return domintent.New(domintent.Comparison, ConfidenceKeyword, extractTitle(text), "", nil)

	case detailRe.MatchString(text):
		return domintent.New(domintent.Detail, ConfidenceKeyword, extractTitle(text), "", nil)

	default:
		// Lexical search fallback: the whole utterance is the candidate.
		return domintent.New(domintent.Search, ConfidenceFallback, text, "", nil)
	}
}

// Sentiment tags an utterance positive, negative, or neutral by counting
// matches against two fixed keyword lists. Ties and no-matches resolve to
// neutral. Independent of intent; used only to pick response tone.
func (c *Classifier) Sentiment(utterance string) domintent.Sentiment {
	text := Normalize(utterance)
	if text == "" {
		return domintent.Neutral
	}

	var pos, neg int
	for _, w := range positiveWords {
		if containsWord(text, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if containsWord(text, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return domintent.Positive
	case neg > pos:
		return domintent.Negative
	default:
		return domintent.Neutral
	}
}

var positiveWords = []string{
	"love", "great", "awesome", "amazing", "fantastic", "good", "excellent", "wonderful", "thanks", "thank",
}

var negativeWords = []string{
	"hate", "bad", "terrible", "awful", "boring", "worst", "horrible", "disappointing",
}

// contractions expanded during normalization so rule patterns only need the
// long forms.
var contractions = []struct{ from, to string }{
	{"what's", "what is"},
	{"who's", "who is"},
	{"where's", "where is"},
	{"how's", "how is"},
	{"it's", "it is"},
	{"that's", "that is"},
	{"i'm", "i am"},
	{"won't", "will not"},
	{"can't", "cannot"},
	{"n't", " not"},
	{"'ll", " will"},
	{"'ve", " have"},
	{"'re", " are"},
	{"'d", " would"},
}

var punctuationRe = regexp.MustCompile(`[-()"#/@;:<>{}` + "`" + `+=~|.!?,]`)

// Normalize lowercases, expands contractions, strips punctuation, and
// collapses whitespace.
func Normalize(utterance string) string {
	text := strings.ToLower(strings.TrimSpace(utterance))
	for _, c := range contractions {
		text = strings.ReplaceAll(text, c.from, c.to)
	}
	text = punctuationRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// extractTitle strips lead phrases and stopword tails, leaving a raw title
// candidate for lexical resolution. May return empty.
func extractTitle(text string) string {
	for _, lead := range leadPhrases {
		if strings.HasPrefix(text, lead+" ") {
			text = strings.TrimPrefix(text, lead+" ")
			break
		}
		if idx := strings.Index(text, " "+lead+" "); idx >= 0 {
			text = text[idx+len(lead)+2:]
			break
		}
	}
	text = strings.TrimPrefix(text, "the movie ")
	text = strings.TrimPrefix(text, "movie ")
	return strings.TrimSpace(text)
}

// extractCategory finds a known category name as a literal substring of the
// utterance, case-insensitive. Falls back to empty.
func (c *Classifier) extractCategory(text string) string {
	for _, cat := range c.categories.Categories() {
		// Compare in normalized space so "Sci-Fi" matches "sci fi" or "scifi".
		if strings.Contains(text, Normalize(cat)) {
			return cat
		}
	}
	// Grab the word after "top"/"best" as a candidate for fuzzy category
	// suggestion downstream, e.g. "recommend top noir movies".
	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if (tok == "top" || tok == "best" || tok == "some") && i+1 < len(tokens) {
			if cand := tokens[i+1]; isCategoryCandidate(cand) {
				return cand
			}
		}
	}
	return ""
}

// categoryFiller covers tokens that follow "top"/"best"/"some" in common
// phrasings without naming a genre ("top 5 movies", "some good movies").
var categoryFiller = map[string]struct{}{
	"movie": {}, "movies": {}, "film": {}, "films": {},
	"good": {}, "great": {}, "new": {}, "popular": {},
	"rated": {}, "really": {}, "ones": {}, "picks": {},
}

// isCategoryCandidate rejects counts and filler adjectives so only tokens
// that could plausibly name a genre reach the fuzzy suggester.
func isCategoryCandidate(tok string) bool {
	if _, filler := categoryFiller[tok]; filler {
		return false
	}
	for _, r := range tok {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

// extractMoods collects mood keywords present in the utterance.
func extractMoods(text string) []string {
	var moods []string
	for _, kw := range moodKeywords {
		if containsWord(text, kw) {
			moods = append(moods, kw)
		}
	}
	return moods
}

func containsWord(text, word string) bool {
	for _, tok := range strings.Fields(text) {
		if tok == word {
			return true
		}
	}
	return false
}
