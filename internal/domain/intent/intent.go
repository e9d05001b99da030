package intent

// Kind is the classified purpose of a user utterance.
type Kind string

// Intent kinds, closed enumeration. Classification rules are evaluated in
// priority order; Unknown is the terminal fallback.
const (
	Greeting   Kind = "greeting"
	Quote      Kind = "quote"
	Rating     Kind = "rating"
	Recommend  Kind = "recommend"
	Mood       Kind = "mood"
	GenreList  Kind = "genre_list"
	Comparison Kind = "comparison"
	Detail     Kind = "specific_detail"
	Search     Kind = "search"
	Unknown    Kind = "unknown"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case Greeting, Quote, Rating, Recommend, Mood, GenreList,
		Comparison, Detail, Search, Unknown:
		return true
	}
	return false
}

// Sentiment is the tone of an utterance, independent of its intent.
type Sentiment string

// Sentiment values. Ties and no-matches resolve to Neutral.
const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Intent is a classified utterance with rule-specific extracted parameters
// (immutable value object).
type Intent struct {
	kind       Kind
	confidence float64
	title      string
	category   string
	moods      []string
}

// New creates an Intent with extracted parameters.
func New(kind Kind, confidence float64, title, category string, moods []string) Intent {
	return Intent{
		kind:       kind,
		confidence: confidence,
		title:      title,
		category:   category,
		moods:      moods,
	}
}

// Kind returns the classified intent kind.
func (i Intent) Kind() Kind { return i.kind }

// Confidence returns the match strength of the winning rule.
func (i Intent) Confidence() float64 { return i.confidence }

// Title returns the raw title candidate extracted from the utterance
// (empty when the rule extracts none). It still needs lexical resolution.
func (i Intent) Title() string { return i.title }

// Category returns the category literal found in the utterance, if any.
func (i Intent) Category() string { return i.category }

// Moods returns the mood keywords matched in the utterance.
func (i Intent) Moods() []string { return i.moods }
