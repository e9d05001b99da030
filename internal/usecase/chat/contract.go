package chat

import (
	"context"

	domintent "github.com/reelchat/reelchat/internal/domain/intent"
	"github.com/reelchat/reelchat/internal/domain/movie"
	"github.com/reelchat/reelchat/internal/usecase/semantic"
)

// CatalogReader is the record source for the orchestrator.
type CatalogReader interface {
	All() []movie.Movie
	Len() int
	Categories() []string
	FindExact(title string) (movie.Movie, bool)
	CanonicalCategory(category string) (string, bool)
	ByCategory(category string) []movie.Movie
}

// Matcher resolves free text against records and string lists.
type Matcher interface {
	Search(query string, limit int) []movie.Movie
	Best(query string) (movie.Movie, bool)
	Closest(candidate string, options []string) (string, float64, bool)
}

// Ranker is the semantic ranking capability. All methods fail soft.
type Ranker interface {
	Available() bool
	EmbedQuery(ctx context.Context, text string) ([]float32, bool)
	Rank(queryVec []float32, topK int) []semantic.Ranked
}

// Classifier maps utterances to intents and sentiment.
type Classifier interface {
	Classify(utterance string) domintent.Intent
	Sentiment(utterance string) domintent.Sentiment
}
