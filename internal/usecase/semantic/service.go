package semantic

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/reelchat/reelchat/internal/domain"
	"github.com/reelchat/reelchat/internal/domain/movie"
	logpkg "github.com/reelchat/reelchat/internal/logger"
)

// CatalogReader is the record source for the ranker.
type CatalogReader interface {
	All() []movie.Movie
}

// Ranked pairs a record with its similarity score.
type Ranked struct {
	Movie movie.Movie
	Score float64
}

// Service ranks records by embedding-space similarity to a query.
// The vector cache is built once per session and read thereafter: safe for
// concurrent readers, not intended for concurrent writers.
type Service struct {
	catalog CatalogReader
	embed   domain.Embedder // nil disables semantic ranking entirely
	logger  *zap.Logger

	mu      sync.RWMutex
	vectors map[int][]float32 // movie ID -> unit-normalized vector
	order   map[int]int       // movie ID -> catalog position, for tie-breaks
	dims    int               // fixed per session, set by the first cached vector
}

// New creates a semantic ranker. embed may be nil, which leaves the ranker
// permanently unavailable — a valid, non-error state.
func New(catalog CatalogReader, embed domain.Embedder, logger *zap.Logger) *Service {
	s := &Service{
		catalog: catalog,
		embed:   embed,
		logger:  logger,
		vectors: make(map[int][]float32),
		order:   make(map[int]int),
	}
	for i, m := range catalog.All() {
		s.order[m.ID()] = i
	}
	return s
}

// Available reports whether semantic ranking can produce results this
// session. False means "feature unavailable", not "no results".
func (s *Service) Available() bool {
	if s.embed == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors) > 0
}

// BuildCache embeds every record's concatenated text and populates the
// vector cache. Individual failures leave that record uncached rather than
// aborting the batch. Never returns an error: a fully failed build simply
// leaves the ranker unavailable.
func (s *Service) BuildCache(ctx context.Context) {
	log := logpkg.FromContext(ctx, s.logger)
	if s.embed == nil {
		log.Info("Semantic ranking disabled: no embedder configured")
		return
	}

	movies := s.catalog.All()
	if len(movies) == 0 {
		return
	}

	texts := make([]string, len(movies))
	for i, m := range movies {
		texts[i] = recordText(m)
	}

	if be, ok := s.embed.(domain.BatchEmbedder); ok {
		res, err := be.BatchEmbed(ctx, texts)
		if err == nil && len(res.Embeddings) == len(movies) {
			for i, m := range movies {
				s.put(m, res.Embeddings[i])
			}
			log.Info("Semantic vector cache built",
				zap.Int("records", len(movies)),
				zap.Int("cached", s.cachedCount()),
			)
			return
		}
		if err != nil {
			log.Warn("Batch embedding failed, falling back to per-record", zap.Error(err))
		}
	}

	// Per-record path: each failure only skips that record.
	for i, m := range movies {
		res, err := s.embed.Embed(ctx, texts[i])
		if err != nil {
			log.Warn("Failed to embed record",
				zap.Int("movie_id", m.ID()),
				zap.String("title", m.Title()),
				zap.Error(err),
			)
			continue
		}
		s.put(m, res.Embedding)
	}

	log.Info("Semantic vector cache built",
		zap.Int("records", len(movies)),
		zap.Int("cached", s.cachedCount()),
	)
}

// EmbedQuery vectorizes a query string. Fails soft: any backend error is
// logged and reported as unavailable, never propagated.
func (s *Service) EmbedQuery(ctx context.Context, text string) ([]float32, bool) {
	if s.embed == nil {
		return nil, false
	}
	log := logpkg.FromContext(ctx, s.logger)
	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		log.Warn("Query embedding failed", zap.Error(err))
		return nil, false
	}
	if err := s.checkDims(res.Embedding); err != nil {
		log.Warn("Query vector rejected", zap.Error(err))
		return nil, false
	}
	return domain.Normalize(res.Embedding), true
}

// Rank orders cached records by cosine similarity to the query vector
// (dot product under the unit-norm contract), descending. Ties keep catalog
// order. Records without a cached vector are silently excluded, never
// treated as score zero. An empty cache yields an empty sequence.
func (s *Service) Rank(queryVec []float32, topK int) []Ranked {
	if len(queryVec) == 0 || topK <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.vectors) == 0 {
		return nil
	}

	var out []Ranked
	for _, m := range s.catalog.All() {
		vec, ok := s.vectors[m.ID()]
		if !ok || len(vec) != len(queryVec) {
			continue
		}
		out = append(out, Ranked{Movie: m, Score: domain.Dot(queryVec, vec)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return s.order[out[i].Movie.ID()] < s.order[out[j].Movie.ID()]
	})

	if len(out) > topK {
		out = out[:topK]
	}
	return out
}

// put caches a record vector. Dimension mismatches against the session's
// fixed dimension leave the record uncached.
func (s *Service) put(m movie.Movie, vec []float32) {
	if len(vec) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dims == 0 {
		s.dims = len(vec)
	} else if len(vec) != s.dims {
		s.logger.Warn("Record vector rejected",
			zap.Int("movie_id", m.ID()),
			zap.Int("got_dims", len(vec)),
			zap.Int("want_dims", s.dims),
		)
		return
	}

	s.vectors[m.ID()] = domain.Normalize(vec)
}

func (s *Service) checkDims(vec []float32) error {
	if len(vec) == 0 {
		return fmt.Errorf("empty vector: %w", domain.ErrEmbeddingProviderError)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dims != 0 && len(vec) != s.dims {
		return fmt.Errorf("got %d dims, session uses %d: %w",
			len(vec), s.dims, domain.ErrVectorDimMismatch)
	}
	return nil
}

func (s *Service) cachedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// recordText is the embedded representation of a record: concatenated
// title, category, and description.
func recordText(m movie.Movie) string {
	return fmt.Sprintf("%s. %s. %s", m.Title(), m.Category(), m.Description())
}
