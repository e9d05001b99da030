package reelchat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/reelchat/reelchat/internal/domain"
)

// Embedder is the public embedding backend contract for embedded use.
// Implementations return a fixed-dimension vector for the text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Option configures the embedded client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type openAIConfig struct {
	apiKey     string
	baseURL    string
	model      string
	dimensions int
	timeout    time.Duration
}

type clientConfig struct {
	catalogPath string
	catalogJSON []byte
	embedder    Embedder
	openAI      *openAIConfig
	logger      *zap.Logger
	threshold   float64
	listSize    int
	seed        int64
	hasSeed     bool
}

// WithCatalogPath loads the catalog from a JSON file.
func WithCatalogPath(path string) Option {
	return optionFunc(func(c *clientConfig) { c.catalogPath = path })
}

// WithCatalogJSON supplies the catalog as raw JSON.
func WithCatalogJSON(data []byte) Option {
	return optionFunc(func(c *clientConfig) { c.catalogJSON = data })
}

// WithEmbedder plugs in a custom embedding backend.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) { c.embedder = e })
}

// WithOpenAI uses an OpenAI-compatible embedding provider.
// baseURL may be empty for the default endpoint; dimensions 0 keeps the
// model default.
func WithOpenAI(apiKey, baseURL, model string, dimensions int, timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAI = &openAIConfig{
			apiKey:     apiKey,
			baseURL:    baseURL,
			model:      model,
			dimensions: dimensions,
			timeout:    timeout,
		}
	})
}

// WithLogger overrides the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) { c.logger = l })
}

// WithMatchThreshold overrides the lexical similarity cutoff.
func WithMatchThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) { c.threshold = t })
}

// WithListSize overrides how many records a recommendation lists.
func WithListSize(n int) Option {
	return optionFunc(func(c *clientConfig) { c.listSize = n })
}

// WithSeed fixes the phrasing RNG seed so responses are reproducible.
func WithSeed(seed int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.seed = seed
		c.hasSeed = true
	})
}

// embedderAdapter lifts the public Embedder into the internal contract.
type embedderAdapter struct {
	inner Embedder
}

func (a embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	vec, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{Embedding: vec}, nil
}
