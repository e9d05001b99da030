// Package reelchat provides an embedded movie-chat query engine: intent
// classification, fuzzy lexical matching, and embedding-based semantic
// ranking over a static movie catalog, producing chat-ready response text.
//
//	client, err := reelchat.New(ctx,
//	    reelchat.WithCatalogPath("config/catalog.json"),
//	    reelchat.WithSeed(1),
//	)
//	sess := client.NewSession()
//	reply := client.Respond(ctx, "What's the rating of Inception?", sess)
package reelchat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/reelchat/reelchat/internal/domain"
	"github.com/reelchat/reelchat/internal/repository/catalog"
	openaiEmb "github.com/reelchat/reelchat/internal/transport/openai"
	chatuc "github.com/reelchat/reelchat/internal/usecase/chat"
	intentuc "github.com/reelchat/reelchat/internal/usecase/intent"
	matchuc "github.com/reelchat/reelchat/internal/usecase/match"
	semanticuc "github.com/reelchat/reelchat/internal/usecase/semantic"
)

// Client is the embedded engine entry point. Construct once per catalog;
// sessions are cheap and independent.
type Client struct {
	chat   *chatuc.Service
	ranker *semanticuc.Service
	seed   int64
	seeded bool
}

// Session holds one conversation's state. Not safe for concurrent use.
type Session struct {
	inner *chatuc.Session
}

// New builds the engine: loads the catalog, wires matcher, classifier, and
// semantic ranker, and builds the vector cache when an embedder is
// configured. The provided context bounds the initial cache build.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{logger: zap.NewNop()}
	for _, o := range opts {
		o.apply(cfg)
	}

	var cat *catalog.Catalog
	var err error
	switch {
	case cfg.catalogJSON != nil:
		cat, err = catalog.Parse(cfg.catalogJSON)
	case cfg.catalogPath != "":
		cat, err = catalog.Load(cfg.catalogPath)
	default:
		return nil, fmt.Errorf("a catalog is required: use WithCatalogPath or WithCatalogJSON")
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	matcher := matchuc.New(cat).WithThreshold(cfg.threshold)

	var embedder domain.Embedder
	switch {
	case cfg.embedder != nil:
		embedder = embedderAdapter{inner: cfg.embedder}
	case cfg.openAI != nil:
		embedder = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.openAI.apiKey,
			BaseURL:    cfg.openAI.baseURL,
			Model:      cfg.openAI.model,
			Dimensions: cfg.openAI.dimensions,
			Timeout:    cfg.openAI.timeout,
			Provider:   "openai",
			Logger:     cfg.logger,
		})
	}

	ranker := semanticuc.New(cat, embedder, cfg.logger)
	ranker.BuildCache(ctx)

	chatSvc, err := chatuc.New(cat, matcher, ranker, intentuc.New(cat), cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("build chat service: %w", err)
	}
	chatSvc.WithListSize(cfg.listSize)

	return &Client{
		chat:   chatSvc,
		ranker: ranker,
		seed:   cfg.seed,
		seeded: cfg.hasSeed,
	}, nil
}

// NewSession starts a fresh conversation. With WithSeed, every session
// reproduces the same phrasing choices.
func (c *Client) NewSession() *Session {
	seed := c.seed
	if !c.seeded {
		seed = time.Now().UnixNano()
	}
	return &Session{inner: chatuc.NewSession(seed)}
}

// Respond answers one utterance within the session. Always returns a
// string; backend failures degrade to lexical strategies internally.
func (c *Client) Respond(ctx context.Context, utterance string, sess *Session) string {
	return c.chat.Respond(ctx, utterance, sess.inner)
}

// Categories lists the catalog's genres in first-occurrence order.
func (c *Client) Categories() []string {
	return c.chat.Categories()
}

// Lookup resolves a title (exact, then fuzzy) to a formatted detail string.
func (c *Client) Lookup(title string) (string, error) {
	return c.chat.Lookup(title)
}

// SemanticAvailable reports whether embedding-based ranking is active.
func (c *Client) SemanticAvailable() bool {
	return c.ranker.Available()
}
