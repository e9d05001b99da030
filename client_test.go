package reelchat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reelchat/reelchat/internal/domain"
)

const testCatalogJSON = `[
  {"id": 1, "title": "Inception", "category": "Sci-Fi", "rating": 8.8, "year": 2010,
   "director": "Christopher Nolan", "description": "Dream heists."},
  {"id": 2, "title": "Interstellar", "category": "Sci-Fi", "rating": 8.7, "year": 2014,
   "director": "Christopher Nolan", "description": "Wormhole voyage."},
  {"id": 3, "title": "Titanic", "category": "Romance", "rating": 7.9, "year": 1997,
   "director": "James Cameron", "description": "Doomed ocean liner."}
]`

// fakeEmbedder returns a deterministic 2-dim vector derived from the text.
type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	return []float32{1, float32(len(text)%7) / 10}, nil
}

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()

	opts = append([]Option{WithCatalogJSON([]byte(testCatalogJSON)), WithSeed(1)}, opts...)
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RequiresCatalog(t *testing.T) {
	if _, err := New(context.Background()); err == nil {
		t.Fatal("expected error without a catalog")
	}
}

func TestNew_RejectsBadCatalog(t *testing.T) {
	if _, err := New(context.Background(), WithCatalogJSON([]byte("not json"))); err == nil {
		t.Fatal("expected error for malformed catalog")
	}
}

func TestClient_RatingLookup(t *testing.T) {
	c := newTestClient(t)
	sess := c.NewSession()

	got := c.Respond(context.Background(), "What's the rating of Inception?", sess)
	want := "Inception is rated 8.8/10 (Sci-Fi, 2010)."
	if got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestClient_EmptyInputHelp(t *testing.T) {
	c := newTestClient(t)

	got := c.Respond(context.Background(), "", c.NewSession())
	if !strings.Contains(got, "I can help you explore movies") {
		t.Errorf("expected the help text, got %q", got)
	}
}

func TestClient_SemanticDisabledWithoutEmbedder(t *testing.T) {
	c := newTestClient(t)

	if c.SemanticAvailable() {
		t.Error("expected semantic ranking off without an embedder")
	}

	// Recommendation still works through the lexical strategies.
	got := c.Respond(context.Background(), "Recommend top Sci-Fi movies", c.NewSession())
	if !strings.Contains(got, "Inception") {
		t.Errorf("expected a category recommendation, got %q", got)
	}
}

func TestClient_WithEmbedder(t *testing.T) {
	embed := &fakeEmbedder{}
	c := newTestClient(t, WithEmbedder(embed))

	if !c.SemanticAvailable() {
		t.Fatal("expected semantic ranking with a custom embedder")
	}
	if embed.calls == 0 {
		t.Error("expected the cache build to call the embedder")
	}

	got := c.Respond(context.Background(), "recommend movies please", c.NewSession())
	if !strings.Contains(got, "[strategy: semantic]") {
		t.Errorf("expected the semantic strategy, got %q", got)
	}
}

func TestClient_SeededSessionsReproduce(t *testing.T) {
	c := newTestClient(t)

	first := c.Respond(context.Background(), "Hello", c.NewSession())
	second := c.Respond(context.Background(), "Hello", c.NewSession())
	if first != second {
		t.Errorf("seeded sessions diverged:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestClient_Categories(t *testing.T) {
	c := newTestClient(t)

	cats := c.Categories()
	if len(cats) != 2 || cats[0] != "Sci-Fi" || cats[1] != "Romance" {
		t.Errorf("categories = %v, want [Sci-Fi Romance]", cats)
	}
}

func TestClient_Lookup(t *testing.T) {
	c := newTestClient(t)

	detail, err := c.Lookup("inception")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(detail, "Inception (2010)") {
		t.Errorf("detail = %q", detail)
	}

	_, err = c.Lookup("zzzz qqqq")
	if !errors.Is(err, domain.ErrTitleNotFound) {
		t.Errorf("expected ErrTitleNotFound, got %v", err)
	}
}

func TestClient_ListSize(t *testing.T) {
	c := newTestClient(t, WithListSize(1))

	got := c.Respond(context.Background(), "Recommend top Sci-Fi movies", c.NewSession())
	if strings.Contains(got, "2.") {
		t.Errorf("expected a single entry, got %q", got)
	}
}
