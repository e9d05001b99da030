package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reelchat/reelchat/internal/domain/movie"
)

// Catalog is the immutable movie record set, loaded once at startup.
// Safe for concurrent readers; never mutated after construction.
type Catalog struct {
	movies      []movie.Movie
	categories  []string            // first-occurrence order
	byTitle     map[string]int      // lowercased title -> index into movies
	categorySet map[string]struct{} // lowercased categories
}

// Load reads a JSON array of records from path and builds a Catalog.
// Duplicate IDs and invalid records reject the whole load.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Catalog from raw JSON. An empty array is a valid catalog.
func Parse(data []byte) (*Catalog, error) {
	var dtos []movieDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	movies := make([]movie.Movie, 0, len(dtos))
	seenIDs := make(map[int]struct{}, len(dtos))
	for i, d := range dtos {
		m, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seenIDs[m.ID()]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %d", i, m.ID())
		}
		seenIDs[m.ID()] = struct{}{}
		movies = append(movies, m)
	}

	return New(movies), nil
}

// New builds a Catalog from already-validated movies, preserving order.
func New(movies []movie.Movie) *Catalog {
	c := &Catalog{
		movies:      movies,
		byTitle:     make(map[string]int, len(movies)),
		categorySet: make(map[string]struct{}),
	}
	for i, m := range movies {
		key := strings.ToLower(m.Title())
		if _, exists := c.byTitle[key]; !exists {
			c.byTitle[key] = i
		}
		catKey := strings.ToLower(m.Category())
		if _, exists := c.categorySet[catKey]; !exists {
			c.categorySet[catKey] = struct{}{}
			c.categories = append(c.categories, m.Category())
		}
	}
	return c
}

// All returns every record in insertion order.
func (c *Catalog) All() []movie.Movie {
	out := make([]movie.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.movies) }

// Categories returns unique categories in order of first occurrence.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// HasCategory reports whether the catalog contains the category, case-insensitive.
func (c *Catalog) HasCategory(category string) bool {
	_, ok := c.categorySet[strings.ToLower(category)]
	return ok
}

// CanonicalCategory returns the catalog's spelling of a category matched
// case-insensitively.
func (c *Catalog) CanonicalCategory(category string) (string, bool) {
	want := strings.ToLower(category)
	for _, cat := range c.categories {
		if strings.ToLower(cat) == want {
			return cat, true
		}
	}
	return "", false
}

// FindExact returns the record whose title equals the argument, case-insensitive.
func (c *Catalog) FindExact(title string) (movie.Movie, bool) {
	i, ok := c.byTitle[strings.ToLower(strings.TrimSpace(title))]
	if !ok {
		return movie.Movie{}, false
	}
	return c.movies[i], true
}

// ByCategory returns records of the given category (case-insensitive),
// insertion order preserved.
func (c *Catalog) ByCategory(category string) []movie.Movie {
	want := strings.ToLower(category)
	var out []movie.Movie
	for _, m := range c.movies {
		if strings.ToLower(m.Category()) == want {
			out = append(out, m)
		}
	}
	return out
}
