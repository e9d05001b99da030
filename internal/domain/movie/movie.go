package movie

import "fmt"

// Rating bounds declared by the catalog.
const (
	MinRating = 0.0
	MaxRating = 10.0
)

// Movie is a single catalog record (immutable value object).
type Movie struct {
	id          int
	title       string
	category    string
	rating      float64
	year        int
	director    string
	description string
}

// New validates and creates a Movie.
// Title and Category are required; Rating must stay within [MinRating, MaxRating].
// Director and Description may be empty.
func New(id int, title, category string, rating float64, year int, director, description string) (Movie, error) {
	if title == "" {
		return Movie{}, fmt.Errorf("movie %d: title is required", id)
	}
	if category == "" {
		return Movie{}, fmt.Errorf("movie %d: category is required", id)
	}
	if rating < MinRating || rating > MaxRating {
		return Movie{}, fmt.Errorf("movie %d: rating %.2f out of range [%.0f, %.0f]", id, rating, MinRating, MaxRating)
	}
	return Movie{
		id:          id,
		title:       title,
		category:    category,
		rating:      rating,
		year:        year,
		director:    director,
		description: description,
	}, nil
}

// Reconstruct creates a Movie from trusted storage without validation.
func Reconstruct(id int, title, category string, rating float64, year int, director, description string) Movie {
	return Movie{
		id:          id,
		title:       title,
		category:    category,
		rating:      rating,
		year:        year,
		director:    director,
		description: description,
	}
}

// ID returns the unique record identifier.
func (m Movie) ID() int { return m.id }

// Title returns the movie title.
func (m Movie) Title() string { return m.title }

// Category returns the movie category.
func (m Movie) Category() string { return m.category }

// Rating returns the numeric score within the catalog bounds.
func (m Movie) Rating() float64 { return m.rating }

// Year returns the release year.
func (m Movie) Year() int { return m.year }

// Director returns the movie director (may be empty).
func (m Movie) Director() string { return m.director }

// Description returns the free-text description (may be empty).
func (m Movie) Description() string { return m.description }

// IsZero reports whether the movie is the zero value.
func (m Movie) IsZero() bool { return m.id == 0 && m.title == "" }
