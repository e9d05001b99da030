package catalog

import (
	"fmt"

	"github.com/reelchat/reelchat/internal/domain/movie"
)

// movieDTO is the on-disk JSON shape of a catalog record.
type movieDTO struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	Year        int     `json:"year"`
	Director    string  `json:"director"`
	Description string  `json:"description"`
}

func (d movieDTO) toDomain() (movie.Movie, error) {
	m, err := movie.New(d.ID, d.Title, d.Category, d.Rating, d.Year, d.Director, d.Description)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("catalog record: %w", err)
	}
	return m, nil
}
