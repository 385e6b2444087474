package catalog

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var ErrMalformed = errors.New("catalog: malformed document")

// Catalog is the immutable set of movies loaded for a session.
type Catalog struct {
	movies []Movie
	byID   map[string]int
}

// New builds a catalog over a private copy of movies.
func New(movies []Movie) Catalog {
	c := Catalog{
		movies: append([]Movie(nil), movies...),
		byID:   make(map[string]int, len(movies)),
	}
	for i := range c.movies {
		if _, dup := c.byID[c.movies[i].ID]; dup {
			continue
		}
		c.byID[c.movies[i].ID] = i
	}
	return c
}

// Movies returns a copy of the catalog in its original order.
func (c Catalog) Movies() []Movie {
	return append([]Movie(nil), c.movies...)
}

func (c Catalog) Len() int { return len(c.movies) }

// ByID looks up a movie by its id. When ids repeat the first record wins.
func (c Catalog) ByID(id string) (Movie, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Movie{}, false
	}
	return c.movies[i], true
}

// Decode parses a catalog document. A well-formed document that is not an
// array decodes to an empty catalog.
func Decode(data []byte) ([]Movie, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformed)
	}
	if trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, ErrMalformed
		}
		return []Movie{}, nil
	}

	var movies []Movie
	if err := json.Unmarshal(trimmed, &movies); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if movies == nil {
		movies = []Movie{}
	}
	return movies, nil
}
