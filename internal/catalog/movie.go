// Package catalog holds the movie catalog model and the pure views derived from it.
package catalog

import (
	"bytes"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Movie is a normalized catalog record. Records are never mutated after Normalize.
type Movie struct {
	ID           string
	Title        string
	ReleasedDate string
	Rating       float64

	// Genre is the raw comma-separated genre string as supplied.
	Genre string
	// Genres is the reconciled genre list: supplied genres first, then the
	// entries of Genre that were not already present.
	Genres []string

	Language string
	Category string

	PosterSmall  string
	PosterMedium string
	PosterLarge  string
	CardPicture  string
	CoverPicture string

	Description string
	TrailerURL  string
	Tagline     string

	year string
}

// Record is the catalog wire format of a single movie.
type Record struct {
	ID           flexString `json:"id"`
	Title        string     `json:"title"`
	Year         flexString `json:"year"`
	ReleasedDate string     `json:"released_date"`
	Rating       flexFloat  `json:"rating"`
	Genre        string     `json:"genre"`
	Genres       []string   `json:"genres"`
	Language     string     `json:"language"`
	Category     string     `json:"category"`
	PosterSmall  string     `json:"poster_small"`
	PosterMedium string     `json:"poster_medium"`
	PosterLarge  string     `json:"poster_large"`
	CardPicture  string     `json:"card_picture"`
	CoverPicture string     `json:"cover_picture"`
	Description  string     `json:"description"`
	TrailerURL   string     `json:"trailer_url"`
	Tagline      string     `json:"tagline"`
}

func (m *Movie) UnmarshalJSON(data []byte) error {
	var raw Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Normalize(&raw)
	return nil
}

// Normalize derives the release year and reconciles the two genre fields.
func Normalize(raw *Record) Movie {
	m := Movie{
		ID:           strings.TrimSpace(string(raw.ID)),
		Title:        raw.Title,
		ReleasedDate: strings.TrimSpace(raw.ReleasedDate),
		Rating:       float64(raw.Rating),
		Genre:        raw.Genre,
		Language:     strings.TrimSpace(raw.Language),
		Category:     strings.TrimSpace(raw.Category),
		PosterSmall:  raw.PosterSmall,
		PosterMedium: raw.PosterMedium,
		PosterLarge:  raw.PosterLarge,
		CardPicture:  raw.CardPicture,
		CoverPicture: raw.CoverPicture,
		Description:  raw.Description,
		TrailerURL:   raw.TrailerURL,
		Tagline:      raw.Tagline,
	}
	m.year = deriveYear(m.ReleasedDate, strings.TrimSpace(string(raw.Year)))
	m.Genres = reconcileGenres(raw.Genres, raw.Genre)
	return m
}

// Year returns the release year as a string, or "" when the record carries none.
func (m *Movie) Year() string { return m.year }

// PrimaryGenre is the first reconciled genre.
func (m *Movie) PrimaryGenre() string {
	if len(m.Genres) == 0 {
		return ""
	}
	return m.Genres[0]
}

// HasGenre reports whether the reconciled genre list contains g exactly.
func (m *Movie) HasGenre(g string) bool {
	return slices.Contains(m.Genres, g)
}

func deriveYear(releasedDate, year string) string {
	if releasedDate != "" {
		if head, _, _ := strings.Cut(releasedDate, "-"); head != "" {
			return head
		}
	}
	return year
}

func reconcileGenres(list []string, csv string) []string {
	out := make([]string, 0, len(list)+2)
	add := func(g string) {
		g = strings.TrimSpace(g)
		if g == "" || slices.Contains(out, g) {
			return
		}
		out = append(out, g)
	}
	for _, g := range list {
		add(g)
	}
	for _, g := range strings.Split(csv, ",") {
		add(g)
	}
	return out
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexFloat accepts a JSON number or a numeric string. Unparseable strings read as zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}
