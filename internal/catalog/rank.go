package catalog

import (
	"cmp"
	"slices"
)

const (
	TopRatedThreshold = 8.0
	TopRatedLimit     = 10
	FeaturedLimit     = 5
)

// TopRated returns up to TopRatedLimit movies rated at least
// TopRatedThreshold, best first. Equal ratings keep catalog order.
func TopRated(movies []Movie) []Movie {
	out := make([]Movie, 0, TopRatedLimit)
	for i := range movies {
		if movies[i].Rating >= TopRatedThreshold {
			out = append(out, movies[i])
		}
	}
	slices.SortStableFunc(out, func(a, b Movie) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	if len(out) > TopRatedLimit {
		out = out[:TopRatedLimit]
	}
	return out
}

// Featured returns the leading catalog entries shown in the hero carousel.
func Featured(movies []Movie) []Movie {
	n := min(len(movies), FeaturedLimit)
	return append([]Movie(nil), movies[:n]...)
}

// Spotlight is shown in the hero slot when the catalog is empty.
var Spotlight = Movie{
	ID:          "spotlight",
	Title:       "Cinematic Spotlight",
	Rating:      8.5,
	Genres:      []string{"Featured"},
	PosterLarge: "https://picsum.photos/seed/hero/1920/1080",
	Tagline:     "Experience cinema like never before",
	year:        "2024",
}

// Hero is the first catalog entry, or Spotlight for an empty catalog.
func Hero(movies []Movie) Movie {
	if len(movies) == 0 {
		return Spotlight
	}
	return movies[0]
}
