package catalog

import "strings"

// ImageKind names a display slot. Each slot resolves through its own ordered
// list of image fields.
type ImageKind int

const (
	ImageCard ImageKind = iota
	ImageHero
	ImagePoster
	ImageThumb
)

type imageField int

const (
	fieldPosterSmall imageField = iota
	fieldPosterMedium
	fieldPosterLarge
	fieldCardPicture
	fieldCoverPicture
)

var imageChains = map[ImageKind][]imageField{
	ImageCard:   {fieldCardPicture, fieldPosterSmall, fieldPosterMedium, fieldPosterLarge, fieldCoverPicture},
	ImageHero:   {fieldCoverPicture, fieldPosterLarge, fieldPosterMedium, fieldCardPicture, fieldPosterSmall},
	ImagePoster: {fieldPosterLarge, fieldPosterMedium, fieldPosterSmall, fieldCardPicture, fieldCoverPicture},
	ImageThumb:  {fieldPosterSmall, fieldPosterMedium, fieldCardPicture, fieldPosterLarge, fieldCoverPicture},
}

func (k ImageKind) String() string {
	switch k {
	case ImageCard:
		return "card"
	case ImageHero:
		return "hero"
	case ImagePoster:
		return "poster"
	case ImageThumb:
		return "thumb"
	}
	return "unknown"
}

// Image returns the first non-blank image URL in the chain for kind, or "".
func (m *Movie) Image(kind ImageKind) string {
	for _, f := range imageChains[kind] {
		if v := strings.TrimSpace(m.imageField(f)); v != "" {
			return v
		}
	}
	return ""
}

func (m *Movie) imageField(f imageField) string {
	switch f {
	case fieldPosterSmall:
		return m.PosterSmall
	case fieldPosterMedium:
		return m.PosterMedium
	case fieldPosterLarge:
		return m.PosterLarge
	case fieldCardPicture:
		return m.CardPicture
	case fieldCoverPicture:
		return m.CoverPicture
	}
	return ""
}
