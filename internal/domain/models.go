package domain

import "time"

// Slide is one artwork as the carousel sees it. The carousel never mutates it.
type Slide struct {
	ID              string
	Title           string
	CollectionLabel string
	Story           string // markdown
	Price           float64
	ImageRef        string
}

// Artwork is the persisted catalogue entry behind a slide.
type Artwork struct {
	ID         string
	Title      string
	Collection string
	Story      string
	Price      float64
	ImageRef   string
	Position   int // display order, ascending
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Slide returns the read-only view of the artwork used by the carousel.
func (a Artwork) Slide() Slide {
	return Slide{
		ID:              a.ID,
		Title:           a.Title,
		CollectionLabel: a.Collection,
		Story:           a.Story,
		Price:           a.Price,
		ImageRef:        a.ImageRef,
	}
}

// Slides converts artworks in order.
func Slides(artworks []Artwork) []Slide {
	slides := make([]Slide, 0, len(artworks))
	for _, a := range artworks {
		slides = append(slides, a.Slide())
	}
	return slides
}
