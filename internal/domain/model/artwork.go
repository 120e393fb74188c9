package model

import "time"

// Artwork describes a catalog item. Artworks are produced by the remote
// catalog API and immutable from this layer's perspective.
type Artwork struct {
	ID          string
	Title       LocalizedText
	Description LocalizedText
	Price       float64
	ImageURL    string
	Category    string
	Dimensions  string
	CreatedAt   time.Time
}

// TitleIn resolves the artwork title for the given locale.
func (a Artwork) TitleIn(loc Locale) string {
	return a.Title.Resolve(loc)
}

// DescriptionIn resolves the artwork description for the given locale.
func (a Artwork) DescriptionIn(loc Locale) string {
	return a.Description.Resolve(loc)
}
