package gallery

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bekzodart/storefront/internal/domain/model"
)

// FilterSpec describes the client-side filtering predicate. All conditions
// apply conjunctively.
type FilterSpec struct {
	Category string
	Price    model.PriceRange
	Search   string
	Locale   model.Locale
}

// Filter returns the artworks matching the spec, preserving input order.
// Used when the full catalog is already resident in memory and the server
// offers no filtering.
func Filter(list []model.Artwork, spec FilterSpec) []model.Artwork {
	search := strings.ToLower(strings.TrimSpace(spec.Search))

	out := make([]model.Artwork, 0, len(list))
	for _, art := range list {
		if spec.Category != "" && spec.Category != "all" && art.Category != spec.Category {
			continue
		}
		if !spec.Price.Matches(art.Price) {
			continue
		}
		if search != "" && !textMatches(art, spec.Locale, search) {
			continue
		}
		out = append(out, art)
	}
	return out
}

func textMatches(art model.Artwork, loc model.Locale, search string) bool {
	title := strings.ToLower(art.TitleIn(loc))
	description := strings.ToLower(art.DescriptionIn(loc))
	return strings.Contains(title, search) || strings.Contains(description, search)
}

var collationTags = map[model.Locale]language.Tag{
	model.LocaleDefault: language.English,
	model.LocaleRU:      language.Russian,
	model.LocaleUZ:      language.Uzbek,
}

// Sort returns a new slice ordered by the sort key. Every comparator is
// stable; newest keeps the input order untouched.
func Sort(list []model.Artwork, key model.SortKey, loc model.Locale) []model.Artwork {
	out := make([]model.Artwork, len(list))
	copy(out, list)

	switch key {
	case model.SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case model.SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case model.SortName:
		tag, ok := collationTags[loc]
		if !ok {
			tag = language.English
		}
		coll := collate.New(tag)
		sort.SliceStable(out, func(i, j int) bool {
			return coll.CompareString(out[i].TitleIn(loc), out[j].TitleIn(loc)) < 0
		})
	}
	return out
}
