package model

// SortKey selects the ordering of catalog results.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// ParseSortKey maps arbitrary input to a known sort key, defaulting to newest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceLow:
		return SortPriceLow
	case SortPriceHigh:
		return SortPriceHigh
	case SortName:
		return SortName
	default:
		return SortNewest
	}
}

// PriceRange selects one of the fixed price bands offered by the gallery.
type PriceRange string

const (
	PriceAll      PriceRange = "all"
	PriceUnder300 PriceRange = "under-300"
	Price300To400 PriceRange = "300-400"
	PriceOver400  PriceRange = "over-400"
)

// ParsePriceRange maps arbitrary input to a known price range, defaulting to all.
func ParsePriceRange(s string) PriceRange {
	switch PriceRange(s) {
	case PriceUnder300:
		return PriceUnder300
	case Price300To400:
		return Price300To400
	case PriceOver400:
		return PriceOver400
	default:
		return PriceAll
	}
}

// Matches reports whether a price falls inside the band.
func (r PriceRange) Matches(price float64) bool {
	switch r {
	case PriceUnder300:
		return price < 300
	case Price300To400:
		return price >= 300 && price <= 400
	case PriceOver400:
		return price > 400
	default:
		return true
	}
}

// CatalogQuery is the effective query issued against the catalog. A new query
// supersedes the prior one entirely.
type CatalogQuery struct {
	Search string
	Sort   SortKey
	Price  PriceRange
}

// DefaultQuery returns the query the gallery starts from.
func DefaultQuery() CatalogQuery {
	return CatalogQuery{Sort: SortNewest, Price: PriceAll}
}
