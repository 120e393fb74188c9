package gallery

import (
	"testing"

	"github.com/bekzodart/storefront/internal/domain/model"
)

func artworkList() []model.Artwork {
	return []model.Artwork{
		{
			ID:          "a1",
			Title:       model.LocalizedText{EN: "Bravo", RU: "Браво"},
			Description: model.LocalizedText{EN: "Golden sunset over the sea"},
			Price:       500,
			Category:    "landscape",
		},
		{
			ID:          "a2",
			Title:       model.LocalizedText{EN: "Alpha"},
			Description: model.LocalizedText{EN: "Portrait of a dancer"},
			Price:       100,
			Category:    "portrait",
		},
		{
			ID:          "a3",
			Title:       model.LocalizedText{EN: "Charlie", RU: "Чарли"},
			Description: model.LocalizedText{EN: "Abstract forms"},
			Price:       300,
			Category:    "landscape",
		},
	}
}

func ids(list []model.Artwork) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(artworkList(), FilterSpec{Category: "landscape", Price: model.PriceAll})
	if len(got) != 2 || got[0].ID != "a1" || got[1].ID != "a3" {
		t.Fatalf("unexpected category filter result %v", ids(got))
	}

	all := Filter(artworkList(), FilterSpec{Category: "all", Price: model.PriceAll})
	if len(all) != 3 {
		t.Fatalf("expected category=all to pass everything, got %v", ids(all))
	}

	empty := Filter(artworkList(), FilterSpec{Category: "", Price: model.PriceAll})
	if len(empty) != 3 {
		t.Fatalf("expected empty category to pass everything, got %v", ids(empty))
	}
}

func TestFilterByPriceBand(t *testing.T) {
	got := Filter(artworkList(), FilterSpec{Price: model.PriceUnder300})
	if len(got) != 1 || got[0].ID != "a2" {
		t.Fatalf("unexpected under-300 result %v", ids(got))
	}

	got = Filter(artworkList(), FilterSpec{Price: model.Price300To400})
	if len(got) != 1 || got[0].ID != "a3" {
		t.Fatalf("unexpected 300-400 result %v", ids(got))
	}

	got = Filter(artworkList(), FilterSpec{Price: model.PriceOver400})
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("unexpected over-400 result %v", ids(got))
	}
}

func TestFilterByTextIsCaseInsensitiveAndLocaleResolved(t *testing.T) {
	got := Filter(artworkList(), FilterSpec{Price: model.PriceAll, Search: "SUNSET"})
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("expected description match, got %v", ids(got))
	}

	// Russian locale resolves the russian title where present.
	got = Filter(artworkList(), FilterSpec{Price: model.PriceAll, Search: "браво", Locale: model.LocaleRU})
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("expected russian title match, got %v", ids(got))
	}

	// a2 has no russian title; the search falls back to the english one.
	got = Filter(artworkList(), FilterSpec{Price: model.PriceAll, Search: "alpha", Locale: model.LocaleRU})
	if len(got) != 1 || got[0].ID != "a2" {
		t.Fatalf("expected fallback title match, got %v", ids(got))
	}
}

func TestFilterIsConjunctive(t *testing.T) {
	got := Filter(artworkList(), FilterSpec{Category: "landscape", Price: model.Price300To400, Search: "abstract"})
	if len(got) != 1 || got[0].ID != "a3" {
		t.Fatalf("expected single artwork passing all conditions, got %v", ids(got))
	}

	got = Filter(artworkList(), FilterSpec{Category: "portrait", Price: model.PriceOver400})
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestSortByPrice(t *testing.T) {
	low := Sort(artworkList(), model.SortPriceLow, model.LocaleDefault)
	if got := ids(low); got[0] != "a2" || got[1] != "a3" || got[2] != "a1" {
		t.Fatalf("unexpected price-low order %v", got)
	}

	high := Sort(artworkList(), model.SortPriceHigh, model.LocaleDefault)
	if got := ids(high); got[0] != "a1" || got[1] != "a3" || got[2] != "a2" {
		t.Fatalf("unexpected price-high order %v", got)
	}
}

func TestSortByNameUsesLocaleResolvedTitle(t *testing.T) {
	byName := Sort(artworkList(), model.SortName, model.LocaleDefault)
	if got := ids(byName); got[0] != "a2" || got[1] != "a1" || got[2] != "a3" {
		t.Fatalf("unexpected name order %v", got)
	}
}

func TestSortNewestPreservesInputOrder(t *testing.T) {
	input := artworkList()
	got := Sort(input, model.SortNewest, model.LocaleDefault)
	for i := range input {
		if got[i].ID != input[i].ID {
			t.Fatalf("newest must not reorder, got %v", ids(got))
		}
	}
}

func TestSortIsStableOnTies(t *testing.T) {
	list := []model.Artwork{
		{ID: "first", Price: 100},
		{ID: "second", Price: 100},
		{ID: "third", Price: 100},
	}
	got := Sort(list, model.SortPriceLow, model.LocaleDefault)
	if got[0].ID != "first" || got[1].ID != "second" || got[2].ID != "third" {
		t.Fatalf("tie order not preserved: %v", ids(got))
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	input := artworkList()
	_ = Sort(input, model.SortPriceLow, model.LocaleDefault)
	if input[0].ID != "a1" {
		t.Fatalf("input slice was reordered: %v", ids(input))
	}
}
