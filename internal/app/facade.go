package app

import (
	"context"

	"github.com/bekzodart/storefront/internal/adapter/catalog"
	domainErrors "github.com/bekzodart/storefront/internal/domain/errors"
	"github.com/bekzodart/storefront/internal/domain/model"
	"github.com/bekzodart/storefront/internal/gallery"
	"github.com/bekzodart/storefront/internal/order"
	"github.com/bekzodart/storefront/internal/store"
)

// StorefrontFacade is the single entry point an embedding host works
// through: the gallery pipeline, the two membership stores, and purchase
// dialog construction.
type StorefrontFacade struct {
	cart      *store.Store
	favorites *store.Store
	pipeline  *gallery.Pipeline
	orders    *order.Factory
	client    catalog.Client
	locale    model.Locale
}

// NewStorefrontFacade wires the facade from its parts.
func NewStorefrontFacade(cart store.CartStore, favorites store.FavoritesStore, pipeline *gallery.Pipeline, orders *order.Factory, client catalog.Client, locale model.Locale) *StorefrontFacade {
	return &StorefrontFacade{
		cart:      cart.Store,
		favorites: favorites.Store,
		pipeline:  pipeline,
		orders:    orders,
		client:    client,
		locale:    locale,
	}
}

// Cart returns the cart membership store.
func (f *StorefrontFacade) Cart() *store.Store {
	return f.cart
}

// Favorites returns the favorites membership store.
func (f *StorefrontFacade) Favorites() *store.Store {
	return f.favorites
}

// Gallery returns the catalog query pipeline.
func (f *StorefrontFacade) Gallery() *gallery.Pipeline {
	return f.pipeline
}

// Locale returns the display locale the storefront was configured with.
func (f *StorefrontFacade) Locale() model.Locale {
	return f.locale
}

// Artwork fetches a single artwork by id.
func (f *StorefrontFacade) Artwork(ctx context.Context, id string) (*model.Artwork, error) {
	return f.client.GetArtwork(ctx, id)
}

// Testimonials fetches the storefront's testimonial entries.
func (f *StorefrontFacade) Testimonials(ctx context.Context) ([]model.Comment, error) {
	return f.client.ListComments(ctx)
}

// NewOrderDialog opens a purchase dialog for one artwork.
func (f *StorefrontFacade) NewOrderDialog(artwork model.Artwork) *order.Machine {
	m := f.orders.New()
	m.OpenSingle(artwork)
	return m
}

// NewCartOrderDialog opens a purchase dialog against the current cart
// snapshot, resolving each id against the catalog. The snapshot is fixed at
// open time: cart mutations after this call do not affect the dialog.
func (f *StorefrontFacade) NewCartOrderDialog(ctx context.Context) (*order.Machine, error) {
	ids := f.cart.Snapshot()
	if len(ids) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	artworks := make([]model.Artwork, 0, len(ids))
	for _, id := range ids {
		artwork, err := f.client.GetArtwork(ctx, id)
		if err != nil {
			return nil, err
		}
		artworks = append(artworks, *artwork)
	}

	m := f.orders.New()
	m.OpenCart(artworks)
	return m, nil
}
