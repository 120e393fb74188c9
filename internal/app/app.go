package app

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/bekzodart/storefront/internal/config"
	"github.com/bekzodart/storefront/internal/domain/model"
	"github.com/bekzodart/storefront/internal/gallery"
	"github.com/bekzodart/storefront/internal/store"
)

// Module wires the storefront facade and its lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		func(cfg *config.Config) model.Locale { return model.ParseLocale(cfg.Locale) },
		NewStorefrontFacade,
	),
	fx.Invoke(registerLifecycle),
)

type lifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *slog.Logger
	Cart      store.CartStore
	Favorites store.FavoritesStore
	Pipeline  *gallery.Pipeline
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Cart.Load(ctx); err != nil {
				return err
			}
			if err := p.Favorites.Load(ctx); err != nil {
				return err
			}
			p.Logger.Info("storefront state restored",
				slog.Int("cart", p.Cart.Len()), slog.Int("favorites", p.Favorites.Len()))

			p.Pipeline.Refresh()
			return nil
		},
		OnStop: func(context.Context) error {
			p.Pipeline.Close()
			p.Logger.Info("storefront stopped")
			return nil
		},
	})
}
