package di

import (
	"go.uber.org/fx"

	"github.com/bekzodart/storefront/internal/adapter/catalog"
	"github.com/bekzodart/storefront/internal/app"
	"github.com/bekzodart/storefront/internal/config"
	"github.com/bekzodart/storefront/internal/gallery"
	"github.com/bekzodart/storefront/internal/logger"
	"github.com/bekzodart/storefront/internal/order"
	"github.com/bekzodart/storefront/internal/storage/sqlite"
	"github.com/bekzodart/storefront/internal/store"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		sqlite.Module,
		store.Module,
		catalog.Module,
		gallery.Module,
		order.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
