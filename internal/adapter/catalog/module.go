package catalog

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/bekzodart/storefront/internal/config"
)

// Module exposes the catalog API client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.APIAddress, p.Config.RequestTimeout, p.Logger)
}
