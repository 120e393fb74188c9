package gallery

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/bekzodart/storefront/internal/adapter/catalog"
	"github.com/bekzodart/storefront/internal/config"
)

// Module provides the catalog query pipeline to the fx container.
var Module = fx.Provide(newPipeline)

type pipelineParams struct {
	fx.In

	Client catalog.Client
	Config *config.Config
	Logger *slog.Logger
}

func newPipeline(p pipelineParams) *Pipeline {
	return NewPipeline(p.Client, p.Config.SearchDebounce, p.Logger)
}
