package sqlite

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/bekzodart/storefront/internal/config"
	"github.com/bekzodart/storefront/internal/store"
)

// Module wires SQLite storage and the membership repository.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(func(s *Storage) store.Repository { return s.Memberships() }),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.StateDBPath, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
