package store

import (
	"log/slog"

	"go.uber.org/fx"
)

// CartStore and FavoritesStore are distinct fx identities for the two
// membership sets backed by the same Store implementation.
type CartStore struct{ *Store }

// FavoritesStore marks the favorites membership set in the fx graph.
type FavoritesStore struct{ *Store }

// Module provides both membership stores to the fx container.
var Module = fx.Provide(
	func(repo Repository, logger *slog.Logger) CartStore {
		return CartStore{NewCart(repo, logger)}
	},
	func(repo Repository, logger *slog.Logger) FavoritesStore {
		return FavoritesStore{NewFavorites(repo, logger)}
	},
)
