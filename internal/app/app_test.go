package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bekzodart/storefront/internal/domain/model"
	"github.com/bekzodart/storefront/internal/gallery"
	"github.com/bekzodart/storefront/internal/store"
	testhelpers "github.com/bekzodart/storefront/internal/test"
)

func TestRegisterLifecycle(t *testing.T) {
	logger := discardLogger()
	repo := testhelpers.NewMembershipRepositoryStub()
	repo.Seed("cart", []string{"a1", "a2"})
	repo.Seed("favorites", []string{"a9"})

	var fetches atomic.Int64
	client := &testhelpers.CatalogClientStub{
		ListFn: func(context.Context, model.CatalogQuery) ([]model.Artwork, error) {
			fetches.Add(1)
			return []model.Artwork{{ID: "a1"}}, nil
		},
	}
	pipeline := gallery.NewPipeline(client, 10*time.Millisecond, logger)

	recorder := &testhelpers.LifecycleRecorder{}
	registerLifecycle(lifecycleParams{
		Lifecycle: recorder,
		Logger:    logger,
		Cart:      store.CartStore{Store: store.NewCart(repo, logger)},
		Favorites: store.FavoritesStore{Store: store.NewFavorites(repo, logger)},
		Pipeline:  pipeline,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("hooks registered = %d, want 1", len(recorder.Hooks))
	}
	hook := recorder.Hooks[0]

	ctx := context.Background()
	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("OnStart: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for fetches.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if fetches.Load() == 0 {
		t.Fatal("OnStart must trigger the initial catalog fetch")
	}

	if err := hook.OnStop(ctx); err != nil {
		t.Fatalf("OnStop: %v", err)
	}

	before := fetches.Load()
	pipeline.Refresh()
	time.Sleep(30 * time.Millisecond)
	if fetches.Load() != before {
		t.Fatal("pipeline must be closed after OnStop")
	}
}

func TestRegisterLifecycleStartLoadsStores(t *testing.T) {
	logger := discardLogger()
	repo := testhelpers.NewMembershipRepositoryStub()
	repo.Seed("cart", []string{"a1"})

	pipeline := gallery.NewPipeline(&testhelpers.CatalogClientStub{}, 10*time.Millisecond, logger)
	t.Cleanup(pipeline.Close)

	cart := store.CartStore{Store: store.NewCart(repo, logger)}
	favorites := store.FavoritesStore{Store: store.NewFavorites(repo, logger)}

	recorder := &testhelpers.LifecycleRecorder{}
	registerLifecycle(lifecycleParams{
		Lifecycle: recorder,
		Logger:    logger,
		Cart:      cart,
		Favorites: favorites,
		Pipeline:  pipeline,
	})

	if err := recorder.Hooks[0].OnStart(context.Background()); err != nil {
		t.Fatalf("OnStart: %v", err)
	}
	if got := cart.Snapshot(); len(got) != 1 || got[0] != "a1" {
		t.Fatalf("cart after start = %v, want [a1]", got)
	}
	if favorites.Len() != 0 {
		t.Fatalf("favorites after start = %d entries, want 0", favorites.Len())
	}
}
