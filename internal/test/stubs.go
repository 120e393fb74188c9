package test

import (
	"context"
	"sync"

	"github.com/bekzodart/storefront/internal/domain/model"
)

// MembershipRepositoryStub keeps membership sets in memory. It satisfies
// store.Repository without importing it, so store tests may use this package.
type MembershipRepositoryStub struct {
	mu   sync.Mutex
	sets map[string][]string

	LoadErr error
	SaveErr error
}

// NewMembershipRepositoryStub creates an empty in-memory repository.
func NewMembershipRepositoryStub() *MembershipRepositoryStub {
	return &MembershipRepositoryStub{sets: make(map[string][]string)}
}

// Seed installs a stored set for the given store name.
func (r *MembershipRepositoryStub) Seed(name string, ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]string, len(ids))
	copy(stored, ids)
	r.sets[name] = stored
}

// Stored returns the currently persisted set for the given store name.
func (r *MembershipRepositoryStub) Stored(name string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.sets[name]))
	copy(out, r.sets[name])
	return out
}

// Load returns the named set or the configured error.
func (r *MembershipRepositoryStub) Load(_ context.Context, name string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	out := make([]string, len(r.sets[name]))
	copy(out, r.sets[name])
	return out, nil
}

// Save replaces the named set or returns the configured error.
func (r *MembershipRepositoryStub) Save(_ context.Context, name string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	stored := make([]string, len(ids))
	copy(stored, ids)
	r.sets[name] = stored
	return nil
}

// CatalogClientStub provides controllable behaviour for catalog API calls.
type CatalogClientStub struct {
	ListFn     func(context.Context, model.CatalogQuery) ([]model.Artwork, error)
	GetFn      func(context.Context, string) (*model.Artwork, error)
	OrderFn    func(context.Context, model.OrderDraft) (*model.OrderConfirmation, error)
	CommentsFn func(context.Context) ([]model.Comment, error)
}

// ListArtworks delegates to ListFn or returns an empty catalog.
func (s *CatalogClientStub) ListArtworks(ctx context.Context, q model.CatalogQuery) ([]model.Artwork, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, q)
	}
	return []model.Artwork{}, nil
}

// GetArtwork delegates to GetFn or returns a minimal artwork with the id.
func (s *CatalogClientStub) GetArtwork(ctx context.Context, id string) (*model.Artwork, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Artwork{ID: id}, nil
}

// CreateOrder delegates to OrderFn or confirms unconditionally.
func (s *CatalogClientStub) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.OrderConfirmation, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, draft)
	}
	return &model.OrderConfirmation{OrderID: "stub-order", Status: "created"}, nil
}

// ListComments delegates to CommentsFn or returns no testimonials.
func (s *CatalogClientStub) ListComments(ctx context.Context) ([]model.Comment, error) {
	if s.CommentsFn != nil {
		return s.CommentsFn(ctx)
	}
	return []model.Comment{}, nil
}
