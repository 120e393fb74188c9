package gallery

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bekzodart/storefront/internal/domain/model"
)

// Fetcher is the subset of the catalog client the pipeline needs.
type Fetcher interface {
	ListArtworks(ctx context.Context, query model.CatalogQuery) ([]model.Artwork, error)
}

// Status describes the state of the current catalog query.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Results is the pipeline's observable output. On StatusError Artworks keeps
// the last Ready list so the presentation layer can keep showing it.
type Results struct {
	Status   Status
	Query    model.CatalogQuery
	Artworks []model.Artwork
	Err      error
}

// Pipeline folds raw gallery inputs into a debounced catalog query and keeps
// exactly one fetch per effective query in flight. A superseded fetch's
// response is discarded when it arrives, so results always belong to the
// newest query.
type Pipeline struct {
	fetcher  Fetcher
	debounce time.Duration
	logger   *slog.Logger

	mu            sync.Mutex
	query         model.CatalogQuery
	pendingSearch string
	timer         *time.Timer
	generation    uint64
	results       Results
	closed        bool

	ctx    context.Context
	cancel context.CancelFunc

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Results)
}

// NewPipeline constructs a pipeline starting from the default query with no
// results yet. Callers trigger the first fetch with Refresh.
func NewPipeline(fetcher Fetcher, debounce time.Duration, logger *slog.Logger) *Pipeline {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := model.DefaultQuery()
	return &Pipeline{
		fetcher:  fetcher,
		debounce: debounce,
		logger:   logger,
		query:    q,
		results:  Results{Status: StatusIdle, Query: q},
		ctx:      ctx,
		cancel:   cancel,
		subs:     make(map[int]func(Results)),
	}
}

// Query returns the current effective query. Search text still inside the
// debounce window is not part of it yet.
func (p *Pipeline) Query() model.CatalogQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Results returns the current observable state.
func (p *Pipeline) Results() Results {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

// Subscribe registers a callback invoked on every state change and returns
// an unsubscribe function.
func (p *Pipeline) Subscribe(fn func(Results)) func() {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	return func() {
		p.subMu.Lock()
		defer p.subMu.Unlock()
		delete(p.subs, id)
	}
}

// SetSearch records a keystroke. The text is folded into the effective query
// only after the quiet period elapses; a burst of calls collapses to one.
func (p *Pipeline) SetSearch(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.pendingSearch = text
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, p.commitSearch)
}

func (p *Pipeline) commitSearch() {
	p.mu.Lock()
	if p.closed || p.pendingSearch == p.query.Search {
		p.mu.Unlock()
		return
	}
	p.query.Search = p.pendingSearch
	p.fireLocked()
}

// SetSort applies a sort selection immediately.
func (p *Pipeline) SetSort(key model.SortKey) {
	p.mu.Lock()
	if p.closed || p.query.Sort == key {
		p.mu.Unlock()
		return
	}
	p.query.Sort = key
	p.fireLocked()
}

// SetPriceRange applies a price band selection immediately.
func (p *Pipeline) SetPriceRange(band model.PriceRange) {
	p.mu.Lock()
	if p.closed || p.query.Price == band {
		p.mu.Unlock()
		return
	}
	p.query.Price = band
	p.fireLocked()
}

// Refresh refetches the current effective query.
func (p *Pipeline) Refresh() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.fireLocked()
}

// Close stops the debounce timer and suppresses delivery of any in-flight
// response. Safe to call more than once.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()
	p.cancel()
}

// fireLocked issues one fetch for the current query. Caller holds p.mu;
// fireLocked releases it.
func (p *Pipeline) fireLocked() {
	p.generation++
	gen := p.generation
	query := p.query

	p.results = Results{
		Status:   StatusLoading,
		Query:    query,
		Artworks: p.results.Artworks,
	}
	snapshot := p.results
	p.mu.Unlock()

	p.publish(snapshot)
	go p.fetch(gen, query)
}

func (p *Pipeline) fetch(gen uint64, query model.CatalogQuery) {
	artworks, err := p.fetcher.ListArtworks(p.ctx, query)

	p.mu.Lock()
	if p.closed || gen != p.generation {
		p.mu.Unlock()
		p.logger.Debug("stale catalog response discarded",
			slog.String("search", query.Search), slog.Uint64("generation", gen))
		return
	}

	if err != nil {
		p.results = Results{
			Status:   StatusError,
			Query:    query,
			Artworks: p.results.Artworks,
			Err:      err,
		}
		snapshot := p.results
		p.mu.Unlock()
		p.logger.Error("catalog fetch failed",
			slog.String("search", query.Search), slog.String("error", err.Error()))
		p.publish(snapshot)
		return
	}

	p.results = Results{Status: StatusReady, Query: query, Artworks: artworks}
	snapshot := p.results
	p.mu.Unlock()
	p.publish(snapshot)
}

func (p *Pipeline) publish(results Results) {
	p.subMu.Lock()
	fns := make([]func(Results), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.subMu.Unlock()

	for _, fn := range fns {
		fn(results)
	}
}
