package store

import (
	"context"
	"log/slog"
	"sync"
)

// Repository persists a named membership set to durable client-side storage.
type Repository interface {
	// Load returns the ids of the named set in stored order. Missing or
	// corrupt data loads as an empty set, never an error the caller must
	// treat as fatal.
	Load(ctx context.Context, name string) ([]string, error)
	// Save replaces the named set with the given ids.
	Save(ctx context.Context, name string, ids []string) error
}

// Event describes one membership change fanned out to subscribers.
type Event struct {
	Store     string
	ArtworkID string
	Member    bool
}

// Store is an insertion-ordered, duplicate-free membership set shared across
// every surface that renders an artwork. Mutations persist the full set
// before subscribers are notified, so a reader woken by an event never races
// a stale storage state.
type Store struct {
	name   string
	repo   Repository
	logger *slog.Logger

	mu      sync.RWMutex
	order   []string
	members map[string]struct{}

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// NewCart creates the cart membership store.
func NewCart(repo Repository, logger *slog.Logger) *Store {
	return newStore("cart", repo, logger)
}

// NewFavorites creates the favorites membership store.
func NewFavorites(repo Repository, logger *slog.Logger) *Store {
	return newStore("favorites", repo, logger)
}

func newStore(name string, repo Repository, logger *slog.Logger) *Store {
	return &Store{
		name:    name,
		repo:    repo,
		logger:  logger,
		members: make(map[string]struct{}),
		subs:    make(map[int]func(Event)),
	}
}

// Name returns the storage key the set is persisted under.
func (s *Store) Name() string {
	return s.name
}

// Load restores the set from storage. Corrupt or missing data restores as empty.
func (s *Store) Load(ctx context.Context) error {
	ids, err := s.repo.Load(ctx, s.name)
	if err != nil {
		s.logger.Warn("membership load failed, starting empty",
			slog.String("store", s.name), slog.String("error", err.Error()))
		ids = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	s.members = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := s.members[id]; dup || id == "" {
			continue
		}
		s.members[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return nil
}

// Contains reports membership of the given artwork id.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[id]
	return ok
}

// Len returns the number of members.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Snapshot returns member ids in insertion order.
func (s *Store) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Add inserts the id. Adding a present id is a no-op.
func (s *Store) Add(ctx context.Context, id string) {
	s.mu.Lock()
	if _, ok := s.members[id]; ok {
		s.mu.Unlock()
		return
	}
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notify(Event{Store: s.name, ArtworkID: id, Member: true})
}

// Remove deletes the id. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	if _, ok := s.members[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.members, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notify(Event{Store: s.name, ArtworkID: id, Member: false})
}

// Toggle flips membership and returns the new state. Calling it twice
// restores the original membership.
func (s *Store) Toggle(ctx context.Context, id string) bool {
	s.mu.Lock()
	_, present := s.members[id]
	if present {
		delete(s.members, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	} else {
		s.members[id] = struct{}{}
		s.order = append(s.order, id)
	}
	member := !present
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notify(Event{Store: s.name, ArtworkID: id, Member: member})
	return member
}

// Clear removes every member.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	cleared := s.order
	s.order = nil
	s.members = make(map[string]struct{})
	s.mu.Unlock()

	if len(cleared) == 0 {
		return
	}
	s.persist(ctx, nil)
	for _, id := range cleared {
		s.notify(Event{Store: s.name, ArtworkID: id, Member: false})
	}
}

// Subscribe registers a callback for membership changes and returns an
// unsubscribe function. Callbacks run outside the store lock.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) snapshotLocked() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// persist writes the full set synchronously. A failed write is logged and
// the in-memory state stands: storage errors never corrupt the session.
func (s *Store) persist(ctx context.Context, ids []string) {
	if err := s.repo.Save(ctx, s.name, ids); err != nil {
		s.logger.Error("membership persist failed",
			slog.String("store", s.name), slog.String("error", err.Error()))
	}
}

func (s *Store) notify(event Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}
