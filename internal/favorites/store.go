// Package favorites owns the favorited products of one signed-in user.
//
// A Store is created per session and torn down with Close on sign-out. It is the only writer of the
// user's durable favorites record. Every mutation follows the same two steps: the next durable list
// is written first and the in-memory list is swapped only once that write succeeded, so a failed
// write never leaves a partial change visible.
//
// Duplicates are detected by purchase link, never by id, since ids are regenerated on every catalog
// fetch. Add re-reads the durable record before writing, which narrows but does not close the race
// between two sessions adding the same product at the same time.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Persister is the durable per-user favorites record. Read returns ierr.NotFound when the user has no record yet.
type Persister interface {
	Read(ctx context.Context, userId string) ([]model.Product, error)
	Write(ctx context.Context, userId string, favorites []model.Product) error
}

type Store struct {
	userId    string
	persister Persister
	logger    zerolog.Logger

	// opMu serializes the operations that talk to the persister
	opMu sync.Mutex

	stateMu   sync.RWMutex
	favorites []model.Product
	lastErr   error
	closed    bool

	loading atomic.Bool
}

func New(userId string, persister Persister) *Store {
	return &Store{
		userId:    userId,
		persister: persister,
		logger:    log.With().Str("userId", userId).Logger(),
		favorites: []model.Product{},
	}
}

func (s *Store) UserId() string {
	return s.userId
}

// Load replaces the in-memory favorites with the durable ones, creating an empty record for new users.
func (s *Store) Load(ctx context.Context) error {
	return s.run(ctx, func(ctx context.Context) error {
		durable, err := s.read(ctx)
		if errors.Is(err, ierr.NotFound) {
			return s.commit(ctx, []model.Product{}, func() { s.favorites = []model.Product{} })
		}
		if err != nil {
			return err
		}

		loaded := dedup(durable)
		s.stateMu.Lock()
		s.favorites = loaded
		s.stateMu.Unlock()
		return nil
	})
}

// Add favorites product. It returns false and ierr.AlreadyFavorited when a product with the same
// purchase link is already present in memory or in the durable record.
func (s *Store) Add(ctx context.Context, product model.Product) (bool, error) {
	added := false
	err := s.run(ctx, func(ctx context.Context) error {
		key := product.Key()
		if s.Contains(key) {
			return ierr.AlreadyFavorited
		}

		durable, err := s.read(ctx)
		if err != nil && !errors.Is(err, ierr.NotFound) {
			return err
		}
		if indexOfKey(durable, key) >= 0 {
			return ierr.AlreadyFavorited
		}

		snapshot := product.Snapshot()
		next := append(clone(durable), snapshot)
		if err := s.commit(ctx, next, func() { s.favorites = append(s.favorites, snapshot) }); err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

// Remove drops the favorite with the given id. Ids come from the loaded snapshots, so they are
// stable for the lifetime of the session. An unknown id is a no-op returning false.
func (s *Store) Remove(ctx context.Context, productId string) (bool, error) {
	removed := false
	err := s.run(ctx, func(ctx context.Context) error {
		s.stateMu.RLock()
		idx := indexOfId(s.favorites, productId)
		var target model.Product
		if idx >= 0 {
			target = s.favorites[idx]
		}
		s.stateMu.RUnlock()

		if idx < 0 {
			return nil
		}

		durable, err := s.read(ctx)
		if err != nil && !errors.Is(err, ierr.NotFound) {
			return err
		}

		next := make([]model.Product, 0, len(durable))
		for _, p := range durable {
			if p.Key() != target.Key() {
				next = append(next, p)
			}
		}

		if err := s.commit(ctx, next, func() { s.favorites = removeId(s.favorites, productId) }); err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

// Clear empties the durable record and the in-memory favorites.
func (s *Store) Clear(ctx context.Context) error {
	return s.run(ctx, func(ctx context.Context) error {
		return s.commit(ctx, []model.Product{}, func() { s.favorites = []model.Product{} })
	})
}

// Contains reports whether a favorite has the given purchase link. It never waits on the persister.
func (s *Store) Contains(purchaseLink string) bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return indexOfKey(s.favorites, purchaseLink) >= 0
}

// Favorites returns copies of the current favorites in insertion order.
func (s *Store) Favorites() []model.Product {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return clone(s.favorites)
}

func (s *Store) Len() int {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return len(s.favorites)
}

// Err is the error of the last operation, nil if it succeeded.
func (s *Store) Err() error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastErr
}

func (s *Store) Loading() bool {
	return s.loading.Load()
}

// Close ends the session. Pending operations finish, later ones fail with ierr.SessionClosed.
func (s *Store) Close() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.closed = true
	s.favorites = []model.Product{}
	s.lastErr = nil
}

// run serializes fn against the other operations of the store and records its outcome in the error flag.
func (s *Store) run(ctx context.Context, fn func(context.Context) error) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.stateMu.RLock()
	closed := s.closed
	s.stateMu.RUnlock()
	if closed {
		return ierr.SessionClosed
	}

	s.loading.Store(true)
	defer s.loading.Store(false)

	err := fn(ctx)

	s.stateMu.Lock()
	s.lastErr = err
	s.stateMu.Unlock()

	switch {
	case err == nil:
	case ierr.Expected(err):
		s.logger.Debug().Err(err).Msg("favorites: rejected")
	default:
		s.logger.Error().Err(err).Msg("favorites: operation failed")
	}

	return err
}

// commit writes next to the durable record and applies the in-memory change only if the write succeeded.
func (s *Store) commit(ctx context.Context, next []model.Product, apply func()) error {
	if err := s.persister.Write(ctx, s.userId, next); err != nil {
		return fmt.Errorf("%w: %w", ierr.PersistenceUnavailable, err)
	}

	s.stateMu.Lock()
	apply()
	s.stateMu.Unlock()
	return nil
}

func (s *Store) read(ctx context.Context) ([]model.Product, error) {
	durable, err := s.persister.Read(ctx, s.userId)
	if errors.Is(err, ierr.NotFound) {
		return nil, ierr.NotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ierr.PersistenceUnavailable, err)
	}
	return durable, nil
}

// dedup keeps the first product of every purchase link, in order.
func dedup(products []model.Product) []model.Product {
	seen := make(map[string]struct{}, len(products))
	unique := make([]model.Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Key()]; ok {
			continue
		}
		seen[p.Key()] = struct{}{}
		unique = append(unique, p.Snapshot())
	}
	return unique
}

func clone(products []model.Product) []model.Product {
	out := make([]model.Product, len(products))
	for i, p := range products {
		out[i] = p.Snapshot()
	}
	return out
}

func indexOfKey(products []model.Product, key string) int {
	for i, p := range products {
		if p.Key() == key {
			return i
		}
	}
	return -1
}

func indexOfId(products []model.Product, id string) int {
	for i, p := range products {
		if p.Id == id {
			return i
		}
	}
	return -1
}

func removeId(products []model.Product, id string) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Id != id {
			out = append(out, p)
		}
	}
	return out
}
