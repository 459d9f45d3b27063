package recommendations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-ecocidade/internal/catalog"
	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/eventpublisher"
	"go-ecocidade/internal/eventpublisher/event"
	"go-ecocidade/internal/model"
	"go-ecocidade/internal/ranker"
	recommendationsRepository "go-ecocidade/internal/repository/recommendations"
	"go-ecocidade/internal/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Handler struct {
	userEventPublisher eventpublisher.Publisher
	catalog            catalog.Source
	recommendationRepo recommendationsRepository.IRepository
	limit              int
	userSubscriptionCh event.EventChannel
}

func New(
	userEventPublisher eventpublisher.Publisher,
	catalog catalog.Source,
	recommendationRepo recommendationsRepository.IRepository,
	limit int) *Handler {

	if limit <= 0 {
		limit = DefaultLimit
	}

	return &Handler{
		userEventPublisher: userEventPublisher,
		catalog:            catalog,
		recommendationRepo: recommendationRepo,
		limit:              limit,
		userSubscriptionCh: make(event.EventChannel),
	}
}

func (h *Handler) subscribeToEvents() {
	h.userEventPublisher.Subscribe(h.eventChannel())
}

func (h *Handler) unsubscribeFromEvents() {
	h.userEventPublisher.Unsubscribe(h.eventChannel())
}

func (h *Handler) eventChannel() chan<- event.Event {
	return h.userSubscriptionCh
}

// EventHandler ranks the catalog for every user whose document changes, until ctx is done
// or the publisher closes the subscription.
func (h *Handler) EventHandler(ctx context.Context) error {

	h.subscribeToEvents()
	defer h.unsubscribeFromEvents()

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(maxInFlight)
	defer group.Wait()

	for {
		select {
		case <-gctx.Done():
			return ctx.Err()
		case e, ok := <-h.userSubscriptionCh:
			if !ok {
				return nil
			}

			if e.Err != nil {
				log.Error().Err(e.Err).Msg("recommendations handler: error reading events")
				return e.Err
			}

			user, ok := e.Message.(model.User)
			if !ok {
				continue
			}
			log.Debug().Str("userId", user.Id).Stringer("event", e.Type).Msg("recommendations handler: user event")

			group.Go(func() error {
				// a failure for one user must not stop the others
				if err := h.handle(gctx, user); err != nil {
					log.Error().Err(err).Str("userId", user.Id).Msg("recommendations handler: failed to rank")
				}
				return nil
			})
		}
	}
}

func (h *Handler) handle(ctx context.Context, user model.User) error {

	hash := PreferencesHash(user.Preferences)

	current, err := h.recommendationRepo.GetById(ctx, user.Id)
	if err != nil && !errors.Is(err, ierr.NotFound) {
		return err
	}
	if current != nil && current.PreferencesHash == hash && time.Since(current.UpdatedAt) < maxAge {
		log.Debug().Str("userId", user.Id).Msg("recommendations are up to date")
		return nil
	}

	scored, err := h.Recommend(ctx, user)
	if err != nil {
		return err
	}

	rec := model.Recommendations{
		UserId:          user.Id,
		PreferencesHash: hash,
		Products:        make([]model.RecommendedProduct, 0, len(scored)),
	}
	if current != nil {
		rec.CreatedAt = current.CreatedAt
	}
	for i, s := range scored {
		rec.Products = append(rec.Products, model.RecommendedProduct{
			Product: s.Product,
			Rank:    i + 1,
			Score:   s.Score,
		})
	}

	if err := h.recommendationRepo.Replace(ctx, rec); err != nil {
		return fmt.Errorf("save recommendations: %w, userId: %s", err, user.Id)
	}

	log.Debug().Str("userId", user.Id).Int("count", len(rec.Products)).Msg("recommendations saved")
	return nil
}

// Recommend returns the best ranked products of the user's interested categories,
// or of the whole catalog when the user has none.
func (h *Handler) Recommend(ctx context.Context, user model.User) ([]ranker.Scored, error) {
	products, err := h.fetch(ctx, user.Preferences.Categories)
	if err != nil {
		return nil, err
	}

	return ranker.Top(ranker.RankScored(products, user.Preferences), h.limit), nil
}

// fetch loads the categories concurrently and concatenates them in category order.
// A product listed under several categories is kept once.
func (h *Handler) fetch(ctx context.Context, categories []string) ([]model.Product, error) {
	if len(categories) == 0 {
		return h.catalog.FetchCatalog(ctx, "")
	}

	results := make([][]model.Product, len(categories))
	group, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		i, category := i, category
		group.Go(func() error {
			products, err := h.catalog.FetchCatalog(gctx, category)
			if err != nil {
				return err
			}
			results[i] = products
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	products := make([]model.Product, 0)
	for _, list := range results {
		for _, p := range list {
			if p.HasPurchaseLink() {
				if _, ok := seen[p.Key()]; ok {
					continue
				}
				seen[p.Key()] = struct{}{}
			}
			products = append(products, p)
		}
	}
	return products, nil
}

func PreferencesHash(prefs model.Preferences) string {
	return utils.HashAll(
		strings.Join(prefs.Categories, "\x00"),
		strings.Join(prefs.SustainabilityPreferences, "\x00"),
		fmt.Sprint(prefs.PriceRange.Min),
		fmt.Sprint(prefs.PriceRange.Max),
	)
}
