// Package catalog provides the product lists the favorites, comparison and ranking code consume.
// Sources do not cache. Ids are only unique within one fetch.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Source interface {
	// FetchCatalog returns the products of category, or of every category when it is empty.
	FetchCatalog(ctx context.Context, category string) ([]model.Product, error)
}

type fallback struct {
	primary   Source
	secondary Source
}

// Fallback serves secondary whenever primary fails with ierr.CatalogUnavailable.
func Fallback(primary, secondary Source) Source {
	return fallback{primary: primary, secondary: secondary}
}

func (f fallback) FetchCatalog(ctx context.Context, category string) ([]model.Product, error) {
	products, err := f.primary.FetchCatalog(ctx, category)
	if err == nil || !errors.Is(err, ierr.CatalogUnavailable) {
		return products, err
	}

	log.Warn().Err(err).Str("category", category).Msg("catalog unavailable, serving fallback products")
	return f.secondary.FetchCatalog(ctx, category)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ierr.CatalogUnavailable, err)
}

// normalize sets the purchase link sentinel on products without a link. With freshIds every
// product also gets a random id, as the AI and mock catalogs have no ids of their own.
func normalize(products []model.Product, freshIds bool) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		p = p.Snapshot()
		if freshIds || p.Id == "" {
			p.Id = uuid.NewString()
		}
		p.AffiliateLink = strings.TrimSpace(p.AffiliateLink)
		if !p.HasPurchaseLink() {
			p.AffiliateLink = model.NoPurchaseLink
		}
		if p.Price < 0 {
			p.Price = 0
		}
		out = append(out, p)
	}
	return out
}

func matchesCategory(p model.Product, category string) bool {
	return category == "" || strings.EqualFold(p.Category, category)
}
