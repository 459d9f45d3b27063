package catalog

import (
	"context"

	"go-ecocidade/internal/model"
	"go-ecocidade/internal/repository/filter"
	"go-ecocidade/internal/repository/ops"
	productRepository "go-ecocidade/internal/repository/product"
)

// Firestore reads the products collection. Doc ids are kept, but callers must still key
// favorites by purchase link since other sources regenerate ids.
type Firestore struct {
	repo productRepository.IRepository
}

func NewFirestore(repo productRepository.IRepository) Firestore {
	return Firestore{repo: repo}
}

func (s Firestore) FetchCatalog(ctx context.Context, category string) ([]model.Product, error) {
	var where []filter.Where
	if category != "" {
		where = []filter.Where{{Path: productRepository.CategoryFieldPath, Op: ops.Equal, Value: category}}
	}

	products, err := s.repo.List(ctx, where)
	if err != nil {
		return nil, unavailable(err)
	}
	return normalize(products, false), nil
}
