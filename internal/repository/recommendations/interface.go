package recommendations

import (
	"context"

	"go-ecocidade/internal/model"
)

type IRepository interface {
	// GetById returns the recommendations doc without its products.
	GetById(ctx context.Context, userId string) (*model.Recommendations, error)
	Products(ctx context.Context, userId string) ([]model.RecommendedProduct, error)
	Replace(ctx context.Context, data model.Recommendations) error
}
