package favorites

import (
	"context"

	"go-ecocidade/internal/model"
)

type IRepository interface {
	Read(ctx context.Context, userId string) ([]model.Product, error)
	Write(ctx context.Context, userId string, favorites []model.Product) error
}
