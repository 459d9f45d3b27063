package product

import (
	"context"

	"go-ecocidade/internal/model"
	"go-ecocidade/internal/repository/filter"
)

type IRepository interface {
	GetById(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, data model.Product) error
	CreateMany(ctx context.Context, data []model.Product) error
	List(ctx context.Context, where []filter.Where) ([]model.Product, error)
}
