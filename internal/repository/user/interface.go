package user

import (
	"context"

	"go-ecocidade/internal/model"
	"go-ecocidade/internal/repository/filter"
)

type UserEvent struct {
	User model.User
	Err  error
}

type IRepository interface {
	GetById(ctx context.Context, id string) (*model.User, error)
	UpdatePreferences(ctx context.Context, id string, prefs model.Preferences) error
	NotifyOnChanged(ctx context.Context, where []filter.Where) <-chan UserEvent
}
