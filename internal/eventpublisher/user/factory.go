package user

import (
	"context"

	userRepo "go-ecocidade/internal/repository/user"
)

type Factory interface {
	OnUserChanged() UserPublisher
}

type factory struct {
	repo userRepo.IRepository
}

func UserPublisherFactory(repo userRepo.IRepository) Factory {
	return &factory{
		repo: repo,
	}
}

func (f *factory) OnUserChanged() UserPublisher {
	return newPublisher(func(ctx context.Context) <-chan userRepo.UserEvent {
		return f.repo.NotifyOnChanged(ctx, nil)
	})
}
