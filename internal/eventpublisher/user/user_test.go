package user

import (
	"context"
	"testing"
	"time"

	"go-ecocidade/internal/eventpublisher/event"
	"go-ecocidade/internal/model"
	"go-ecocidade/internal/repository/filter"
	userRepo "go-ecocidade/internal/repository/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	events chan userRepo.UserEvent
	where  []filter.Where
}

func (f *fakeUserRepo) GetById(ctx context.Context, id string) (*model.User, error) { return nil, nil }
func (f *fakeUserRepo) UpdatePreferences(ctx context.Context, id string, prefs model.Preferences) error {
	return nil
}
func (f *fakeUserRepo) NotifyOnChanged(ctx context.Context, where []filter.Where) <-chan userRepo.UserEvent {
	f.where = where
	return f.events
}

func TestPublisherForwardsUsers(t *testing.T) {
	repo := &fakeUserRepo{events: make(chan userRepo.UserEvent)}
	publisher := UserPublisherFactory(repo).OnUserChanged()
	sub := make(chan event.Event, 1)
	publisher.Subscribe(sub)

	done := make(chan error, 1)
	go func() { done <- publisher.Start(context.Background()) }()

	repo.events <- userRepo.UserEvent{User: model.User{Id: "u1"}}
	select {
	case e := <-sub:
		assert.Equal(t, "u1", e.Message.(model.User).Id)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	close(repo.events)
	require.NoError(t, <-done)

	_, open := <-sub
	assert.False(t, open)
}

func TestPublisherStopsOnCancel(t *testing.T) {
	repo := &fakeUserRepo{events: make(chan userRepo.UserEvent)}
	publisher := UserPublisherFactory(repo).OnUserChanged()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.where)
}
