package user

import (
	"context"
	"errors"
	"time"

	"go-ecocidade/internal/eventpublisher"
	"go-ecocidade/internal/eventpublisher/common"
	"go-ecocidade/internal/eventpublisher/event"
	userRepo "go-ecocidade/internal/repository/user"

	"github.com/rs/zerolog/log"
)

const (
	writeTimeout          = time.Second
	writeFailureThreshold = 3
)

type eventFunc func(context.Context) <-chan userRepo.UserEvent

type UserPublisher interface {
	eventpublisher.Source
}

type userPublisher struct {
	eventFn    eventFunc
	submanager *common.SubManager
	publisher  *common.PublisherWithFailureThreshold
}

func newPublisher(fn eventFunc) UserPublisher {
	return &userPublisher{
		eventFn:    fn,
		submanager: common.NewSubManager(),
		publisher:  common.NewPublisherWithFailureThreshold(writeTimeout, writeFailureThreshold),
	}
}

func (p *userPublisher) Subscribe(subscriber event.EventWChannel) {
	p.submanager.Subscribe(subscriber)
}

func (p *userPublisher) Unsubscribe(subscriber event.EventWChannel) {
	p.submanager.Unsubscribe(subscriber)
	p.publisher.Forget(subscriber)
}

func (p *userPublisher) publish(ctx context.Context, userEvent userRepo.UserEvent) {
	p.submanager.OnSubscribers(func(subscriber event.EventWChannel) {
		go func() {
			if err := p.publisher.Publish(ctx,
				subscriber,
				event.Event{Type: event.DbDocChanged, Message: userEvent.User, Err: userEvent.Err}); err != nil {
				p.Unsubscribe(subscriber)
			}
		}()
	})
}

// Start forwards user changes to the subscribers until the context is done or the listener stops.
// All subscribers are closed on return.
func (p *userPublisher) Start(ctx context.Context) error {
	defer p.submanager.UnsubscribeAll()

	eventsCh := p.eventFn(ctx)
	for {
		select {
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.Canceled) {
				log.Error().Err(ctx.Err()).Msg("UserPublisher stopped")
			}
			return ctx.Err()
		case e, ok := <-eventsCh:
			if !ok {
				return nil
			}
			log.Debug().Str("userId", e.User.Id).Msg("publish user change")
			p.publish(ctx, e)
		}
	}
}
