package user

import (
	"context"
	"errors"
	"fmt"

	"go-ecocidade/internal/database"
	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/model"
	"go-ecocidade/internal/repository/filter"
	"go-ecocidade/internal/repository/helper"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
)

type UserRepository struct {
	db database.Client
}

var _ IRepository = UserRepository{}

func New(db database.Client) UserRepository {
	return UserRepository{
		db: db,
	}
}

func (r UserRepository) GetById(ctx context.Context, id string) (*model.User, error) {

	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(userNode).Doc(id))
	if errors.Is(err, database.ErrDocNotFound) {
		return nil, ierr.NotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w, id: %s", err, id)
	}

	return toUser(docSnap)
}

func (r UserRepository) UpdatePreferences(ctx context.Context, id string, prefs model.Preferences) error {

	docRef := r.db.Collection(userNode).Doc(id)
	data := map[string]interface{}{PreferencesFieldPath: prefs}
	if _, err := r.db.SetDoc(ctx, docRef, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("update user preferences: %w, id: %s", err, id)
	}

	return nil
}

// NotifyOnChanged delivers users as they are added or modified. The channel is closed when the
// listener gives up or the context is done.
func (r UserRepository) NotifyOnChanged(ctx context.Context, where []filter.Where) <-chan UserEvent {

	ch := make(chan UserEvent)
	var writeFailureCount, writeFailureThreshold = 0, 3

	go func() {
		defer close(ch)

		query := r.db.Collection(userNode).Query
		helper.NotifyOnChanges(ctx, r.db, query, where, func(dc firestore.DocumentChange, err error) error {

			if writeFailureCount > writeFailureThreshold {
				return fmt.Errorf("write failure threshould reached")
			}

			if err != nil {
				if !(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
					log.Error().Err(err).Msg("user repo: failed to read user events")
					helper.NonblockingWrite[UserEvent](ctx, channelWriteTimeout, ch, UserEvent{Err: err})
				}
				return err
			}

			user, err := toUser(dc.Doc)
			if err != nil {
				log.Error().Err(err).Msg("user repo: failed to convert doc to user")
				return nil
			}

			if err := helper.NonblockingWrite[UserEvent](ctx, channelWriteTimeout, ch, UserEvent{User: *user}); err != nil {
				writeFailureCount++
			}

			return nil
		}, firestore.DocumentAdded, firestore.DocumentModified)
	}()

	return ch
}

func toUser(docSnap *firestore.DocumentSnapshot) (*model.User, error) {
	user := &model.User{}
	if err := docSnap.DataTo(user); err != nil {
		return nil, fmt.Errorf("decode user: %w, id: %s", err, docSnap.Ref.ID)
	}
	user.Id = docSnap.Ref.ID
	return user, nil
}
