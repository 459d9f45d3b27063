package favorites

import (
	"context"
	"errors"
	"fmt"

	"go-ecocidade/internal/database"
	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/model"

	"cloud.google.com/go/firestore"
)

type record struct {
	Favorites []model.Product `firestore:"favorites"`
}

// FavoritesRepository keeps the favorites of a user in users/{id}.favorites. The array is always
// replaced as a whole; merge writes leave the other fields of the user doc untouched.
type FavoritesRepository struct {
	db database.Client
}

var _ IRepository = FavoritesRepository{}

func New(db database.Client) FavoritesRepository {
	return FavoritesRepository{
		db: db,
	}
}

// Read returns ierr.NotFound when the user doc does not exist yet.
func (r FavoritesRepository) Read(ctx context.Context, userId string) ([]model.Product, error) {

	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(userNode).Doc(userId))
	if errors.Is(err, database.ErrDocNotFound) {
		return nil, ierr.NotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w, userId: %s", err, userId)
	}

	rec := record{}
	if err := docSnap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("read favorites: %w, userId: %s", err, userId)
	}

	if rec.Favorites == nil {
		return []model.Product{}, nil
	}
	return rec.Favorites, nil
}

func (r FavoritesRepository) Write(ctx context.Context, userId string, favorites []model.Product) error {

	if favorites == nil {
		favorites = []model.Product{}
	}

	docRef := r.db.Collection(userNode).Doc(userId)
	data := map[string]interface{}{FavoritesFieldPath: favorites}
	if _, err := r.db.SetDoc(ctx, docRef, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("write favorites: %w, userId: %s", err, userId)
	}

	return nil
}
