package recommendations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-ecocidade/internal/database"
	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/model"
	"go-ecocidade/internal/utils"

	"cloud.google.com/go/firestore"
)

type RecommendationsRepository struct {
	db database.Client
}

var _ IRepository = RecommendationsRepository{}

func New(db database.Client) RecommendationsRepository {
	return RecommendationsRepository{
		db: db,
	}
}

func (r RecommendationsRepository) GetById(ctx context.Context, userId string) (*model.Recommendations, error) {

	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(recommendationsNode).Doc(userId))
	if errors.Is(err, database.ErrDocNotFound) {
		return nil, ierr.NotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get recommendations: %w, userId: %s", err, userId)
	}

	rec := &model.Recommendations{}
	if err := docSnap.DataTo(rec); err != nil {
		return nil, fmt.Errorf("get recommendations: %w, userId: %s", err, userId)
	}
	return rec, nil
}

func (r RecommendationsRepository) Products(ctx context.Context, userId string) ([]model.RecommendedProduct, error) {

	query := r.db.Collection(recommendationsNode).Doc(userId).Collection(productsNode).OrderBy(RankFieldPath, firestore.Asc)

	products := make([]model.RecommendedProduct, 0)
	err := r.db.IterDocs(ctx, query, func(ds *firestore.DocumentSnapshot) {
		p := model.RecommendedProduct{}
		if err := ds.DataTo(&p); err != nil {
			return
		}
		products = append(products, p)
	})

	if err != nil {
		return nil, fmt.Errorf("list recommended products: %w, userId: %s", err, userId)
	}
	return products, nil
}

// Replace drops the previous ranking of the user and stores the new one. The parent doc, which
// holds the preferences hash and the update time, is written last so a failed product write
// never leaves a ranking that looks current.
func (r RecommendationsRepository) Replace(ctx context.Context, data model.Recommendations) error {

	docRef := r.db.Collection(recommendationsNode).Doc(data.UserId)
	productsRef := docRef.Collection(productsNode)

	if err := r.db.DeleteColl(ctx, productsRef); err != nil {
		return fmt.Errorf("replace recommendations: %w, userId: %s", err, data.UserId)
	}

	now := time.Now().UTC()
	data.UpdatedAt = now
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}

	batch := make([]database.DataBatch, 0, len(data.Products))
	for _, p := range data.Products {
		// The purchase link is the only stable identity of a product across catalog fetches
		docId := utils.Hash(p.Key())
		if !p.HasPurchaseLink() {
			docId = utils.Hash(p.Id)
		}
		batch = append(batch, database.DataBatch{
			DocRef: productsRef.Doc(docId),
			Data:   p,
		})
	}

	if _, err := r.db.SetDocs(ctx, batch); err != nil {
		return fmt.Errorf("replace recommended products: %w, userId: %s", err, data.UserId)
	}

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return fmt.Errorf("replace recommendations: %w, userId: %s", err, data.UserId)
	}

	return nil
}
