package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-ecocidade/internal/database"
	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/model"
	"go-ecocidade/internal/repository/filter"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
)

type ProductRepository struct {
	db database.Client
}

var _ IRepository = ProductRepository{}

func New(db database.Client) ProductRepository {
	return ProductRepository{
		db: db,
	}
}

func (r ProductRepository) GetById(ctx context.Context, id string) (*model.Product, error) {

	docSnap, err := r.db.GetDoc(ctx, r.db.Collection(productNode).Doc(id))
	if errors.Is(err, database.ErrDocNotFound) {
		return nil, ierr.NotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w, id: %s", err, id)
	}

	product := &model.Product{}
	if err = docSnap.DataTo(product); err != nil {
		return nil, fmt.Errorf("get product: %w, id: %s", err, id)
	}
	product.Id = docSnap.Ref.ID

	return product, nil
}

func (r ProductRepository) Create(ctx context.Context, data model.Product) error {

	if data.Id == "" {
		return fmt.Errorf("create product: missing id")
	}

	p, err := r.GetById(ctx, data.Id)
	if p != nil {
		return fmt.Errorf("create product: already exists, id: %s", data.Id)
	}

	if err != nil && !errors.Is(err, ierr.NotFound) {
		return fmt.Errorf("create product: %w, id: %s", err, data.Id)
	}

	data.CreatedAt = time.Now().UTC()
	docRef := r.db.Collection(productNode).Doc(data.Id)
	if _, err = r.db.SetDoc(ctx, docRef, data); err != nil {
		return fmt.Errorf("create product: %w, id: %s", err, data.Id)
	}

	return nil
}

// CreateMany upserts the given products in batches. Products without an id get a generated one.
func (r ProductRepository) CreateMany(ctx context.Context, data []model.Product) error {

	batch := make([]database.DataBatch, 0, len(data))
	for _, product := range data {
		var docRef *firestore.DocumentRef
		if product.Id == "" {
			docRef = r.db.Collection(productNode).NewDoc()
			product.Id = docRef.ID
		} else {
			docRef = r.db.Collection(productNode).Doc(product.Id)
		}
		product.CreatedAt = time.Now().UTC()

		batch = append(batch, database.DataBatch{
			DocRef: docRef,
			Data:   product,
		})
	}

	if _, err := r.db.SetDocs(ctx, batch); err != nil {
		return fmt.Errorf("create products: %w", err)
	}

	return nil
}

func (r ProductRepository) List(ctx context.Context, where []filter.Where) ([]model.Product, error) {

	query := filter.Apply(r.db.Collection(productNode).Query, where)

	products := make([]model.Product, 0)
	err := r.db.IterDocs(ctx, query, func(ds *firestore.DocumentSnapshot) {
		p := model.Product{}
		if err := ds.DataTo(&p); err != nil {
			log.Error().Err(err).Str("id", ds.Ref.ID).Msg("product repo: failed to convert doc to product")
			return
		}
		p.Id = ds.Ref.ID
		products = append(products, p)
	})

	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}
