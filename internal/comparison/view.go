package comparison

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-ecocidade/internal/catalog"
	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/model"
)

// View is the filtered product list of one category together with its comparison selection.
// The selection is always a subset of the list: every reload clears it, since product ids are
// regenerated on each catalog fetch.
type View struct {
	source    catalog.Source
	selection *Selection

	mu       sync.RWMutex
	category string
	products []model.Product
}

func NewView(source catalog.Source, noticeTTL time.Duration) *View {
	return &View{
		source:    source,
		selection: NewSelection(noticeTTL),
	}
}

// Load fetches the products of category ("" for all). On failure the current list and selection are kept.
func (v *View) Load(ctx context.Context, category string) error {
	products, err := v.source.FetchCatalog(ctx, category)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.category = category
	v.products = products
	v.selection.Clear()
	return nil
}

func (v *View) Category() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.category
}

func (v *View) Products() []model.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]model.Product, len(v.products))
	for i, p := range v.products {
		out[i] = p.Snapshot()
	}
	return out
}

// Toggle selects or unselects the listed product with the given id.
func (v *View) Toggle(productId string) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, p := range v.products {
		if p.Id == productId {
			return v.selection.Toggle(p)
		}
	}
	return fmt.Errorf("toggle comparison: %w, id: %s", ierr.NotFound, productId)
}

func (v *View) Selection() *Selection {
	return v.selection
}
