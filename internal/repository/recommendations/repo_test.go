package recommendations

import (
	"context"
	"errors"
	"testing"

	"go-ecocidade/internal/database"
	"go-ecocidade/internal/model"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("unavailable")

// fakeClient builds real refs but keeps every write in memory.
type fakeClient struct {
	*firestore.Client
	setDocsErr error
	writes     []string
	parent     interface{}
	products   []database.DataBatch
}

func newFakeClient(t *testing.T) *fakeClient {
	t.Helper()
	// refs are built locally; the emulator address is never dialed
	t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:8080")
	client, err := firestore.NewClient(context.Background(), "ecocidade-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return &fakeClient{Client: client}
}

func (f *fakeClient) NotifyOnChanges(ctx context.Context, it *firestore.QuerySnapshotIterator, kinds ...firestore.DocumentChangeKind) <-chan database.ChangeEvent {
	return nil
}

func (f *fakeClient) GetDoc(ctx context.Context, docRef *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	return nil, database.ErrDocNotFound
}

func (f *fakeClient) IterDocs(ctx context.Context, query firestore.Query, fn func(*firestore.DocumentSnapshot)) error {
	return nil
}

func (f *fakeClient) SetDoc(ctx context.Context, docRef *firestore.DocumentRef, data interface{}, opts ...firestore.SetOption) (*firestore.WriteResult, error) {
	f.writes = append(f.writes, "doc")
	f.parent = data
	return &firestore.WriteResult{}, nil
}

func (f *fakeClient) SetDocs(ctx context.Context, data []database.DataBatch) ([]*firestore.WriteResult, error) {
	f.writes = append(f.writes, "products")
	if f.setDocsErr != nil {
		return nil, f.setDocsErr
	}
	f.products = data
	return nil, nil
}

func (f *fakeClient) DeleteColl(ctx context.Context, collRef *firestore.CollectionRef) error {
	f.writes = append(f.writes, "delete")
	return nil
}

func ranking() model.Recommendations {
	return model.Recommendations{
		UserId:          "u1",
		PreferencesHash: "h",
		Products: []model.RecommendedProduct{
			{Product: model.Product{Id: "1", AffiliateLink: "https://shop/1"}, Rank: 1, Score: 9},
			{Product: model.Product{Id: "2", AffiliateLink: model.NoPurchaseLink}, Rank: 2, Score: 4},
		},
	}
}

func TestReplaceWritesParentDocLast(t *testing.T) {
	db := newFakeClient(t)

	require.NoError(t, New(db).Replace(context.Background(), ranking()))

	assert.Equal(t, []string{"delete", "products", "doc"}, db.writes)
	require.Len(t, db.products, 2)
	assert.Equal(t, productsNode, db.products[0].DocRef.Parent.ID)
	assert.Equal(t, "u1", db.products[0].DocRef.Parent.Parent.ID)

	rec, ok := db.parent.(model.Recommendations)
	require.True(t, ok)
	assert.Equal(t, "h", rec.PreferencesHash)
	assert.False(t, rec.UpdatedAt.IsZero())
	assert.Equal(t, rec.UpdatedAt, rec.CreatedAt)
}

func TestReplaceProductsFailureLeavesParentDocUntouched(t *testing.T) {
	db := newFakeClient(t)
	db.setDocsErr = errUnavailable

	err := New(db).Replace(context.Background(), ranking())

	assert.ErrorIs(t, err, errUnavailable)
	assert.Nil(t, db.parent)
	assert.NotContains(t, db.writes, "doc")
}
