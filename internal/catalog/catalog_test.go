package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/model"
	"go-ecocidade/internal/repository/filter"
	"go-ecocidade/internal/utils"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	answers []string
	errs    []error
	calls   int
	prompts []string
}

func (f *fakePrompter) Ask(ctx context.Context, instruction, prompt string) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.answers) {
		return f.answers[i], nil
	}
	return f.answers[len(f.answers)-1], nil
}

type failingSource struct{ err error }

func (f failingSource) FetchCatalog(context.Context, string) ([]model.Product, error) {
	return nil, f.err
}

type fakeProductRepo struct {
	products []model.Product
	where    []filter.Where
	err      error
}

func (f *fakeProductRepo) GetById(ctx context.Context, id string) (*model.Product, error) {
	return nil, ierr.NotFound
}
func (f *fakeProductRepo) Create(ctx context.Context, data model.Product) error { return nil }
func (f *fakeProductRepo) CreateMany(ctx context.Context, data []model.Product) error {
	return nil
}
func (f *fakeProductRepo) List(ctx context.Context, where []filter.Where) ([]model.Product, error) {
	f.where = where
	return f.products, f.err
}

const answer = "Here you go:\n```json\n" + `{"products": [
	{"name": "Lamp", "price": 10, "category": "energy", "certifications": ["LED"], "affiliateLink": "https://shop.pt/lamp", "sustainabilityScore": 8},
	{"name": "Bag", "price": 20, "category": "energy", "affiliateLink": "#"},
	{"name": "", "price": 5, "category": "energy", "affiliateLink": "https://shop.pt/empty"}
]}` + "\n```"

func fastRetry() AIOption {
	return WithRetry(utils.NewRetryHandler(time.Second, time.Millisecond, 2))
}

func TestAIFetchCatalog(t *testing.T) {
	prompter := &fakePrompter{answers: []string{answer}}
	source := NewAI(prompter, fastRetry())

	products, err := source.FetchCatalog(context.Background(), "energy")
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Lamp", products[0].Name)
	assert.NotEmpty(t, products[0].Id)
	assert.Equal(t, 8.0, *products[0].SustainabilityScore)
	assert.Equal(t, model.NoPurchaseLink, products[1].AffiliateLink)
	assert.Contains(t, prompter.prompts[0], "energy")
}

func TestAIRegeneratesIdsPerFetch(t *testing.T) {
	source := NewAI(&fakePrompter{answers: []string{answer}}, fastRetry())

	first, err := source.FetchCatalog(context.Background(), "")
	require.NoError(t, err)
	second, err := source.FetchCatalog(context.Background(), "")
	require.NoError(t, err)

	assert.NotEqual(t, first[0].Id, second[0].Id)
	assert.Equal(t, first[0].Key(), second[0].Key())
}

func TestAIRetriesTransientFailures(t *testing.T) {
	prompter := &fakePrompter{answers: []string{"", answer}, errs: []error{errors.New("503")}}
	source := NewAI(prompter, fastRetry())

	products, err := source.FetchCatalog(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 2, prompter.calls)
}

func TestAIUnavailable(t *testing.T) {
	prompter := &fakePrompter{answers: []string{"I cannot help with that"}}
	source := NewAI(prompter, fastRetry())

	_, err := source.FetchCatalog(context.Background(), "")

	assert.ErrorIs(t, err, ierr.CatalogUnavailable)
}

func TestAIBreakerOpens(t *testing.T) {
	prompter := &fakePrompter{answers: []string{""}, errs: []error{errors.New("down"), errors.New("down")}}
	source := NewAI(prompter,
		WithRetry(utils.NewRetryHandler(0, 0, 1)),
		WithBreaker(gobreaker.Settings{
			Name:    "test",
			Timeout: time.Hour,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 1
			},
		}))

	_, err := source.FetchCatalog(context.Background(), "")
	require.ErrorIs(t, err, ierr.CatalogUnavailable)

	_, err = source.FetchCatalog(context.Background(), "")
	assert.ErrorIs(t, err, ierr.CatalogUnavailable)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 1, prompter.calls)
}

type halfTruncater struct{}

func (halfTruncater) Truncate(s string, maxTokens int) string {
	return s[:maxTokens]
}

func TestAITruncatesPrompt(t *testing.T) {
	prompter := &fakePrompter{answers: []string{answer}}
	source := NewAI(prompter, fastRetry(), WithTokenizer(halfTruncater{}, 5))

	_, err := source.FetchCatalog(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, prompter.prompts[0], 5)
}

func TestStaticFiltersByCategory(t *testing.T) {
	source := NewStatic(MockProducts())

	products, err := source.FetchCatalog(context.Background(), "Energy")
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "energy", products[0].Category)
	assert.NotEmpty(t, products[0].Id)
}

func TestMockProductsHaveDistinctPurchaseLinks(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range MockProducts() {
		assert.True(t, p.HasPurchaseLink())
		assert.False(t, seen[p.Key()])
		seen[p.Key()] = true
	}
}

func TestFallback(t *testing.T) {
	down := failingSource{err: unavailable(errors.New("down"))}

	products, err := Fallback(down, NewStatic(MockProducts())).FetchCatalog(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, products, len(MockProducts()))
}

func TestFallbackKeepsOtherErrors(t *testing.T) {
	other := errors.New("bad request")

	_, err := Fallback(failingSource{err: other}, NewStatic(MockProducts())).FetchCatalog(context.Background(), "")

	assert.ErrorIs(t, err, other)
}

func TestFirestoreSource(t *testing.T) {
	repo := &fakeProductRepo{products: []model.Product{{Id: "doc1", Name: "Lamp", Category: "energy"}}}

	products, err := NewFirestore(repo).FetchCatalog(context.Background(), "energy")

	require.NoError(t, err)
	require.Len(t, repo.where, 1)
	assert.Equal(t, "category", repo.where[0].Path)
	assert.Equal(t, "doc1", products[0].Id)
	assert.Equal(t, model.NoPurchaseLink, products[0].AffiliateLink)
}

func TestFirestoreSourceUnavailable(t *testing.T) {
	repo := &fakeProductRepo{err: errors.New("rpc error: code = Unavailable")}

	_, err := NewFirestore(repo).FetchCatalog(context.Background(), "")

	assert.ErrorIs(t, err, ierr.CatalogUnavailable)
	assert.Nil(t, repo.where)
}
