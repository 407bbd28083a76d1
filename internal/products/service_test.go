package products

import (
	"context"
	"errors"
	"testing"

	"github.com/niastore/nia-storefront/pkg/db/dbtest"
	"github.com/niastore/nia-storefront/pkg/db/models"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(dbtest.Open(t).DB())
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func strPtr(v string) *string { return &v }

func TestCreateListAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductInput{
		Name:          " Nike Air Max ",
		Price:         decimal.RequireFromString("299.99"),
		Image:         "images/sneaker1.jpg",
		Category:      "sneakers",
		Description:   strPtr("  "),
		StockQuantity: 3,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Nike Air Max", created.Name)
	assert.Equal(t, "299.99", created.Price)
	assert.Nil(t, created.Description)
	assert.False(t, created.CreatedAt.IsZero())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "sneakers", got.Category)
	assert.Equal(t, 3, got.StockQuantity)
}

func TestPriceRendersTwoPlaces(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(context.Background(), CreateProductInput{
		Name: "Cap", Price: decimal.NewFromInt(80), Image: "images/cap.png", Category: "hats",
	})
	require.NoError(t, err)
	assert.Equal(t, "80.00", created.Price)
}

func TestGetMissingProduct(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), 999)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product not found!", typed.Message())
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductInput{
		Name: "Polo Shirt", Price: decimal.RequireFromString("79.99"), Image: "images/shirt2.jpg", Category: "shirts",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 12345))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, created.ID))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateProductInput{
		Price:         decimal.RequireFromString("-1"),
		StockQuantity: -2,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details := typed.Details().(map[string]string)
	for _, field := range []string{"name", "category", "image", "price", "stock_quantity"} {
		assert.Contains(t, details, field)
	}
}

type failingStore struct{}

func (failingStore) List(context.Context) ([]models.Product, error) {
	return nil, errors.New("dial tcp: connection refused")
}
func (failingStore) FindByID(context.Context, uint) (*models.Product, error) {
	return nil, errors.New("dial tcp: connection refused")
}
func (failingStore) Create(context.Context, *models.Product) (*models.Product, error) {
	return nil, errors.New("dial tcp: connection refused")
}
func (failingStore) Delete(context.Context, uint) (int64, error) {
	return 0, errors.New("dial tcp: connection refused")
}

func TestStoreFailuresSurfaceAsDependencyErrors(t *testing.T) {
	svc, err := NewService(failingStore{})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.List(ctx)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	_, err = svc.Get(ctx, 1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, 1), pkgerrors.CodeDependency))
}

func TestSeedSamplesOnlyWhenEmpty(t *testing.T) {
	_, repo := newTestService(t)
	ctx := context.Background()

	inserted, err := SeedSamples(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 6, inserted)

	inserted, err = SeedSamples(ctx, repo)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Nike Air Max", rows[0].Name)
	assert.Equal(t, "299.99", rows[0].Price.StringFixed(2))
}
