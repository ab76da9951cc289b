package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryService() *services.ProductService {
	return services.NewProductService(repositories.NewMemoryProductRepository())
}

func TestScenario_CreateAndFetch(t *testing.T) {
	ctx := context.Background()
	service := newMemoryService()

	created, err := service.CreateProduct(ctx, input("Widget", 9.99, 3, strPtr("small")))
	require.NoError(t, err)
	require.True(t, created.Persisted())

	got, err := service.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Product{ID: created.ID, ProductName: "Widget", Price: 9.99, Quantity: 3, Description: strPtr("small")}, *got)
}

func TestScenario_ListAfterTwoCreates(t *testing.T) {
	ctx := context.Background()
	service := newMemoryService()

	a, err := service.CreateProduct(ctx, input("A", 1.0, 1, nil))
	require.NoError(t, err)
	b, err := service.CreateProduct(ctx, input("B", 2.0, 2, strPtr("x")))
	require.NoError(t, err)

	products, err := service.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Product{*a, *b}, products)
}

func TestScenario_UpdateOverwrites(t *testing.T) {
	ctx := context.Background()
	service := newMemoryService()

	created, err := service.CreateProduct(ctx, input("Old", 1.0, 1, strPtr("a")))
	require.NoError(t, err)

	body := input("New", 2.5, 7, nil)
	updated, err := service.UpdateProduct(ctx, created.ID, body)
	require.NoError(t, err)

	want := models.Product{ID: created.ID, ProductName: "New", Price: 2.5, Quantity: 7}
	assert.Equal(t, want, *updated)

	got, err := service.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestScenario_UpdateNonexistent(t *testing.T) {
	ctx := context.Background()
	service := newMemoryService()

	_, err := service.CreateProduct(ctx, input("Keep", 1.0, 1, nil))
	require.NoError(t, err)
	before, err := service.GetAllProducts(ctx)
	require.NoError(t, err)

	_, err = service.UpdateProduct(ctx, 999999, input("X", 1.0, 1, strPtr("y")))
	assert.True(t, errors.Is(err, models.ErrNotFound))

	after, err := service.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestScenario_UpdateNonexistentWithInvalidBody(t *testing.T) {
	ctx := context.Background()
	service := newMemoryService()

	bodies := map[string]models.ProductInput{
		"description too long": input("X", 1.0, 1, strPtr(strings.Repeat("a", 501))),
		"empty body":           {},
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := service.UpdateProduct(ctx, 999999, body)
			assert.True(t, errors.Is(err, models.ErrNotFound))
			assert.False(t, errors.Is(err, models.ErrValidation))
		})
	}
}

func TestScenario_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	service := newMemoryService()

	created, err := service.CreateProduct(ctx, input("Gone", 1.0, 1, nil))
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(ctx, created.ID))

	_, err = service.GetProductByID(ctx, created.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	err = service.DeleteProduct(ctx, created.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestScenario_DescriptionBoundary(t *testing.T) {
	ctx := context.Background()
	service := newMemoryService()

	ok, err := service.CreateProduct(ctx, input("Edge", 1.0, 1, strPtr(strings.Repeat("a", 500))))
	require.NoError(t, err)
	assert.Len(t, *ok.Description, 500)

	_, err = service.CreateProduct(ctx, input("Edge", 1.0, 1, strPtr(strings.Repeat("a", 501))))
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = service.UpdateProduct(ctx, ok.ID, input("Edge", 1.0, 1, strPtr(strings.Repeat("a", 501))))
	assert.True(t, errors.Is(err, models.ErrValidation))

	got, err := service.GetProductByID(ctx, ok.ID)
	require.NoError(t, err)
	assert.Len(t, *got.Description, 500)

	products, err := service.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestScenario_UpdateTouchesOnlyTargetRow(t *testing.T) {
	ctx := context.Background()
	service := newMemoryService()

	first, err := service.CreateProduct(ctx, input("First", 1.0, 1, nil))
	require.NoError(t, err)
	second, err := service.CreateProduct(ctx, input("Second", 2.0, 2, nil))
	require.NoError(t, err)

	_, err = service.UpdateProduct(ctx, first.ID, input("First v2", 3.0, 3, nil))
	require.NoError(t, err)

	untouched, err := service.GetProductByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, *second, *untouched)
}
