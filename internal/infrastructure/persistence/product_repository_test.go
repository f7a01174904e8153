package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/catalog"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, catalog.ProductFields{
		Description:     "test product",
		OriginalPrice:   decimal.NewFromInt(100),
		RetailPrice:     decimal.NewFromInt(90),
		WholesalerPrice: decimal.NewFromInt(80),
		Stock:           10,
	})
	require.NoError(t, err)
	return product
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newTestProduct(t, "Steel Widget")
	require.NoError(t, repo.Save(ctx, product))

	t.Run("finds by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Steel Widget", found.Name)
		assert.True(t, found.RetailPrice.Equal(decimal.NewFromInt(90)))
	})

	t.Run("finds by name", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "Steel Widget")
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
	})

	t.Run("returns ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns ErrNotFound for unknown name", func(t *testing.T) {
		_, err := repo.FindByName(ctx, "No Such Product")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Copper Pipe", "Copper Wire", "Brass Valve"} {
		require.NoError(t, repo.Save(ctx, newTestProduct(t, name)))
	}

	t.Run("returns all ordered by name", func(t *testing.T) {
		products, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "Brass Valve", products[0].Name)
	})

	t.Run("filters by search term case-insensitively", func(t *testing.T) {
		products, err := repo.FindAll(ctx, shared.Filter{Search: "copper"})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("paginates", func(t *testing.T) {
		products, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("counts with search", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.Filter{Search: "copper"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newTestProduct(t, "Doomed Widget")
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, product.ID), shared.ErrNotFound)
}

func TestGormProductRepository_UpdatePreservesIdentity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := newTestProduct(t, "Widget")
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, product.ApplyFields(catalog.ProductFields{
		Description:     "updated",
		OriginalPrice:   decimal.NewFromInt(200),
		RetailPrice:     decimal.NewFromInt(180),
		WholesalerPrice: decimal.NewFromInt(160),
		Stock:           5,
	}))
	require.NoError(t, repo.Save(ctx, product))

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	found, err := repo.FindByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
	assert.Equal(t, "updated", found.Description)
	assert.Equal(t, 5, found.Stock)
}
