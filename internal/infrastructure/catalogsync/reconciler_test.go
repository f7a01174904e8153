package catalogsync

import (
	"context"
	"testing"

	"github.com/nexkart/backend/internal/domain/catalog"
	"github.com/nexkart/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSyncTestDB(t *testing.T) *persistence.Database {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}))
	return &persistence.Database{DB: db}
}

func record(name, description, originalPrice, imageURL, stock, retailPrice, wholesalerPrice string) SourceRecord {
	return SourceRecord{
		Name:            name,
		Description:     description,
		OriginalPrice:   originalPrice,
		ImageURL:        imageURL,
		Stock:           stock,
		RetailPrice:     retailPrice,
		WholesalerPrice: wholesalerPrice,
	}
}

func countProducts(t *testing.T, db *persistence.Database) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.DB.Model(&catalog.Product{}).Count(&count).Error)
	return count
}

func TestReconciler_AddsAndUpdates(t *testing.T) {
	db := setupSyncTestDB(t)
	reconciler := NewReconciler(db, zap.NewNop())
	ctx := context.Background()

	batch := []SourceRecord{
		record("Widget", "a widget", "100", "https://img/w.png", "5", "90", "80"),
		record("Gadget", "a gadget", "50", "", "3", "45", "40"),
	}

	added, updated, err := reconciler.Reconcile(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, updated)

	t.Run("second run with same batch updates in place", func(t *testing.T) {
		added, updated, err := reconciler.Reconcile(ctx, batch)
		require.NoError(t, err)
		assert.Equal(t, 0, added)
		assert.Equal(t, 2, updated)
		assert.Equal(t, int64(2), countProducts(t, db))
	})

	t.Run("existing product keeps its ID across updates", func(t *testing.T) {
		var before catalog.Product
		require.NoError(t, db.DB.First(&before, "name = ?", "Widget").Error)

		batch[0].Stock = "42"
		_, _, err := reconciler.Reconcile(ctx, batch)
		require.NoError(t, err)

		var after catalog.Product
		require.NoError(t, db.DB.First(&after, "name = ?", "Widget").Error)
		assert.Equal(t, before.ID, after.ID)
		assert.Equal(t, 42, after.Stock)
	})
}

func TestReconciler_NeverDeletes(t *testing.T) {
	db := setupSyncTestDB(t)
	reconciler := NewReconciler(db, zap.NewNop())
	ctx := context.Background()

	_, _, err := reconciler.Reconcile(ctx, []SourceRecord{
		record("Widget", "", "1", "", "1", "1", "1"),
		record("Gadget", "", "1", "", "1", "1", "1"),
	})
	require.NoError(t, err)

	// A later sheet that dropped Gadget must not remove it
	_, _, err = reconciler.Reconcile(ctx, []SourceRecord{
		record("Widget", "", "1", "", "2", "1", "1"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), countProducts(t, db))
}

func TestReconciler_DuplicateNamesCollapse(t *testing.T) {
	db := setupSyncTestDB(t)
	reconciler := NewReconciler(db, zap.NewNop())
	ctx := context.Background()

	added, updated, err := reconciler.Reconcile(ctx, []SourceRecord{
		record("Widget", "first", "100", "", "1", "90", "80"),
		record("Widget", "last", "100", "", "9", "90", "80"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added, "duplicate name counts once")
	assert.Equal(t, 0, updated)

	var product catalog.Product
	require.NoError(t, db.DB.First(&product, "name = ?", "Widget").Error)
	assert.Equal(t, "last", product.Description)
	assert.Equal(t, 9, product.Stock)
}

func TestReconciler_CoercionFailureRollsBackEverything(t *testing.T) {
	db := setupSyncTestDB(t)
	reconciler := NewReconciler(db, zap.NewNop())
	ctx := context.Background()

	// Seed a product that a later failed run will try to update
	_, _, err := reconciler.Reconcile(ctx, []SourceRecord{
		record("Widget", "original", "100", "", "5", "90", "80"),
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		batch []SourceRecord
	}{
		{
			name: "bad price aborts after a valid update",
			batch: []SourceRecord{
				record("Widget", "mutated", "100", "", "5", "90", "80"),
				record("Broken", "", "not-a-price", "", "1", "1", "1"),
			},
		},
		{
			name: "bad stock aborts after a valid insert",
			batch: []SourceRecord{
				record("Fresh", "", "1", "", "1", "1", "1"),
				record("Broken", "", "1", "", "many", "1", "1"),
			},
		},
		{
			name: "negative price rejected",
			batch: []SourceRecord{
				record("Broken", "", "-5", "", "1", "1", "1"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, updated, err := reconciler.Reconcile(ctx, tt.batch)
			require.Error(t, err)
			assert.Zero(t, added)
			assert.Zero(t, updated)

			var coercionErr *CoercionError
			assert.ErrorAs(t, err, &coercionErr)

			// Store must be byte-identical to the pre-run state
			assert.Equal(t, int64(1), countProducts(t, db))
			var widget catalog.Product
			require.NoError(t, db.DB.First(&widget, "name = ?", "Widget").Error)
			assert.Equal(t, "original", widget.Description)
		})
	}
}

func TestReconciler_CoercionErrorCarriesPosition(t *testing.T) {
	db := setupSyncTestDB(t)
	reconciler := NewReconciler(db, zap.NewNop())

	rec := record("Broken", "", "1", "", "many", "1", "1")
	rec.Line = 7

	_, _, err := reconciler.Reconcile(context.Background(), []SourceRecord{rec})
	require.Error(t, err)

	var coercionErr *CoercionError
	require.ErrorAs(t, err, &coercionErr)
	assert.Equal(t, 7, coercionErr.Row)
	assert.Equal(t, ColumnStock, coercionErr.Column)
	assert.Equal(t, "many", coercionErr.Value)
}

func TestCollapseByName(t *testing.T) {
	out := collapseByName([]SourceRecord{
		{Name: "A", Stock: "1"},
		{Name: "B", Stock: "2"},
		{Name: "A", Stock: "3"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Name)
	assert.Equal(t, "3", out[0].Stock, "last occurrence wins")
	assert.Equal(t, "B", out[1].Name)
}
