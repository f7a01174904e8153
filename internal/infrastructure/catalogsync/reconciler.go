package catalogsync

import (
	"context"
	"errors"
	"strconv"

	"github.com/nexkart/backend/internal/domain/catalog"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reconciler applies a parsed sheet batch to the product table by
// upserting on the product name. The whole batch runs in one
// transaction: either every row lands or none does.
type Reconciler struct {
	db     *persistence.Database
	logger *zap.Logger
}

// NewReconciler creates a new Reconciler
func NewReconciler(db *persistence.Database, logger *zap.Logger) *Reconciler {
	return &Reconciler{db: db, logger: logger}
}

// Reconcile upserts all records by exact name match. When a name
// occurs more than once in the batch the last occurrence wins and the
// name counts once. Existing products keep their identity; their
// mutable fields are overwritten. Products absent from the sheet are
// never deleted.
func (r *Reconciler) Reconcile(ctx context.Context, records []SourceRecord) (added, updated int, err error) {
	collapsed := collapseByName(records)

	err = r.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range collapsed {
			fields, cerr := coerceFields(rec)
			if cerr != nil {
				return cerr
			}

			var product catalog.Product
			ferr := tx.WithContext(ctx).First(&product, "name = ?", rec.Name).Error
			switch {
			case ferr == nil:
				if aerr := product.ApplyFields(fields); aerr != nil {
					return aerr
				}
				if serr := tx.WithContext(ctx).Save(&product).Error; serr != nil {
					return serr
				}
				updated++
			case errors.Is(ferr, gorm.ErrRecordNotFound):
				fresh, nerr := catalog.NewProduct(rec.Name, fields)
				if nerr != nil {
					return nerr
				}
				if cerr := tx.WithContext(ctx).Create(fresh).Error; cerr != nil {
					return cerr
				}
				added++
			default:
				return ferr
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	r.logger.Debug("Catalog batch reconciled",
		zap.Int("rows", len(records)),
		zap.Int("distinct_names", len(collapsed)),
		zap.Int("added", added),
		zap.Int("updated", updated),
	)
	return added, updated, nil
}

// collapseByName keeps one record per name, last occurrence winning,
// in first-seen order
func collapseByName(records []SourceRecord) []SourceRecord {
	index := make(map[string]int, len(records))
	out := make([]SourceRecord, 0, len(records))
	for _, rec := range records {
		if i, seen := index[rec.Name]; seen {
			out[i] = rec
			continue
		}
		index[rec.Name] = len(out)
		out = append(out, rec)
	}
	return out
}

// coerceFields converts the raw string cells to typed product fields
func coerceFields(rec SourceRecord) (catalog.ProductFields, error) {
	original, err := coercePrice(rec.Line, ColumnOriginalPrice, rec.OriginalPrice)
	if err != nil {
		return catalog.ProductFields{}, err
	}
	retail, err := coercePrice(rec.Line, ColumnRetailPrice, rec.RetailPrice)
	if err != nil {
		return catalog.ProductFields{}, err
	}
	wholesaler, err := coercePrice(rec.Line, ColumnWholesalerPrice, rec.WholesalerPrice)
	if err != nil {
		return catalog.ProductFields{}, err
	}

	stock, err := strconv.Atoi(rec.Stock)
	if err != nil {
		return catalog.ProductFields{}, &CoercionError{Row: rec.Line, Column: ColumnStock, Value: rec.Stock, Err: err}
	}

	return catalog.ProductFields{
		Description:     rec.Description,
		OriginalPrice:   original,
		RetailPrice:     retail,
		WholesalerPrice: wholesaler,
		ImageURL:        rec.ImageURL,
		Stock:           stock,
	}, nil
}

func coercePrice(line int, column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &CoercionError{Row: line, Column: column, Value: value, Err: err}
	}
	if d.IsNegative() {
		return decimal.Zero, &CoercionError{
			Row: line, Column: column, Value: value,
			Err: shared.NewDomainError("NEGATIVE_PRICE", "price cannot be negative"),
		}
	}
	return d, nil
}
