package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByOwner returns all cart items for a user
func (r *GormCartRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]shopping.CartItem, error) {
	var items []shopping.CartItem
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindItem finds a specific cart item by owner and product
func (r *GormCartRepository) FindItem(ctx context.Context, ownerID, productID uuid.UUID) (*shopping.CartItem, error) {
	var item shopping.CartItem
	if err := r.db.WithContext(ctx).
		First(&item, "owner_id = ? AND product_id = ?", ownerID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save creates or updates a cart item
func (r *GormCartRepository) Save(ctx context.Context, item *shopping.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a cart item
func (r *GormCartRepository) Delete(ctx context.Context, ownerID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&shopping.CartItem{}, "owner_id = ? AND product_id = ?", ownerID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Clear removes all cart items for a user
func (r *GormCartRepository) Clear(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&shopping.CartItem{}, "owner_id = ?", ownerID).Error
}

var _ shopping.CartRepository = (*GormCartRepository)(nil)
