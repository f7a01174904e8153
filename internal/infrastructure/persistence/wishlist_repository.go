package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormWishlistRepository implements WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// FindByOwner returns all wishlist items for a user
func (r *GormWishlistRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]shopping.WishlistItem, error) {
	var items []shopping.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindItem finds a specific wishlist item by owner and product
func (r *GormWishlistRepository) FindItem(ctx context.Context, ownerID, productID uuid.UUID) (*shopping.WishlistItem, error) {
	var item shopping.WishlistItem
	if err := r.db.WithContext(ctx).
		First(&item, "owner_id = ? AND product_id = ?", ownerID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save creates or updates a wishlist item
func (r *GormWishlistRepository) Save(ctx context.Context, item *shopping.WishlistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a wishlist item
func (r *GormWishlistRepository) Delete(ctx context.Context, ownerID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&shopping.WishlistItem{}, "owner_id = ? AND product_id = ?", ownerID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ shopping.WishlistRepository = (*GormWishlistRepository)(nil)
