package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByOwner returns all cart items for a user
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]CartItem, error)

	// FindItem finds a specific cart item by owner and product
	FindItem(ctx context.Context, ownerID, productID uuid.UUID) (*CartItem, error)

	// Save creates or updates a cart item
	Save(ctx context.Context, item *CartItem) error

	// Delete removes a cart item
	Delete(ctx context.Context, ownerID, productID uuid.UUID) error

	// Clear removes all cart items for a user
	Clear(ctx context.Context, ownerID uuid.UUID) error
}

// WishlistRepository defines the interface for wishlist persistence
type WishlistRepository interface {
	// FindByOwner returns all wishlist items for a user
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]WishlistItem, error)

	// FindItem finds a specific wishlist item by owner and product
	FindItem(ctx context.Context, ownerID, productID uuid.UUID) (*WishlistItem, error)

	// Save creates or updates a wishlist item
	Save(ctx context.Context, item *WishlistItem) error

	// Delete removes a wishlist item
	Delete(ctx context.Context, ownerID, productID uuid.UUID) error
}

// CouponRepository defines the interface for coupon persistence
type CouponRepository interface {
	// FindByCode finds a coupon by its code
	FindByCode(ctx context.Context, code string) (*Coupon, error)

	// Save creates or updates a coupon
	Save(ctx context.Context, coupon *Coupon) error
}
