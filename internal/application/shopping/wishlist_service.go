package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/catalog"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/domain/shopping"
	"github.com/shopspring/decimal"
)

// WishlistItemView is one rendered wishlist entry
type WishlistItemView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

// WishlistService manages a user's wishlist
type WishlistService struct {
	wishlist shopping.WishlistRepository
	products catalog.ProductRepository
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(wishlist shopping.WishlistRepository, products catalog.ProductRepository) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

// List returns the user's wishlist
func (s *WishlistService) List(ctx context.Context, ownerID uuid.UUID) ([]WishlistItemView, error) {
	items, err := s.wishlist.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]WishlistItemView, len(items))
	for i, item := range items {
		views[i] = WishlistItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			ImageURL:    item.ImageURL,
		}
	}
	return views, nil
}

// Add saves a product to the wishlist. Adding an already-saved
// product is a no-op.
func (s *WishlistService) Add(ctx context.Context, ownerID, productID uuid.UUID, role string) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if _, err := s.wishlist.FindItem(ctx, ownerID, productID); err == nil {
		return nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	item := shopping.NewWishlistItem(ownerID, productID, product.Name, product.PriceForRole(role), product.ImageURL)
	return s.wishlist.Save(ctx, item)
}

// Remove deletes a product from the wishlist
func (s *WishlistService) Remove(ctx context.Context, ownerID, productID uuid.UUID) error {
	if err := s.wishlist.Delete(ctx, ownerID, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotInWishlist
		}
		return err
	}
	return nil
}
