package shopping

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/catalog"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/domain/shopping"
	"github.com/shopspring/decimal"
)

// CartItemView is one rendered cart line
type CartItemView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartView is the rendered cart with its subtotal
type CartView struct {
	Items    []CartItemView  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CouponView is a validated coupon ready to apply at checkout
type CouponView struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CartService manages a user's cart
type CartService struct {
	cart     shopping.CartRepository
	products catalog.ProductRepository
	coupons  shopping.CouponRepository
}

// NewCartService creates a new CartService
func NewCartService(cart shopping.CartRepository, products catalog.ProductRepository, coupons shopping.CouponRepository) *CartService {
	return &CartService{cart: cart, products: products, coupons: coupons}
}

// View returns the user's cart
func (s *CartService) View(ctx context.Context, ownerID uuid.UUID) (*CartView, error) {
	items, err := s.cart.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return renderCart(items), nil
}

// Add puts a product in the cart, or bumps its quantity when already
// there. The stored price is the caller's role price at add time.
func (s *CartService) Add(ctx context.Context, ownerID, productID uuid.UUID, role string) (*CartView, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cart.FindItem(ctx, ownerID, productID)
	switch {
	case err == nil:
		existing.Adjust(1)
		if err := s.cart.Save(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		item := shopping.NewCartItem(ownerID, productID, product.Name, product.PriceForRole(role), product.ImageURL)
		if err := s.cart.Save(ctx, item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.View(ctx, ownerID)
}

// Adjust changes an item's quantity by amount and removes the item
// when it drops to zero or below
func (s *CartService) Adjust(ctx context.Context, ownerID, productID uuid.UUID, amount int) (*CartView, error) {
	item, err := s.cart.FindItem(ctx, ownerID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotInCart
		}
		return nil, err
	}

	if remove := item.Adjust(amount); remove {
		if err := s.cart.Delete(ctx, ownerID, productID); err != nil {
			return nil, err
		}
	} else if err := s.cart.Save(ctx, item); err != nil {
		return nil, err
	}

	return s.View(ctx, ownerID)
}

// Remove deletes an item from the cart
func (s *CartService) Remove(ctx context.Context, ownerID, productID uuid.UUID) (*CartView, error) {
	if err := s.cart.Delete(ctx, ownerID, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotInCart
		}
		return nil, err
	}
	return s.View(ctx, ownerID)
}

// ValidateCoupon checks a code and returns its discount when the
// coupon is active and unexpired
func (s *CartService) ValidateCoupon(ctx context.Context, code string) (*CouponView, error) {
	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCoupon
		}
		return nil, err
	}
	if !coupon.IsRedeemable(time.Now()) {
		return nil, shared.ErrInvalidCoupon
	}
	return &CouponView{Code: coupon.Code, DiscountPercent: coupon.DiscountPercent}, nil
}

func renderCart(items []shopping.CartItem) *CartView {
	view := &CartView{
		Items:    make([]CartItemView, len(items)),
		Subtotal: decimal.Zero,
	}
	for i, item := range items {
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items[i] = CartItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			ImageURL:    item.ImageURL,
			Quantity:    item.Quantity,
			Subtotal:    subtotal,
		}
		view.Subtotal = view.Subtotal.Add(subtotal)
	}
	return view
}
