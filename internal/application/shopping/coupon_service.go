package shopping

import (
	"context"
	"errors"
	"time"

	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/domain/shopping"
	"github.com/shopspring/decimal"
)

// CouponInput carries an admin coupon creation
type CouponInput struct {
	Code            string          `json:"code" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent" binding:"required"`
	ExpiresAt       *time.Time      `json:"expires_at"`
}

// CouponService manages coupon administration
type CouponService struct {
	coupons shopping.CouponRepository
}

// NewCouponService creates a new CouponService
func NewCouponService(coupons shopping.CouponRepository) *CouponService {
	return &CouponService{coupons: coupons}
}

// Create registers a new coupon code
func (s *CouponService) Create(ctx context.Context, input CouponInput) (*CouponView, error) {
	if input.DiscountPercent.IsNegative() || input.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "discount percent must be between 0 and 100")
	}

	if _, err := s.coupons.FindByCode(ctx, input.Code); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	coupon := shopping.NewCoupon(input.Code, input.DiscountPercent, input.ExpiresAt)
	if err := s.coupons.Save(ctx, coupon); err != nil {
		return nil, err
	}
	return &CouponView{Code: coupon.Code, DiscountPercent: coupon.DiscountPercent}, nil
}

// Deactivate turns a coupon off without deleting it
func (s *CouponService) Deactivate(ctx context.Context, code string) error {
	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	coupon.IsActive = false
	return s.coupons.Save(ctx, coupon)
}
