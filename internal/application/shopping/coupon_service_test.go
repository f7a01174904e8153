package shopping

import (
	"context"
	"testing"

	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponService_CreateNormalizesCode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(persistence.NewGormCouponRepository(db))

	view, err := svc.Create(context.Background(), CouponInput{
		Code:            "save20",
		DiscountPercent: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "SAVE20", view.Code)
}

func TestCouponService_CreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(persistence.NewGormCouponRepository(db))
	ctx := context.Background()

	_, err := svc.Create(ctx, CouponInput{Code: "SAVE20", DiscountPercent: decimal.NewFromInt(20)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CouponInput{Code: "save20", DiscountPercent: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestCouponService_CreateRejectsBadDiscount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(persistence.NewGormCouponRepository(db))
	ctx := context.Background()

	_, err := svc.Create(ctx, CouponInput{Code: "NEG", DiscountPercent: decimal.NewFromInt(-1)})
	assert.Error(t, err)

	_, err = svc.Create(ctx, CouponInput{Code: "BIG", DiscountPercent: decimal.NewFromInt(101)})
	assert.Error(t, err)
}

func TestCouponService_Deactivate(t *testing.T) {
	db := setupTestDB(t)
	coupons := persistence.NewGormCouponRepository(db)
	svc := NewCouponService(coupons)
	carts := NewCartService(
		persistence.NewGormCartRepository(db),
		persistence.NewGormProductRepository(db),
		coupons,
	)
	ctx := context.Background()

	_, err := svc.Create(ctx, CouponInput{Code: "SAVE20", DiscountPercent: decimal.NewFromInt(20)})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, "SAVE20"))

	_, err = carts.ValidateCoupon(ctx, "SAVE20")
	assert.ErrorIs(t, err, shared.ErrInvalidCoupon)
}
