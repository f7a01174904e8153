package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormCouponRepository implements CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// FindByCode finds a coupon by its code, matched case-insensitively
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*shopping.Coupon, error) {
	var coupon shopping.Coupon
	if err := r.db.WithContext(ctx).
		First(&coupon, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// Save creates or updates a coupon, storing the code uppercased
func (r *GormCouponRepository) Save(ctx context.Context, coupon *shopping.Coupon) error {
	coupon.Code = strings.ToUpper(coupon.Code)
	return r.db.WithContext(ctx).Save(coupon).Error
}

var _ shopping.CouponRepository = (*GormCouponRepository)(nil)
