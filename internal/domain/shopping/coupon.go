package shopping

import (
	"strings"
	"time"

	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Coupon represents a discount coupon
type Coupon struct {
	shared.BaseEntity
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsActive        bool            `gorm:"not null;default:true"`
	ExpiresAt       *time.Time
}

// TableName returns the table name for GORM
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon creates an active coupon. A nil expiry means the coupon
// never expires.
func NewCoupon(code string, discountPercent decimal.Decimal, expiresAt *time.Time) *Coupon {
	return &Coupon{
		BaseEntity:      shared.NewBaseEntity(),
		Code:            strings.ToUpper(strings.TrimSpace(code)),
		DiscountPercent: discountPercent,
		IsActive:        true,
		ExpiresAt:       expiresAt,
	}
}

// IsRedeemable reports whether the coupon can be applied right now
func (c *Coupon) IsRedeemable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return false
	}
	return true
}
