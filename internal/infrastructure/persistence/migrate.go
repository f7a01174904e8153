package persistence

import (
	"github.com/nexkart/backend/internal/domain/catalog"
	"github.com/nexkart/backend/internal/domain/identity"
	"github.com/nexkart/backend/internal/domain/shopping"
	"github.com/nexkart/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all domain models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Product{},
		&catalog.Review{},
		&identity.User{},
		&shopping.CartItem{},
		&shopping.WishlistItem{},
		&shopping.Coupon{},
		&trade.Order{},
		&trade.OrderItem{},
	)
}
