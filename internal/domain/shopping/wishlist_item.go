package shopping

import (
	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WishlistItem represents a product saved to a user's wishlist
type WishlistItem struct {
	shared.BaseEntity
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_owner_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_owner_product,priority:2"`
	ProductName string          `gorm:"type:varchar(200)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ImageURL    string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// NewWishlistItem creates a wishlist item
func NewWishlistItem(ownerID, productID uuid.UUID, productName string, price decimal.Decimal, imageURL string) *WishlistItem {
	return &WishlistItem{
		BaseEntity:  shared.NewBaseEntity(),
		OwnerID:     ownerID,
		ProductID:   productID,
		ProductName: productName,
		Price:       price,
		ImageURL:    imageURL,
	}
}
