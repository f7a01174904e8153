package shopping

import (
	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartItem represents a product in a user's cart.
// Product name, price and image are denormalized at add time so the
// cart keeps displaying what the user added even if the catalog moves.
type CartItem struct {
	shared.BaseEntity
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_owner_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_owner_product,priority:2"`
	ProductName string          `gorm:"type:varchar(200)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ImageURL    string          `gorm:"type:text"`
	Quantity    int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a cart item with quantity 1
func NewCartItem(ownerID, productID uuid.UUID, productName string, price decimal.Decimal, imageURL string) *CartItem {
	return &CartItem{
		BaseEntity:  shared.NewBaseEntity(),
		OwnerID:     ownerID,
		ProductID:   productID,
		ProductName: productName,
		Price:       price,
		ImageURL:    imageURL,
		Quantity:    1,
	}
}

// Adjust changes the quantity by amount and reports whether the item
// should be removed from the cart (quantity dropped to zero or below).
func (i *CartItem) Adjust(amount int) (remove bool) {
	i.Quantity += amount
	return i.Quantity <= 0
}
