package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ShippingAddress is embedded into the order at checkout time
type ShippingAddress struct {
	Recipient string `gorm:"type:varchar(100)" json:"recipient"`
	Phone     string `gorm:"type:varchar(30)" json:"phone"`
	Line1     string `gorm:"type:varchar(200)" json:"line1"`
	City      string `gorm:"type:varchar(100)" json:"city"`
	Postcode  string `gorm:"type:varchar(20)" json:"postcode"`
}

// OrderItem is a line item captured from the cart at checkout.
// Name and unit price are frozen copies, later catalog changes do not
// rewrite order history.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns unit price times quantity
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the aggregate root for a placed order
type Order struct {
	shared.BaseEntity
	OwnerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Discount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CouponCode string          `gorm:"type:varchar(50)"`
	Shipping   ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder builds an order from line items, applying an optional
// percentage discount to the subtotal.
func NewOrder(ownerID uuid.UUID, items []OrderItem, shipping ShippingAddress, couponCode string, discountPercent decimal.Decimal) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "order must contain at least one item")
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	discount := subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100)).Round(4)
	total := subtotal.Sub(discount)

	order := &Order{
		BaseEntity: shared.NewBaseEntity(),
		OwnerID:    ownerID,
		Status:     OrderStatusPending,
		Subtotal:   subtotal,
		Discount:   discount,
		Total:      total,
		CouponCode: couponCode,
		Shipping:   shipping,
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = items
	return order, nil
}

// Cancel transitions the order to cancelled if it has not shipped yet
func (o *Order) Cancel() error {
	switch o.Status {
	case OrderStatusPending, OrderStatusConfirmed:
		o.Status = OrderStatusCancelled
		o.UpdatedAt = time.Now()
		return nil
	default:
		return shared.NewDomainError("INVALID_ORDER_STATE", "order can no longer be cancelled")
	}
}

// SetStatus applies an admin-driven status change
func (o *Order) SetStatus(status OrderStatus) error {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		o.Status = status
		o.UpdatedAt = time.Now()
		return nil
	default:
		return shared.NewDomainError("INVALID_ORDER_STATUS", "unknown order status: "+string(status))
	}
}
