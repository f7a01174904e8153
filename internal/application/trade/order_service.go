package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/domain/trade"
	"github.com/nexkart/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckoutInput carries shipping details and an optional coupon code
type CheckoutInput struct {
	Recipient  string `json:"recipient" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	City       string `json:"city" binding:"required"`
	Postcode   string `json:"postcode"`
	CouponCode string `json:"coupon_code"`
}

// UpdateStatusInput carries an admin status change
type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemView is one rendered order line
type OrderItemView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderView is the API projection of an order
type OrderView struct {
	ID         uuid.UUID             `json:"id"`
	OwnerID    uuid.UUID             `json:"owner_id"`
	Status     string                `json:"status"`
	Subtotal   decimal.Decimal       `json:"subtotal"`
	Discount   decimal.Decimal       `json:"discount"`
	Total      decimal.Decimal       `json:"total"`
	CouponCode string                `json:"coupon_code,omitempty"`
	Shipping   trade.ShippingAddress `json:"shipping"`
	Items      []OrderItemView       `json:"items"`
	CreatedAt  string                `json:"created_at"`
}

func newOrderView(o *trade.Order) OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OrderItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal(),
		}
	}
	return OrderView{
		ID:         o.ID,
		OwnerID:    o.OwnerID,
		Status:     string(o.Status),
		Subtotal:   o.Subtotal,
		Discount:   o.Discount,
		Total:      o.Total,
		CouponCode: o.CouponCode,
		Shipping:   o.Shipping,
		Items:      items,
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
	}
}

// OrderService handles checkout and order management. Checkout runs
// inside a single database transaction so the order write and the
// cart clear commit together.
type OrderService struct {
	db     *persistence.Database
	orders trade.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(db *persistence.Database, orders trade.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{db: db, orders: orders, logger: logger}
}

// Checkout converts the user's cart into a pending order and clears
// the cart. An invalid or expired coupon aborts the checkout.
func (s *OrderService) Checkout(ctx context.Context, ownerID uuid.UUID, input CheckoutInput) (*OrderView, error) {
	var order *trade.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart := persistence.NewGormCartRepository(tx)
		coupons := persistence.NewGormCouponRepository(tx)
		orders := persistence.NewGormOrderRepository(tx)

		cartItems, err := cart.FindByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return shared.NewDomainError("EMPTY_CART", "cart is empty")
		}

		discountPercent := decimal.Zero
		couponCode := ""
		if input.CouponCode != "" {
			coupon, err := coupons.FindByCode(ctx, input.CouponCode)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.ErrInvalidCoupon
				}
				return err
			}
			if !coupon.IsRedeemable(time.Now()) {
				return shared.ErrInvalidCoupon
			}
			discountPercent = coupon.DiscountPercent
			couponCode = coupon.Code
		}

		lines := make([]trade.OrderItem, len(cartItems))
		for i, item := range cartItems {
			lines[i] = trade.OrderItem{
				BaseEntity:  shared.NewBaseEntity(),
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				UnitPrice:   item.Price,
				Quantity:    item.Quantity,
			}
		}

		shipping := trade.ShippingAddress{
			Recipient: input.Recipient,
			Phone:     input.Phone,
			Line1:     input.Line1,
			City:      input.City,
			Postcode:  input.Postcode,
		}

		order, err = trade.NewOrder(ownerID, lines, shipping, couponCode, discountPercent)
		if err != nil {
			return err
		}
		if err := orders.Save(ctx, order); err != nil {
			return err
		}
		return cart.Clear(ctx, ownerID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("total", order.Total.String()),
	)
	view := newOrderView(order)
	return &view, nil
}

// Get returns one order. Non-admin callers may only read their own.
func (s *OrderService) Get(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) (*OrderView, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.OwnerID != callerID {
		return nil, shared.ErrForbidden
	}
	view := newOrderView(order)
	return &view, nil
}

// ListOwn returns the caller's orders, newest first
func (s *OrderService) ListOwn(ctx context.Context, ownerID uuid.UUID) ([]OrderView, error) {
	orders, err := s.orders.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return renderOrders(orders), nil
}

// ListAll returns every order, newest first
func (s *OrderService) ListAll(ctx context.Context) ([]OrderView, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return renderOrders(orders), nil
}

// Cancel cancels the caller's own order if it has not shipped
func (s *OrderService) Cancel(ctx context.Context, id, ownerID uuid.UUID) (*OrderView, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.OwnerID != ownerID {
		return nil, shared.ErrForbidden
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	view := newOrderView(order)
	return &view, nil
}

// UpdateStatus applies an admin status change
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*OrderView, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.SetStatus(trade.OrderStatus(input.Status)); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
	)
	view := newOrderView(order)
	return &view, nil
}

func renderOrders(orders []trade.Order) []OrderView {
	views := make([]OrderView, len(orders))
	for i := range orders {
		views[i] = newOrderView(&orders[i])
	}
	return views
}
