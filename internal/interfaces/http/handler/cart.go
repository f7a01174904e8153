package handler

import (
	"github.com/gin-gonic/gin"
	shoppingapp "github.com/nexkart/backend/internal/application/shopping"
	"github.com/nexkart/backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart API endpoints
type CartHandler struct {
	BaseHandler
	cart *shoppingapp.CartService
	auth gin.HandlerFunc
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cart *shoppingapp.CartService, auth gin.HandlerFunc) *CartHandler {
	return &CartHandler{cart: cart, auth: auth}
}

// AdjustCartRequest changes a cart item's quantity by a signed amount
type AdjustCartRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// ValidateCouponRequest carries a coupon code to check
type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.Use(h.auth)
	{
		cart.GET("", h.View)
		cart.POST("/items/:id", h.Add)
		cart.PATCH("/items/:id", h.Adjust)
		cart.DELETE("/items/:id", h.Remove)
		cart.POST("/coupon", h.ValidateCoupon)
	}
}

// View returns the caller's cart
func (h *CartHandler) View(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	view, err := h.cart.View(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Add puts a product in the cart or bumps its quantity
func (h *CartHandler) Add(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	view, err := h.cart.Add(c.Request.Context(), ownerID, productID, middleware.GetJWTRole(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Adjust changes an item's quantity by a signed amount
func (h *CartHandler) Adjust(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req AdjustCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.cart.Adjust(c.Request.Context(), ownerID, productID, req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Remove deletes an item from the cart
func (h *CartHandler) Remove(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	view, err := h.cart.Remove(c.Request.Context(), ownerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ValidateCoupon checks a coupon code for the caller
func (h *CartHandler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.cart.ValidateCoupon(c.Request.Context(), req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
