package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/nexkart/backend/internal/application/trade"
	"github.com/nexkart/backend/internal/domain/identity"
	"github.com/nexkart/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orders *tradeapp.OrderService
	auth   gin.HandlerFunc
	admin  gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *tradeapp.OrderService, auth, admin gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{orders: orders, auth: auth, admin: admin}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(h.auth)
	{
		orders.POST("", h.Checkout)
		orders.GET("", h.ListOwn)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/cancel", h.Cancel)
	}

	admin := rg.Group("/admin/orders")
	admin.Use(h.auth, h.admin)
	{
		admin.GET("", h.ListAll)
		admin.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Checkout converts the caller's cart into an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input tradeapp.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.orders.Checkout(c.Request.Context(), ownerID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ListOwn returns the caller's orders
func (h *OrderHandler) ListOwn(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	views, err := h.orders.ListOwn(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Get returns one order
func (h *OrderHandler) Get(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	isAdmin := middleware.GetJWTRole(c) == string(identity.RoleAdmin)
	view, err := h.orders.Get(c.Request.Context(), id, callerID, isAdmin)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Cancel cancels the caller's own order
func (h *OrderHandler) Cancel(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	view, err := h.orders.Cancel(c.Request.Context(), id, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ListAll returns every order
func (h *OrderHandler) ListAll(c *gin.Context) {
	views, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// UpdateStatus applies an admin status change
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var input tradeapp.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.orders.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
