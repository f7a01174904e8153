package handler

import (
	"github.com/gin-gonic/gin"
	shoppingapp "github.com/nexkart/backend/internal/application/shopping"
	"github.com/nexkart/backend/internal/interfaces/http/middleware"
)

// WishlistHandler handles wishlist API endpoints
type WishlistHandler struct {
	BaseHandler
	wishlist *shoppingapp.WishlistService
	auth     gin.HandlerFunc
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlist *shoppingapp.WishlistService, auth gin.HandlerFunc) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, auth: auth}
}

// RegisterRoutes registers wishlist routes
func (h *WishlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wishlist := rg.Group("/wishlist")
	wishlist.Use(h.auth)
	{
		wishlist.GET("", h.List)
		wishlist.POST("/:id", h.Add)
		wishlist.DELETE("/:id", h.Remove)
	}
}

// List returns the caller's wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	items, err := h.wishlist.List(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Add saves a product to the wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
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

	if err := h.wishlist.Add(c.Request.Context(), ownerID, productID, middleware.GetJWTRole(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Remove deletes a product from the wishlist
func (h *WishlistHandler) Remove(c *gin.Context) {
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

	if err := h.wishlist.Remove(c.Request.Context(), ownerID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
