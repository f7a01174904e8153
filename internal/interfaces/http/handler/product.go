package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/nexkart/backend/internal/application/catalog"
	"github.com/nexkart/backend/internal/domain/shared"
	"github.com/nexkart/backend/internal/interfaces/http/dto"
	"github.com/nexkart/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles catalog API endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	reviews  *catalogapp.ReviewService
	optAuth  gin.HandlerFunc
	auth     gin.HandlerFunc
	admin    gin.HandlerFunc
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService, reviews *catalogapp.ReviewService, optAuth, auth, admin gin.HandlerFunc) *ProductHandler {
	return &ProductHandler{
		products: products,
		reviews:  reviews,
		optAuth:  optAuth,
		auth:     auth,
		admin:    admin,
	}
}

// RegisterRoutes registers catalog routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.Use(h.optAuth)
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.GET("/:id/reviews", h.ListReviews)
	}
	rg.POST("/products/:id/reviews", h.auth, h.CreateReview)

	admin := rg.Group("/admin/products")
	admin.Use(h.auth, h.admin)
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

// List returns a page of products priced for the caller's role
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{Page: req.Page, PageSize: req.PageSize, Search: req.Search}
	page, err := h.products.List(c.Request.Context(), middleware.GetJWTRole(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Get returns one product priced for the caller's role
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	view, err := h.products.Get(c.Request.Context(), id, middleware.GetJWTRole(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var input catalogapp.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.products.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// Update overwrites a product's mutable fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var input catalogapp.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.products.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListReviews returns the reviews of a product
func (h *ProductHandler) ListReviews(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	views, err := h.reviews.ListByProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// CreateReview adds a review to a product
func (h *ProductHandler) CreateReview(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input catalogapp.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.reviews.Create(c.Request.Context(), id, ownerID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}
