package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/nexkart/backend/internal/application/identity"
)

// UserHandler handles account and authentication API endpoints
type UserHandler struct {
	BaseHandler
	users *identityapp.UserService
	auth  gin.HandlerFunc
	admin gin.HandlerFunc
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *identityapp.UserService, auth, admin gin.HandlerFunc) *UserHandler {
	return &UserHandler{users: users, auth: auth, admin: admin}
}

// RegisterRoutes registers account routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	users := rg.Group("/users")
	users.Use(h.auth)
	{
		users.GET("/me", h.Profile)
		users.PUT("/me", h.UpdateProfile)
	}

	admin := rg.Group("/admin/users")
	admin.Use(h.auth, h.admin)
	{
		admin.GET("", h.List)
		admin.POST("/:id/verify", h.Verify)
	}
}

// Register creates a new account
func (h *UserHandler) Register(c *gin.Context) {
	var input identityapp.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	out, err := h.users.Register(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

// Login authenticates credentials and returns a token
func (h *UserHandler) Login(c *gin.Context) {
	var input identityapp.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	out, err := h.users.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Profile returns the caller's own account
func (h *UserHandler) Profile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	view, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateProfile updates the caller's editable fields
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input identityapp.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	out, err := h.users.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// List returns all accounts
func (h *UserHandler) List(c *gin.Context) {
	views, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Verify approves a wholesaler account
func (h *UserHandler) Verify(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	view, err := h.users.VerifyWholesaler(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
