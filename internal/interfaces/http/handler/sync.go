package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	shoppingapp "github.com/nexkart/backend/internal/application/shopping"
	syncapp "github.com/nexkart/backend/internal/application/sync"
)

// maxSheetSize caps uploaded sheet size at 10 MiB
const maxSheetSize = 10 << 20

// SyncHandler handles catalog synchronization API endpoints
type SyncHandler struct {
	BaseHandler
	sync    *syncapp.SyncService
	coupons *shoppingapp.CouponService
	auth    gin.HandlerFunc
	admin   gin.HandlerFunc
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(sync *syncapp.SyncService, coupons *shoppingapp.CouponService, auth, admin gin.HandlerFunc) *SyncHandler {
	return &SyncHandler{sync: sync, coupons: coupons, auth: auth, admin: admin}
}

// RegisterRoutes registers admin sync and coupon routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(h.auth, h.admin)
	{
		admin.POST("/sync", h.Trigger)
		admin.POST("/sync/import", h.Import)
		admin.GET("/sync/export", h.Export)

		admin.POST("/coupons", h.CreateCoupon)
		admin.DELETE("/coupons/:code", h.DeactivateCoupon)
	}
}

// Trigger runs a manual catalog sync. A run already in flight is
// reported as the skipped_busy outcome, not an error.
func (h *SyncHandler) Trigger(c *gin.Context) {
	result, err := h.sync.Trigger(c.Request.Context())
	if err != nil {
		h.HandleSyncError(c, err)
		return
	}
	h.Success(c, result)
}

// Import reconciles an uploaded sheet into the catalog
func (h *SyncHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing sheet file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSheetSize+1))
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}
	if len(data) > maxSheetSize {
		h.BadRequest(c, "Uploaded file too large")
		return
	}

	result, err := h.sync.Import(c.Request.Context(), data)
	if err != nil {
		h.HandleSyncError(c, err)
		return
	}
	h.Success(c, result)
}

// Export downloads the catalog as a sheet
func (h *SyncHandler) Export(c *gin.Context) {
	data, err := h.sync.Export(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := "catalog-" + time.Now().Format("20060102-150405") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// CreateCoupon registers a new coupon code
func (h *SyncHandler) CreateCoupon(c *gin.Context) {
	var input shoppingapp.CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.coupons.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// DeactivateCoupon turns a coupon off
func (h *SyncHandler) DeactivateCoupon(c *gin.Context) {
	if err := h.coupons.Deactivate(c.Request.Context(), c.Param("code")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// HandleSyncError maps sync pipeline failures to a 502 for upstream
// fetch problems and 400 for bad sheets, falling back to HandleError
func (h *SyncHandler) HandleSyncError(c *gin.Context, err error) {
	switch {
	case isFetchError(err):
		c.JSON(http.StatusBadGateway, syncErrorBody("SOURCE_UNAVAILABLE", err))
	case isParseError(err), isCoercionError(err):
		c.JSON(http.StatusBadRequest, syncErrorBody("INVALID_SHEET", err))
	default:
		h.HandleError(c, err)
	}
}
