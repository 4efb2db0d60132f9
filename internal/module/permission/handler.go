package permission

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mmcomponents/gateway-service/internal/domain"
	"github.com/mmcomponents/gateway-service/internal/pkg"
)

// PermissionHandler handles REST API requests for the permission resource.
// It shapes inputs and responses; all business logic lives in the service.
type PermissionHandler struct {
	svc      domain.PermissionService
	defaults pkg.PageDefaults
}

// NewPermissionHandler creates a PermissionHandler with the given service and
// pagination defaults.
func NewPermissionHandler(svc domain.PermissionService, defaults pkg.PageDefaults) *PermissionHandler {
	return &PermissionHandler{svc: svc, defaults: defaults}
}

// List handles GET /permissions.
func (h *PermissionHandler) List(c *gin.Context) {
	p := pkg.ParsePagination(c, h.defaults)
	filters := buildFilters(c.Request.URL.Query())

	records, counted, err := h.svc.ListPermissions(c.Request.Context(), filters, p)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewListResult(records, counted))
}

// Get handles GET /permissions/:id.
func (h *PermissionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	perm, err := h.svc.GetPermissionByID(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, perm)
}

// Create handles POST /permissions.
func (h *PermissionHandler) Create(c *gin.Context) {
	var req CreatePermissionRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	perm, err := h.svc.CreatePermission(c.Request.Context(), req.Name, req.Slug, req.Description, enabled)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, perm)
}

// Update handles PATCH /permissions/:id.
func (h *PermissionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePermissionRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	perm, err := h.svc.UpdatePermissionByID(c.Request.Context(), id, req.Fields())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, perm)
}

// Delete handles DELETE /permissions/:id.
func (h *PermissionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeletePermissionByID(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID extracts the :id path parameter. On a malformed id it writes a 400
// response and returns ok=false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid permission id", err))
		return 0, false
	}
	return uint(id), true
}
