package permission

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for the permission resource.
type Module struct {
	handler *PermissionHandler
}

// NewModule creates a permission Module with the given handler.
// Panics if h is nil.
func NewModule(h *PermissionHandler) *Module {
	if h == nil {
		panic("permission.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// Prefix returns the route prefix this module mounts under.
func (m *Module) Prefix() string {
	return "/permissions"
}

// Register registers the permission routes on the given group.
func (m *Module) Register(rg *gin.RouterGroup) {
	rg.GET("", m.handler.List)
	rg.POST("", m.handler.Create)
	rg.GET("/:id", m.handler.Get)
	rg.PATCH("/:id", m.handler.Update)
	rg.DELETE("/:id", m.handler.Delete)
}
