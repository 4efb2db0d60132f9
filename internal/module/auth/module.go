package auth

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for the auth endpoints.
type Module struct {
	handler *AuthHandler
}

// NewModule creates an auth Module with the given handler.
// Panics if h is nil.
func NewModule(h *AuthHandler) *Module {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// Prefix returns the route prefix this module mounts under.
func (m *Module) Prefix() string {
	return "/auth"
}

// Register registers the auth routes on the given group.
func (m *Module) Register(rg *gin.RouterGroup) {
	rg.GET("/status", m.handler.Status)
	rg.POST("/token", m.handler.Token)
}
