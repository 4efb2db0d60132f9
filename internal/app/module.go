package app

import "github.com/gin-gonic/gin"

// Module is the contract for a resource module. Modules are listed in an
// explicit compile-time registry (see New) — there is no runtime discovery.
type Module interface {
	// Prefix is the route prefix the module mounts under, e.g. "/permissions".
	Prefix() string
	// Register registers the module's routes on its group.
	Register(rg *gin.RouterGroup)
}
