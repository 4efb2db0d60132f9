package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mmcomponents/gateway-service/internal/pkg"
)

// serviceName is reported by the status endpoint.
const serviceName = "gateway-service"

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	DB      *gorm.DB
}

// RegisterRoutes registers the status endpoint and every module's routes on
// the given engine. Each module mounts under its declared prefix.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}

	r.GET("/status", statusHandler(deps.DB))

	seen := make(map[string]bool, len(deps.Modules))
	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		prefix := m.Prefix()
		if seen[prefix] {
			return fmt.Errorf("duplicate module prefix %q", prefix)
		}
		seen[prefix] = true
		m.Register(r.Group(prefix))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, pkg.ErrorResponse{ErrorMessage: "not found"})
	})

	return nil
}

// statusHandler reports the service name and database health.
func statusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		code := http.StatusOK

		if db == nil {
			dbStatus = "error"
			code = http.StatusServiceUnavailable
		} else if sqlDB, err := db.DB(); err != nil {
			dbStatus = "error"
			code = http.StatusServiceUnavailable
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := sqlDB.PingContext(ctx); err != nil {
				dbStatus = "error"
				code = http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"name": serviceName,
			"components": gin.H{
				"database": dbStatus,
			},
		})
	}
}
