package analytics

import (
	"worknest/internal/middleware"
	"worknest/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *Handler, rbacService rbac.Service) {
	analytics := r.Group("/api/analytics")
	analytics.Use(middleware.AuthMiddleware())
	{
		analytics.GET("/summary", rbac.Authorize(rbacService, "analytics", "read"), h.Summary)
	}
}
