package workspace

import (
	"worknest/internal/middleware"
	"worknest/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *Handler, rbacService rbac.Service) {
	dashboard := r.Group("/dashboard/workspace")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("", rbac.Authorize(rbacService, "workspace", "read"), h.GetAll)
		dashboard.GET("/:id", rbac.Authorize(rbacService, "workspace", "read"), h.GetByID)
		dashboard.POST("", rbac.Authorize(rbacService, "workspace", "manage"), h.Create)
		dashboard.PUT("/:id", rbac.Authorize(rbacService, "workspace", "manage"), h.Update)
		dashboard.DELETE("/:id", rbac.Authorize(rbacService, "workspace", "manage"), h.Delete)
	}
}
