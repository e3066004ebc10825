package guest

import (
	"worknest/internal/middleware"
	"worknest/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *Handler, rbacService rbac.Service) {
	guests := r.Group("/api/guests")
	guests.Use(middleware.AuthMiddleware())
	{
		guests.POST("", rbac.Authorize(rbacService, "guest", "create"), h.Create)
		guests.GET("/my", rbac.Authorize(rbacService, "guest", "read"), h.GetMine)
	}
}
