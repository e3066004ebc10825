package attendance

import (
	"worknest/internal/middleware"
	"worknest/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *Handler, rbacService rbac.Service) {
	att := r.Group("/api/attendance")
	att.Use(middleware.AuthMiddleware())
	{
		att.POST("/checkin", rbac.Authorize(rbacService, "attendance", "create"), h.CheckIn)
		att.PUT("/checkout", rbac.Authorize(rbacService, "attendance", "update"), h.CheckOut)
		att.GET("/my", rbac.Authorize(rbacService, "attendance", "read"), h.GetMine)
	}
}
