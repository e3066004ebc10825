package booking

import (
	"worknest/internal/middleware"
	"worknest/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.Engine, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.AuthMiddleware())
	// Per-user budget on top of the global per-IP limit; booking writes are
	// the abuse-prone surface.
	bookings.Use(middleware.RateLimitByUser(rate.Limit(5), 10))
	{
		create := bookings.Group("")
		if rdb != nil {
			create.Use(middleware.Idempotency(rdb))
		}
		create.POST("", rbac.Authorize(rbacService, "booking", "create"), h.Create)

		bookings.GET("/my", rbac.Authorize(rbacService, "booking", "read"), h.ListMine)
		bookings.PATCH("/:id/cancel", rbac.Authorize(rbacService, "booking", "update"), h.Cancel)
		bookings.PATCH("/:id/check-in", rbac.Authorize(rbacService, "booking", "update"), h.CheckIn)
		bookings.PATCH("/:id/check-out", rbac.Authorize(rbacService, "booking", "update"), h.CheckOut)

		bookings.POST("/sweep", rbac.Authorize(rbacService, "booking", "sweep"), h.Sweep)
	}
}
