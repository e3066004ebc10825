package app

import (
	"context"
	"database/sql"
	"time"

	"worknest/internal/analytics"
	"worknest/internal/attendance"
	"worknest/internal/booking"
	"worknest/internal/chat"
	"worknest/internal/guest"
	"worknest/internal/messaging/kafka"
	"worknest/internal/middleware"
	"worknest/internal/notification"
	"worknest/internal/rbac"
	"worknest/internal/workspace"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	// --- Repositories ---
	workspaceRepo := workspace.NewRepository(gormDB)
	bookingRepo := booking.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	analyticsRepo := analytics.NewRepository(gormDB)
	guestRepo := guest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	inviteSender := notification.NewRetryingSender(notification.NewLogSender(), 2*time.Second)

	workspaceService := workspace.NewService(workspaceRepo, rdb)
	bookingService := booking.NewServiceWithOutbox(db, bookingRepo, workspaceRepo, outboxRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)
	analyticsService := analytics.NewService(analyticsRepo)
	guestService := guest.NewService(guestRepo, inviteSender)

	// --- Handlers ---
	workspaceHandler := workspace.NewHandler(workspaceService)
	bookingHandler := booking.NewHandler(bookingService, rdb)
	attendanceHandler := attendance.NewHandler(attendanceService)
	analyticsHandler := analytics.NewHandler(analyticsService)
	guestHandler := guest.NewHandler(guestService)

	// --- Chat relay ---
	relay := chat.NewRelay(rdb)
	hub := chat.NewHub(relay)
	go hub.Run(ctx)
	go relay.Run(ctx, hub)

	// --- Routes ---
	workspace.RegisterRoutes(router, workspaceHandler, rbacService)
	booking.RegisterRoutes(router, bookingHandler, rbacService, rdb)
	attendance.RegisterRoutes(router, attendanceHandler, rbacService)
	analytics.RegisterRoutes(router, analyticsHandler, rbacService)
	guest.RegisterRoutes(router, guestHandler, rbacService)
	chat.RegisterRoutes(router, hub)

	return nil
}
