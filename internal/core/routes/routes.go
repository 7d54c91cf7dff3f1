package routes

import (
	"time"

	"warehouse-dashboard/internal/core/container"
	"warehouse-dashboard/internal/middleware"
	"warehouse-dashboard/pkg/security"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 30 * time.Second

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("/api")
	protectedRoutes.Use(security.JWTMiddleware([]byte(container.Config.JWT.Secret)))
	protectedRoutes.Use(middleware.TimeoutMiddleware(requestTimeout))

	throttle := container.RateLimiter.Middleware()

	container.DashboardHandler.RegisterRoutes(protectedRoutes, throttle)
	container.ArchiveHandler.RegisterRoutes(protectedRoutes, throttle)
	container.ReturnsHandler.RegisterRoutes(protectedRoutes, throttle)
	container.SettingsHandler.RegisterRoutes(protectedRoutes, throttle)
	container.NotificationHandler.RegisterRoutes(protectedRoutes)
	if container.AuditLogHandler != nil {
		container.AuditLogHandler.RegisterRoutes(protectedRoutes)
	}
}

func RegisterUtilityRoutes(router *gin.Engine, container *container.Container) {
	router.GET("/health", middleware.HealthCheckMiddleware())
	router.GET("/metrics", container.HTTPMetrics.Handler())
}

// NewRouter builds the engine with the global middleware and every route.
func NewRouter(container *container.Container) *gin.Engine {
	if !container.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(container.Logger))
	router.Use(container.HTTPMetrics.Middleware())

	RegisterUtilityRoutes(router, container)
	RegisterProtectedRoutes(router, container)

	return router
}
