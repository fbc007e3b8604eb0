package routes

import (
	"vitalitygo/config"
	"vitalitygo/controllers"
	"vitalitygo/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up admin routes
func SetupAdminRoutes(router *gin.Engine, cfg *config.Config) {
	admin := controllers.NewAdminController(cfg)

	// Public admin routes (login only - signup disabled, admins added manually via cmd/addadmin)
	adminPublic := router.Group("/admin")
	{
		adminPublic.POST("/login", admin.AdminLogin)
	}

	// Protected admin routes
	adminProtected := router.Group("/admin")
	adminProtected.Use(middlewares.AdminAuthMiddleware())
	{
		// Analytics
		adminProtected.GET("/analytics", middlewares.RBACMiddleware("analytics", "read"), controllers.GetAnalytics)
		adminProtected.GET("/analytics/history", middlewares.RBACMiddleware("analytics", "read"), controllers.GetAnalyticsHistory)

		// User management
		adminProtected.GET("/users", middlewares.RBACMiddleware("user", "read"), admin.GetUsers)
		adminProtected.DELETE("/users/:id", middlewares.RBACMiddleware("user", "delete"), admin.DeleteUser)

		// Admin action logs
		adminProtected.GET("/logs", middlewares.RBACMiddleware("logs", "read"), admin.GetAdminActionLogs)
	}
}
