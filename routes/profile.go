package routes

import (
	"vitalitygo/controllers"
	"vitalitygo/services"

	"github.com/gin-gonic/gin"
)

// SetupProfileRoutes wires the profile endpoints onto an authenticated
// route group.
func SetupProfileRoutes(router *gin.RouterGroup, notifier *services.BMINotifier) {
	profile := controllers.NewProfileController(notifier)

	router.GET("/profile", profile.GetProfile)
	router.PUT("/profile", profile.UpdateProfile)
}
