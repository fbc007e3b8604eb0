package routes

import (
	"vitalitygo/config"
	"vitalitygo/controllers"
	"vitalitygo/services"

	"github.com/gin-gonic/gin"
)

// SetupTrackerRoutes wires the daily tracking endpoints: metric
// logging, missions, geofence position reports, stats and the
// leaderboard. All of them require a valid access token.
func SetupTrackerRoutes(router *gin.RouterGroup, cfg *config.Config, notifier *services.BMINotifier) {
	metrics := controllers.NewMetricsController(notifier)
	missions := controllers.NewMissionController(cfg, notifier)

	router.POST("/steps", metrics.LogSteps)
	router.POST("/water", metrics.LogWater)
	router.POST("/weight", metrics.LogWeight)

	router.GET("/missions", missions.GetMissions)
	router.POST("/missions/toggle", missions.ToggleMission)
	router.POST("/position", missions.ReportPosition)
	router.GET("/coachTip", missions.GetCoachTip)

	router.GET("/stats", controllers.GetStats)
	router.GET("/leaderboard", controllers.GetLeaderboard)
}
