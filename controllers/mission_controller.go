package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"vitalitygo/bmi"
	"vitalitygo/config"
	"vitalitygo/db"
	"vitalitygo/models"
	"vitalitygo/services"
	"vitalitygo/websocket"

	"github.com/gin-gonic/gin"
)

// MissionController serves the mission board: the active group for the
// user's BMI category, manual toggles and position-driven geofence
// checks for clients that report location over HTTP instead of the
// tracking socket.
type MissionController struct {
	cfg      *config.Config
	notifier *services.BMINotifier
}

func NewMissionController(cfg *config.Config, notifier *services.BMINotifier) *MissionController {
	return &MissionController{cfg: cfg, notifier: notifier}
}

// resolveCategory derives the user's BMI category from the stored
// profile. The notifier cache resets to Normal on restart, so it is
// refreshed here instead of read.
func (mc *MissionController) resolveCategory(ctx context.Context, userID string) (bmi.Category, error) {
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		return bmi.Normal, err
	}
	category := services.CategoryForUser(user)
	mc.notifier.Publish(userID, category)
	return category, nil
}

// GetMissions returns the mission group for the user's current BMI
// category, seeded lazily and reconciled against current metrics.
func (mc *MissionController) GetMissions(ctx *gin.Context) {
	userID := ctx.GetString("userID")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.GetUser(dbCtx, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	category := services.CategoryForUser(user)
	mc.notifier.Publish(userID, category)

	group, err := services.RefreshMissionProgress(dbCtx, userID, category, services.MetricsForUser(user))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load missions"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"bmiCategory": category,
		"missions":    group,
	})
}

// ToggleMission flips a mission's completion by hand. Manual flips are
// recorded so automatic evaluation leaves the slot alone afterwards.
func (mc *MissionController) ToggleMission(ctx *gin.Context) {
	userID := ctx.GetString("userID")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Tier  string `json:"tier" binding:"required"`
		Index *int   `json:"index" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	category, err := mc.resolveCategory(dbCtx, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	group, err := services.LoadMissionGroup(dbCtx, userID, category)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load missions"})
		return
	}

	if !services.ToggleMission(&group, req.Tier, *req.Index) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mission slot"})
		return
	}

	if err := db.SaveMissions(dbCtx, userID, string(category), group); err != nil {
		// In-memory state stays authoritative; the next save retries
		log.Printf("Failed to save mission toggle for %s: %v", userID, err)
	}

	ctx.JSON(http.StatusOK, gin.H{"missions": group})
}

// ReportPosition runs the geofence rule for a single position fix.
func (mc *MissionController) ReportPosition(ctx *gin.Context) {
	userID := ctx.GetString("userID")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	category, err := mc.resolveCategory(dbCtx, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	group, err := services.LoadMissionGroup(dbCtx, userID, category)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load missions"})
		return
	}

	target := services.LatLng{Lat: mc.cfg.Geofence.TargetLat, Lng: mc.cfg.Geofence.TargetLng}
	result := services.CheckGeofence(&group, services.LatLng{Lat: req.Lat, Lng: req.Lng}, target, mc.cfg.Geofence.RadiusM)

	if result.Completed {
		if err := db.SaveMissions(dbCtx, userID, string(category), group); err != nil {
			log.Printf("Failed to save geofence completion for %s: %v", userID, err)
		}
		websocket.BroadcastTrackerEvent(models.TrackerEvent{
			Type:         "mission_completed",
			UserID:       userID,
			BmiCategory:  string(category),
			MissionTitle: result.MissionTitle,
			Tier:         "special",
			DistanceM:    result.DistanceM,
			Timestamp:    time.Now(),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"distanceMeters":   result.DistanceM,
		"missionCompleted": result.Completed,
		"missions":         group,
	})
}

// GetCoachTip returns a short motivational tip for the current board.
func (mc *MissionController) GetCoachTip(ctx *gin.Context) {
	userID := ctx.GetString("userID")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	category, err := mc.resolveCategory(dbCtx, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	group, err := services.LoadMissionGroup(dbCtx, userID, category)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load missions"})
		return
	}

	tip := services.GenerateCoachTip(dbCtx, category, group)
	ctx.JSON(http.StatusOK, gin.H{"tip": tip})
}
