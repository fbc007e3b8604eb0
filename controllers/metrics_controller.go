package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"vitalitygo/db"
	"vitalitygo/internal/live"
	"vitalitygo/models"
	"vitalitygo/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// MetricsController records the tracked metrics (steps, water, weight)
// and reconciles mission progress after every write.
type MetricsController struct {
	notifier *services.BMINotifier
	limiter  *live.RateLimiter
}

func NewMetricsController(notifier *services.BMINotifier) *MetricsController {
	return &MetricsController{
		notifier: notifier,
		limiter:  live.NewRateLimiter(),
	}
}

// LogSteps replaces the user's step count for the day with the
// pedometer's running total.
func (m *MetricsController) LogSteps(ctx *gin.Context) {
	userID := ctx.GetString("userID")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Steps int `json:"steps" binding:"min=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	if !m.limiter.AllowMetricUpdate(userID, "steps") {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many step updates"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.UpsertUser(dbCtx, userID, bson.M{"steps": req.Steps}); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	live.RecordSteps(userID, req.Steps)
	group := m.refreshMissions(dbCtx, userID)
	ctx.JSON(http.StatusOK, gin.H{"steps": req.Steps, "missions": group})
}

// LogWater adds a water amount in milliliters to today's intake.
func (m *MetricsController) LogWater(ctx *gin.Context) {
	userID := ctx.GetString("userID")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		AmountMl float64 `json:"amountMl" binding:"required,gt=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	if !m.limiter.AllowMetricUpdate(userID, "water") {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many water updates"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.MongoDatabase.Collection("users").UpdateOne(
		dbCtx,
		bson.M{"_id": userID},
		bson.M{
			"$inc": bson.M{"waterIntake": req.AmountMl / 1000.0},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	group := m.refreshMissions(dbCtx, userID)
	ctx.JSON(http.StatusOK, gin.H{"message": "Water intake recorded", "missions": group})
}

// LogWeight appends a weight entry. Weight moves BMI, so the category
// is re-published and a switch re-keys the active mission group.
func (m *MetricsController) LogWeight(ctx *gin.Context) {
	userID := ctx.GetString("userID")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		WeightKg float64 `json:"weightKg" binding:"required,gt=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	if !m.limiter.AllowMetricUpdate(userID, "weight") {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many weight updates"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.MongoDatabase.Collection("users").UpdateOne(
		dbCtx,
		bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"weightData": req.WeightKg},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, err := db.GetUser(dbCtx, userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	category := services.CategoryForUser(user)
	// Subscribed clients learn about a category switch from here
	m.notifier.Publish(userID, category)

	group, err := services.RefreshMissionProgress(dbCtx, userID, category, services.MetricsForUser(user))
	if err != nil {
		log.Printf("Failed to refresh missions for %s: %v", userID, err)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"weightData":  user.WeightData,
		"bmiCategory": category,
		"missions":    group,
	})
}

// refreshMissions re-evaluates the active mission group against the
// freshly written metrics. Failures leave in-memory state untouched.
func (m *MetricsController) refreshMissions(ctx context.Context, userID string) *models.MissionGroup {
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		log.Printf("Failed to load user %s after metric write: %v", userID, err)
		return nil
	}

	// Derive the category from the profile rather than the notifier
	// cache, which starts over as Normal after a restart.
	category := services.CategoryForUser(user)
	m.notifier.Publish(userID, category)
	group, err := services.RefreshMissionProgress(ctx, userID, category, services.MetricsForUser(user))
	if err != nil {
		log.Printf("Failed to refresh missions for %s: %v", userID, err)
		return nil
	}
	return &group
}
