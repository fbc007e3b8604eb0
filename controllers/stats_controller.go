package controllers

import (
	"context"
	"net/http"
	"time"

	"vitalitygo/bmi"
	"vitalitygo/db"
	"vitalitygo/internal/live"
	"vitalitygo/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetStats returns the chart-ready data for the stats screen: today's
// steps and water intake plus the weight history.
func GetStats(ctx *gin.Context) {
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

	value, category := bmi.Classify(user.LatestWeight(), user.HeightCm)

	ctx.JSON(http.StatusOK, gin.H{
		"steps":       user.Steps,
		"waterIntake": user.WaterIntake,
		"weightData":  user.WeightData,
		"bmi": gin.H{
			"value":    value,
			"category": category,
		},
	})
}

// GetLeaderboard returns today's top steppers with display names
// resolved from the profile collection.
func GetLeaderboard(ctx *gin.Context) {
	entries, err := live.TopSteppers(10)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching leaderboard"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	currentUser := ctx.GetString("userID")
	leaderboard := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		name := entry.UserID
		var user models.User
		if err := db.MongoDatabase.Collection("users").
			FindOne(dbCtx, bson.M{"_id": entry.UserID}).Decode(&user); err == nil && user.Name != "" {
			name = user.Name
		}
		leaderboard = append(leaderboard, gin.H{
			"rank":        entry.Rank,
			"name":        name,
			"steps":       int(entry.Steps),
			"currentUser": entry.UserID == currentUser,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"leaderboard": leaderboard})
}
