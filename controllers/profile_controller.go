package controllers

import (
	"context"
	"net/http"
	"time"

	"vitalitygo/bmi"
	"vitalitygo/db"
	"vitalitygo/models"
	"vitalitygo/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProfileController serves the user profile and settings.
type ProfileController struct {
	notifier *services.BMINotifier
}

func NewProfileController(notifier *services.BMINotifier) *ProfileController {
	return &ProfileController{notifier: notifier}
}

// GetProfile retrieves the profile document together with the derived
// BMI summary the client shows on the profile screen.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	userID := ctx.GetString("userID")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.GetUser(dbCtx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	value, category := bmi.Classify(user.LatestWeight(), user.HeightCm)

	ctx.JSON(http.StatusOK, gin.H{
		"profile": user,
		"bmi": gin.H{
			"value":       value,
			"category":    category,
			"description": category.Description(),
		},
	})
}

// UpdateProfile modifies the editable profile fields. A height change
// shifts BMI, so the new category is published to the notifier and any
// category switch is pushed to connected clients.
func (p *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID := ctx.GetString("userID")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "Missing user id in context"})
		return
	}

	var updateData struct {
		Name         string               `json:"name"`
		Age          int                  `json:"age"`
		HeightCm     float64              `json:"height"`
		ProfileImage string               `json:"profileImage"`
		Settings     *models.UserSettings `json:"settings"`
	}
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	if updateData.Name == "" || updateData.Age <= 0 || updateData.HeightCm <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "message": "Name, age and height are required"})
		return
	}

	fields := bson.M{
		"name":   updateData.Name,
		"age":    updateData.Age,
		"height": updateData.HeightCm,
	}
	if updateData.ProfileImage != "" {
		fields["profileImage"] = updateData.ProfileImage
	}
	if updateData.Settings != nil {
		fields["settings"] = updateData.Settings
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.UpsertUser(dbCtx, userID, fields); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	p.publishCategory(dbCtx, userID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// publishCategory recomputes the BMI category from the stored profile.
// Fan-out to connected clients happens through notifier subscriptions.
func (p *ProfileController) publishCategory(ctx context.Context, userID string) {
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		return
	}
	p.notifier.Publish(userID, services.CategoryForUser(user))
}
