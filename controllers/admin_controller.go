package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"vitalitygo/config"
	"vitalitygo/db"
	"vitalitygo/middlewares"
	"vitalitygo/models"
	"vitalitygo/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// AdminLoginRequest represents the login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminController owns the admin dashboard endpoints.
type AdminController struct {
	cfg *config.Config
}

func NewAdminController(cfg *config.Config) *AdminController {
	return &AdminController{cfg: cfg}
}

// AdminLogin handles admin/moderator login
func (ac *AdminController) AdminLogin(ctx *gin.Context) {
	var request AdminLoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := db.MongoDatabase.Collection("admins").FindOne(dbCtx, bson.M{"email": request.Email}).Decode(&admin)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(request.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateAdminToken(admin.Email, admin.Role, ac.cfg.JWT.Expiry)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Admin login successful",
		"accessToken": token,
		"admin": gin.H{
			"id":    admin.ID.Hex(),
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
	})
}

// GetUsers lists user profiles for the dashboard, newest first.
func (ac *AdminController) GetUsers(ctx *gin.Context) {
	limit := int64(50)
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.MongoDatabase.Collection("users").Find(
		dbCtx,
		bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit),
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}
	defer cursor.Close(dbCtx)

	var users []models.User
	if err := cursor.All(dbCtx, &users); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error decoding users"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// DeleteUser removes a user profile and cascades over their mission
// documents. The Cognito identity is left to expire; only an admin
// with the delete permission reaches this handler.
func (ac *AdminController) DeleteUser(ctx *gin.Context) {
	userID := ctx.Param("id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing user id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.GetUser(dbCtx, userID); err != nil {
		if err == mongo.ErrNoDocuments {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DeleteUserData(dbCtx, userID); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user", "message": err.Error()})
		return
	}

	middlewares.LogAdminAction(ctx, "delete_user", "user", userID, nil)
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// GetAdminActionLogs returns the audit trail, newest first.
func (ac *AdminController) GetAdminActionLogs(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.MongoDatabase.Collection("admin_action_logs").Find(
		dbCtx,
		bson.M{},
		options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(100),
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching logs"})
		return
	}
	defer cursor.Close(dbCtx)

	var logs []models.AdminActionLog
	if err := cursor.All(dbCtx, &logs); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error decoding logs"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"logs": logs})
}
