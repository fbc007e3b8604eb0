package middlewares

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"vitalitygo/db"
	"vitalitygo/models"
	"vitalitygo/utils"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	mongodbadapter "github.com/casbin/mongodb-adapter/v3"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var enforcer *casbin.Enforcer

const rbacModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// InitCasbin initializes the Casbin enforcer with the MongoDB adapter
func InitCasbin(mongoURI string) error {
	// Database name comes from the URI; the collection defaults to 'casbin_rule'
	adapter, err := mongodbadapter.NewAdapter(mongoURI)
	if err != nil {
		return fmt.Errorf("failed to create Casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModelText)
	if err != nil {
		return fmt.Errorf("failed to create Casbin model: %w", err)
	}

	enforcer, err = casbin.NewEnforcer(m, adapter)
	if err != nil {
		return fmt.Errorf("failed to create Casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	ensureDefaultPolicies()

	log.Println("Casbin RBAC initialized successfully")
	return nil
}

// ensureDefaultPolicies ensures that default RBAC policies exist in the database
func ensureDefaultPolicies() {
	defaultPolicies := []struct {
		role     string
		resource string
		action   string
	}{
		{"admin", "user", "read"},
		{"admin", "user", "delete"},
		{"admin", "analytics", "read"},
		{"admin", "logs", "read"},
		{"moderator", "user", "read"},
		{"moderator", "analytics", "read"},
	}

	for _, policy := range defaultPolicies {
		exists, _ := enforcer.HasPolicy(policy.role, policy.resource, policy.action)
		if !exists {
			enforcer.AddPolicy(policy.role, policy.resource, policy.action)
			log.Printf("Added default policy: %s can %s %s", policy.role, policy.action, policy.resource)
		}
	}

	if err := enforcer.SavePolicy(); err != nil {
		log.Printf("Warning: Failed to save policies: %v", err)
	}
}

// AdminAuthMiddleware authenticates admin users via the local JWT and
// checks they still exist in the admins collection.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseAdminToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "message": err.Error()})
			c.Abort()
			return
		}

		dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err = db.MongoDatabase.Collection("admins").FindOne(dbCtx, bson.M{"email": claims.Email}).Decode(&admin)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Set("adminEmail", claims.Email)
		c.Set("adminID", admin.ID)
		c.Set("adminRole", admin.Role)
		c.Next()
	}
}

// RBACMiddleware checks if the admin has permission for the requested action
func RBACMiddleware(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminRole, exists := c.Get("adminRole")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role not found"})
			c.Abort()
			return
		}

		role := adminRole.(string)
		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			log.Printf("Casbin enforce error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
			c.Abort()
			return
		}

		if !allowed {
			log.Printf("Permission denied for role=%s, resource=%s, action=%s", role, resource, action)
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// LogAdminAction logs an admin action for audit purposes
func LogAdminAction(c *gin.Context, action, resourceType, resourceID string, details map[string]interface{}) error {
	adminID, exists := c.Get("adminID")
	if !exists {
		return fmt.Errorf("adminID not found in context")
	}

	adminEmail, exists := c.Get("adminEmail")
	if !exists {
		return fmt.Errorf("adminEmail not found in context")
	}

	userAgent := c.GetHeader("User-Agent")
	deviceInfo := "Desktop"
	if strings.Contains(userAgent, "Mobile") {
		deviceInfo = "Mobile"
	} else if strings.Contains(userAgent, "Tablet") {
		deviceInfo = "Tablet"
	}

	logEntry := models.AdminActionLog{
		ID:           primitive.NewObjectID(),
		AdminID:      adminID.(primitive.ObjectID),
		AdminEmail:   adminEmail.(string),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    c.ClientIP(),
		UserAgent:    userAgent,
		DeviceInfo:   deviceInfo,
		Timestamp:    time.Now(),
		Details:      details,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.MongoDatabase.Collection("admin_action_logs").InsertOne(ctx, logEntry)
	return err
}
