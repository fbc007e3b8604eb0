package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin represents an admin or moderator user
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // Never return password in JSON
	Role      string             `bson:"role" json:"role"`  // "admin" or "moderator"
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AdminActionLog represents a log entry for admin actions
type AdminActionLog struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	AdminID      primitive.ObjectID     `bson:"adminId" json:"adminId"`
	AdminEmail   string                 `bson:"adminEmail" json:"adminEmail"`
	Action       string                 `bson:"action" json:"action"` // "delete_user", "view_analytics", etc.
	ResourceType string                 `bson:"resourceType" json:"resourceType"`
	ResourceID   string                 `bson:"resourceId" json:"resourceId"`
	IPAddress    string                 `bson:"ipAddress" json:"ipAddress"`
	UserAgent    string                 `bson:"userAgent" json:"userAgent"`
	DeviceInfo   string                 `bson:"deviceInfo,omitempty" json:"deviceInfo,omitempty"`
	Timestamp    time.Time              `bson:"timestamp" json:"timestamp"`
	Details      map[string]interface{} `bson:"details,omitempty" json:"details,omitempty"`
}

// AnalyticsSnapshot represents aggregate activity data at a point in time
type AnalyticsSnapshot struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
	TotalUsers    int64              `bson:"totalUsers" json:"totalUsers"`
	ActiveUsers   int64              `bson:"activeUsers" json:"activeUsers"` // Users active in last 30 days
	NewUsersToday int64              `bson:"newUsersToday" json:"newUsersToday"`
	AppLogins     int64              `bson:"appLogins" json:"appLogins"`
	StepsAverage  float64            `bson:"stepsAverage" json:"stepsAverage"`
	WaterAverage  float64            `bson:"waterAverage" json:"waterAverage"` // liters
	WeightEntries int64              `bson:"weightEntries" json:"weightEntries"`
}
