package models

import (
	"time"
)

// UserSettings holds per-user app preferences
type UserSettings struct {
	Notifications bool   `bson:"notifications" json:"notifications"`
	Language      string `bson:"language" json:"language"` // "en" or "es"
	Units         string `bson:"units" json:"units"`       // "metric" or "imperial"
}

// User defines a user profile document, keyed by the Cognito user id
type User struct {
	UID          string       `bson:"_id" json:"uid"`
	Email        string       `bson:"email" json:"email"`
	Name         string       `bson:"name,omitempty" json:"name,omitempty"`
	Age          int          `bson:"age,omitempty" json:"age,omitempty"`
	HeightCm     float64      `bson:"height,omitempty" json:"height,omitempty"`
	WeightData   []float64    `bson:"weightData,omitempty" json:"weightData,omitempty"`
	Steps        int          `bson:"steps" json:"steps"`
	WaterIntake  float64      `bson:"waterIntake" json:"waterIntake"` // liters, reset daily
	Settings     UserSettings `bson:"settings,omitempty" json:"settings,omitempty"`
	ProfileImage string       `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	LoginCount   int64        `bson:"loginCount" json:"loginCount"`
	LastLoginAt  time.Time    `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// LatestWeight returns the most recent weight entry, or 0 when none exist.
func (u *User) LatestWeight() float64 {
	if len(u.WeightData) == 0 {
		return 0
	}
	return u.WeightData[len(u.WeightData)-1]
}
