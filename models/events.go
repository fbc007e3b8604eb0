package models

import (
	"time"
)

// TrackerEvent represents a tracker event to broadcast via WebSocket
type TrackerEvent struct {
	Type         string    `json:"type"` // "mission_completed", "bmi_changed", "missions_updated"
	UserID       string    `json:"userId"`
	BmiCategory  string    `json:"bmiCategory,omitempty"`
	MissionTitle string    `json:"missionTitle,omitempty"`
	Tier         string    `json:"tier,omitempty"` // "daily", "weekly", "special"
	DistanceM    float64   `json:"distanceMeters,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
