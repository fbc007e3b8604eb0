package models

import (
	"time"
)

// GoalKind identifies how a mission's completion is evaluated
type GoalKind string

const (
	GoalDistance  GoalKind = "distance"  // steps against a km threshold
	GoalHydration GoalKind = "hydration" // water intake against a liter threshold
	GoalComposite GoalKind = "composite" // all auto-evaluated daily missions done
	GoalGeofence  GoalKind = "geofence"  // proximity to the target point
	GoalManual    GoalKind = "manual"    // user toggle only
)

// Goal is the structured completion rule for a mission, kept separate
// from the display title so evaluation never depends on parsing text.
type Goal struct {
	Kind      GoalKind `bson:"kind" json:"kind"`
	Threshold float64  `bson:"threshold,omitempty" json:"threshold,omitempty"`
	Unit      string   `bson:"unit,omitempty" json:"unit,omitempty"`
}

// Mission is a single user-facing goal with a boolean completion state.
// ManuallyCompleted marks a terminal state: once set, automatic
// evaluation never clears Completed again.
type Mission struct {
	Title             string `bson:"title" json:"title"`
	Goal              Goal   `bson:"goal" json:"goal"`
	Completed         bool   `bson:"completed" json:"completed"`
	ManuallyCompleted bool   `bson:"manuallyCompleted,omitempty" json:"manuallyCompleted,omitempty"`
}

// MissionGroup holds the three tiers of missions for one BMI category.
// Each tier has exactly three slots.
type MissionGroup struct {
	DailyMissions   []Mission `bson:"dailyMissions" json:"dailyMissions"`
	WeeklyMissions  []Mission `bson:"weeklyMissions" json:"weeklyMissions"`
	SpecialMissions []Mission `bson:"specialMissions" json:"specialMissions"`
}

// Tiers returns the mission tiers in daily/weekly/special order for
// callers that iterate over all of them.
func (g *MissionGroup) Tiers() [][]Mission {
	return [][]Mission{g.DailyMissions, g.WeeklyMissions, g.SpecialMissions}
}

// MissionDocument is the stored shape of a mission group, keyed by
// "{userID}_{bmiCategory}" so each user keeps one group per category.
type MissionDocument struct {
	ID           string    `bson:"_id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	BmiCategory  string    `bson:"bmiCategory" json:"bmiCategory"`
	MissionGroup `bson:",inline"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserMetrics is the read-only input to mission evaluation.
type UserMetrics struct {
	Steps             int     `json:"steps"`
	WaterIntakeLiters float64 `json:"waterIntakeLiters"`
}
