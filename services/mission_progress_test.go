package services

import (
	"testing"

	"vitalitygo/bmi"
	"vitalitygo/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateDistanceMissionCompletes(t *testing.T) {
	group := DefaultMissions(bmi.Normal) // daily slot 0: "Walk 2 km"
	changed := EvaluateMissions(&group, models.UserMetrics{Steps: 12000})

	assert.True(t, changed)
	assert.True(t, group.DailyMissions[0].Completed)
}

func TestEvaluateDistanceMissionBelowThreshold(t *testing.T) {
	group := DefaultMissions(bmi.Normal)
	EvaluateMissions(&group, models.UserMetrics{Steps: 1999})
	assert.False(t, group.DailyMissions[0].Completed)
}

func TestEvaluateHydrationMissionBelowThreshold(t *testing.T) {
	group := DefaultMissions(bmi.Normal) // daily slot 1: "Drink 1.5 L of water"
	changed := EvaluateMissions(&group, models.UserMetrics{WaterIntakeLiters: 1.0})

	assert.False(t, group.DailyMissions[1].Completed)
	assert.False(t, changed)
}

func TestEvaluateAutoMissionsUncompleteWhenMetricsDrop(t *testing.T) {
	group := DefaultMissions(bmi.Normal)
	EvaluateMissions(&group, models.UserMetrics{Steps: 12000, WaterIntakeLiters: 2})
	assert.True(t, group.DailyMissions[0].Completed)
	assert.True(t, group.DailyMissions[1].Completed)

	// Metrics reset flips auto-evaluated slots back
	changed := EvaluateMissions(&group, models.UserMetrics{})
	assert.True(t, changed)
	assert.False(t, group.DailyMissions[0].Completed)
	assert.False(t, group.DailyMissions[1].Completed)
}

func TestEvaluateCompositeFollowsDailyMissions(t *testing.T) {
	group := DefaultMissions(bmi.Normal)
	// weekly slot 2 is "Complete all daily missions"
	EvaluateMissions(&group, models.UserMetrics{Steps: 12000, WaterIntakeLiters: 2})
	assert.True(t, group.WeeklyMissions[2].Completed)

	EvaluateMissions(&group, models.UserMetrics{})
	assert.False(t, group.WeeklyMissions[2].Completed)
}

func TestManualCompletionNeverCleared(t *testing.T) {
	group := DefaultMissions(bmi.Normal)
	group.WeeklyMissions[2].Completed = true
	group.WeeklyMissions[2].ManuallyCompleted = true
	group.SpecialMissions[2].Completed = true
	group.SpecialMissions[2].ManuallyCompleted = true

	// Zero metrics would otherwise flip the composite back to false
	EvaluateMissions(&group, models.UserMetrics{})

	assert.True(t, group.WeeklyMissions[2].Completed)
	assert.True(t, group.SpecialMissions[2].Completed)
}

func TestGeofenceMissionUntouchedByMetricEvaluation(t *testing.T) {
	group := DefaultMissions(bmi.Overweight)
	changed := EvaluateMissions(&group, models.UserMetrics{Steps: 100000, WaterIntakeLiters: 50})
	assert.True(t, changed)
	assert.False(t, group.SpecialMissions[2].Completed)
}

func TestNormalizeGoalsFromLegacyTitles(t *testing.T) {
	group := models.MissionGroup{
		DailyMissions: []models.Mission{
			{Title: "Walk 2 km"},
			{Title: "Drink 1.5 L of water"},
			{Title: "Do a stretching session"},
		},
		WeeklyMissions: []models.Mission{
			{Title: "Walk 5 km"},
			{Title: "Drink 7 L of water"},
			{Title: "Complete all daily missions"},
		},
		SpecialMissions: []models.Mission{},
	}
	NormalizeGoals(&group)

	assert.Equal(t, models.GoalDistance, group.DailyMissions[0].Goal.Kind)
	assert.Equal(t, 2.0, group.DailyMissions[0].Goal.Threshold)
	assert.Equal(t, models.GoalHydration, group.DailyMissions[1].Goal.Kind)
	assert.Equal(t, 1.5, group.DailyMissions[1].Goal.Threshold)
	assert.Equal(t, models.GoalManual, group.DailyMissions[2].Goal.Kind)
	assert.Equal(t, models.GoalComposite, group.WeeklyMissions[2].Goal.Kind)
}

func TestUnrecognizedTitleKeepsStoredFlag(t *testing.T) {
	group := models.MissionGroup{
		DailyMissions: []models.Mission{{Title: "Meditate", Completed: true}},
	}
	changed := EvaluateMissions(&group, models.UserMetrics{})
	assert.False(t, changed)
	assert.True(t, group.DailyMissions[0].Completed)
}

func TestExtractNumberDegradesToZero(t *testing.T) {
	assert.Equal(t, 0.0, extractNumber("Walk some distance"))
	assert.Equal(t, 2.5, extractNumber("Walk 2.5 km"))
}

func TestPreserveManualCompletion(t *testing.T) {
	previous := DefaultMissions(bmi.Normal)
	previous.SpecialMissions[2].Completed = true
	previous.SpecialMissions[2].ManuallyCompleted = true

	fresh := DefaultMissions(bmi.Normal)
	PreserveManualCompletion(&fresh, &previous)

	assert.True(t, fresh.SpecialMissions[2].Completed)
	assert.True(t, fresh.SpecialMissions[2].ManuallyCompleted)
	assert.False(t, fresh.DailyMissions[0].Completed)
}

func TestToggleMission(t *testing.T) {
	group := DefaultMissions(bmi.Normal)

	ok := ToggleMission(&group, "daily", 2)
	assert.True(t, ok)
	assert.True(t, group.DailyMissions[2].Completed)
	assert.True(t, group.DailyMissions[2].ManuallyCompleted)

	// Toggling back clears the manual mark as well
	ToggleMission(&group, "daily", 2)
	assert.False(t, group.DailyMissions[2].Completed)
	assert.False(t, group.DailyMissions[2].ManuallyCompleted)

	assert.False(t, ToggleMission(&group, "daily", 7))
	assert.False(t, ToggleMission(&group, "hourly", 0))
}
