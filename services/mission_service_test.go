package services

import (
	"testing"

	"vitalitygo/bmi"
	"vitalitygo/models"

	"github.com/stretchr/testify/assert"
)

func TestSeededRejectsEmptyTiers(t *testing.T) {
	empty := models.MissionGroup{}
	assert.False(t, seeded(&empty))

	partial := DefaultMissions(bmi.Normal)
	partial.WeeklyMissions = nil
	assert.False(t, seeded(&partial))

	full := DefaultMissions(bmi.Normal)
	assert.True(t, seeded(&full))
}

func TestRegenerateGroupRestoresCatalog(t *testing.T) {
	// A document that lost all its missions comes back as the full
	// catalog set, not an empty board.
	stored := models.MissionGroup{
		DailyMissions:   []models.Mission{},
		WeeklyMissions:  []models.Mission{},
		SpecialMissions: []models.Mission{},
	}
	group := regenerateGroup(bmi.Overweight, &stored)

	want := DefaultMissions(bmi.Overweight)
	assert.Equal(t, want, group)
	assert.True(t, seeded(&group))
}

func TestRegenerateGroupKeepsManualCompletion(t *testing.T) {
	stored := DefaultMissions(bmi.Underweight)
	stored.DailyMissions[2].Completed = true
	stored.DailyMissions[2].ManuallyCompleted = true
	stored.WeeklyMissions = nil // degenerate tier forces regeneration

	group := regenerateGroup(bmi.Underweight, &stored)

	assert.True(t, group.DailyMissions[2].Completed)
	assert.True(t, group.DailyMissions[2].ManuallyCompleted)
	assert.Len(t, group.WeeklyMissions, 3)
	assert.False(t, group.WeeklyMissions[0].Completed)
}

func TestRegenerateGroupWithoutPrevious(t *testing.T) {
	group := regenerateGroup(bmi.Obese, nil)
	assert.Equal(t, DefaultMissions(bmi.Obese), group)
}

func TestCategoryForUserFollowsLatestWeight(t *testing.T) {
	user := &models.User{HeightCm: 170, WeightData: []float64{60, 95}}
	assert.Equal(t, bmi.Obese, CategoryForUser(user))

	// No recorded weight or height falls back to Normal
	assert.Equal(t, bmi.Normal, CategoryForUser(&models.User{}))
}
