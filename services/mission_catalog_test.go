package services

import (
	"testing"

	"vitalitygo/bmi"
	"vitalitygo/models"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMissionsShape(t *testing.T) {
	for _, category := range bmi.Categories() {
		group := DefaultMissions(category)

		assert.Len(t, group.DailyMissions, 3, "%s daily", category)
		assert.Len(t, group.WeeklyMissions, 3, "%s weekly", category)
		assert.Len(t, group.SpecialMissions, 3, "%s special", category)

		for _, tier := range group.Tiers() {
			assert.Equal(t, models.GoalDistance, tier[0].Goal.Kind)
			assert.Equal(t, models.GoalHydration, tier[1].Goal.Kind)
			for _, m := range tier {
				assert.False(t, m.Completed)
				assert.False(t, m.ManuallyCompleted)
				assert.NotEmpty(t, m.Title)
			}
		}

		assert.Equal(t, models.GoalManual, group.DailyMissions[2].Goal.Kind)
		assert.Equal(t, models.GoalComposite, group.WeeklyMissions[2].Goal.Kind)
		assert.Equal(t, models.GoalGeofence, group.SpecialMissions[2].Goal.Kind)
	}
}

func TestDefaultMissionsScaleWithSeverity(t *testing.T) {
	under := DefaultMissions(bmi.Underweight)
	over := DefaultMissions(bmi.Overweight)
	obese := DefaultMissions(bmi.Obese)

	assert.Less(t, under.DailyMissions[0].Goal.Threshold, over.DailyMissions[0].Goal.Threshold)
	assert.Less(t, over.DailyMissions[0].Goal.Threshold, obese.DailyMissions[0].Goal.Threshold)
	assert.Less(t, over.SpecialMissions[1].Goal.Threshold, obese.SpecialMissions[1].Goal.Threshold)
}

func TestDefaultMissionsUnknownCategoryFallsBackToNormal(t *testing.T) {
	assert.Equal(t, DefaultMissions(bmi.Normal), DefaultMissions(bmi.Category("unknown")))
}
