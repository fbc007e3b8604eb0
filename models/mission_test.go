package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMissionDocumentBSONRoundTrip(t *testing.T) {
	original := MissionDocument{
		ID:          "user-1_normal",
		UserID:      "user-1",
		BmiCategory: "normal",
		MissionGroup: MissionGroup{
			DailyMissions: []Mission{
				{
					Title:     "Walk 2 km",
					Goal:      Goal{Kind: GoalDistance, Threshold: 2, Unit: "km"},
					Completed: true,
				},
				{
					Title: "Drink 1.5 L of water",
					Goal:  Goal{Kind: GoalHydration, Threshold: 1.5, Unit: "l"},
				},
				{
					Title:             "Do stretching exercises",
					Goal:              Goal{Kind: GoalManual},
					Completed:         true,
					ManuallyCompleted: true,
				},
			},
			WeeklyMissions: []Mission{
				{
					Title: "Complete all daily missions",
					Goal:  Goal{Kind: GoalComposite},
				},
			},
			SpecialMissions: []Mission{
				{
					Title: "Reach the target point",
					Goal:  Goal{Kind: GoalGeofence},
				},
			},
		},
		// bson stores times as UTC with millisecond precision
		UpdatedAt: time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC),
	}

	data, err := bson.Marshal(original)
	assert.NoError(t, err)

	var decoded MissionDocument
	assert.NoError(t, bson.Unmarshal(data, &decoded))

	// Decoded times carry the local zone, so compare the instant and
	// the rest of the document separately.
	assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
	decoded.UpdatedAt = original.UpdatedAt
	assert.Equal(t, original, decoded)
}

func TestMissionBSONOmitsUnsetManualFlag(t *testing.T) {
	data, err := bson.Marshal(Mission{
		Title: "Walk 1 km",
		Goal:  Goal{Kind: GoalDistance, Threshold: 1, Unit: "km"},
	})
	assert.NoError(t, err)

	var raw bson.M
	assert.NoError(t, bson.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "manuallyCompleted")
	assert.Contains(t, raw, "completed")
}
