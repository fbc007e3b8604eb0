package services

import (
	"context"
	"errors"
	"log"

	"vitalitygo/bmi"
	"vitalitygo/db"
	"vitalitygo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// LoadMissionGroup returns the user's mission group for a BMI category,
// seeding it lazily from the catalog defaults on first access. A stored
// document whose tiers have been emptied out is treated the same as a
// missing one and regenerated, keeping any manual completions. Goals on
// legacy documents are normalized before the group is returned.
func LoadMissionGroup(ctx context.Context, userID string, category bmi.Category) (models.MissionGroup, error) {
	doc, err := db.GetMissions(ctx, userID, string(category))
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return models.MissionGroup{}, err
	}
	if err == nil && seeded(&doc.MissionGroup) {
		NormalizeGoals(&doc.MissionGroup)
		return doc.MissionGroup, nil
	}

	var previous *models.MissionGroup
	if err == nil {
		previous = &doc.MissionGroup
	}
	group := regenerateGroup(category, previous)
	if err := db.SaveMissions(ctx, userID, string(category), group); err != nil {
		// Storage failure is not fatal: the in-memory group stays
		// authoritative until the next save attempt succeeds.
		log.Printf("Failed to seed missions for %s/%s: %v", userID, category, err)
	}
	return group, nil
}

// seeded reports whether every tier of a stored group holds missions.
func seeded(group *models.MissionGroup) bool {
	for _, tier := range group.Tiers() {
		if len(tier) == 0 {
			return false
		}
	}
	return true
}

// regenerateGroup builds a fresh catalog group for the category and
// carries manual completion over from whatever survived in storage.
func regenerateGroup(category bmi.Category, previous *models.MissionGroup) models.MissionGroup {
	group := DefaultMissions(category)
	PreserveManualCompletion(&group, previous)
	return group
}

// RefreshMissionProgress loads the active mission group, reconciles it
// against the user's current metrics and persists it when anything
// changed. Returns the up-to-date group.
func RefreshMissionProgress(ctx context.Context, userID string, category bmi.Category, metrics models.UserMetrics) (models.MissionGroup, error) {
	group, err := LoadMissionGroup(ctx, userID, category)
	if err != nil {
		return models.MissionGroup{}, err
	}
	if EvaluateMissions(&group, metrics) {
		if err := db.SaveMissions(ctx, userID, string(category), group); err != nil {
			log.Printf("Failed to save mission progress for %s/%s: %v", userID, category, err)
		}
	}
	return group, nil
}

// MetricsForUser extracts the evaluator inputs from a profile document.
func MetricsForUser(user *models.User) models.UserMetrics {
	return models.UserMetrics{
		Steps:             user.Steps,
		WaterIntakeLiters: user.WaterIntake,
	}
}

// CategoryForUser derives the user's BMI category from the latest
// weight entry and stored height. Missing data means Normal.
func CategoryForUser(user *models.User) bmi.Category {
	return bmi.Categorize(bmi.Calculate(user.LatestWeight(), user.HeightCm))
}
