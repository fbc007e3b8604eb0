package services

import (
	"context"
	"log"
	"time"

	"vitalitygo/db"
	"vitalitygo/models"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
)

// StartResetScheduler runs the periodic resets the mobile client used
// to do on date change: daily metrics and daily mission flags reset at
// midnight, the weekly tier resets Monday morning. Returns the cron so
// the caller can stop it on shutdown.
func StartResetScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("@midnight", func() {
		if err := ResetDailyProgress(context.Background()); err != nil {
			log.Printf("Daily reset failed: %v", err)
		}
	})
	c.AddFunc("0 0 * * 1", func() {
		if err := ResetWeeklyMissions(context.Background()); err != nil {
			log.Printf("Weekly reset failed: %v", err)
		}
	})

	c.Start()
	log.Println("Reset scheduler started")
	return c
}

// ResetDailyProgress zeroes every user's daily metrics and clears the
// completion flags of non-manual daily missions.
func ResetDailyProgress(ctx context.Context) error {
	dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.MongoDatabase.Collection("users").UpdateMany(
		dbCtx,
		bson.M{},
		bson.M{"$set": bson.M{"steps": 0, "waterIntake": 0.0, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	return resetMissionTier(dbCtx, "dailyMissions")
}

// ResetWeeklyMissions clears the completion flags of non-manual
// weekly missions.
func ResetWeeklyMissions(ctx context.Context) error {
	dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return resetMissionTier(dbCtx, "weeklyMissions")
}

func resetMissionTier(ctx context.Context, tier string) error {
	cursor, err := db.MongoDatabase.Collection("missions").Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc models.MissionDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Skipping undecodable mission document: %v", err)
			continue
		}
		if !clearTierFlags(&doc, tier) {
			continue
		}
		if err := db.SaveMissions(ctx, doc.UserID, doc.BmiCategory, doc.MissionGroup); err != nil {
			log.Printf("Failed to reset %s for %s: %v", tier, doc.ID, err)
		}
	}
	return cursor.Err()
}

// clearTierFlags resets completion on a tier, leaving manually
// completed missions locked. Reports whether anything changed.
func clearTierFlags(doc *models.MissionDocument, tier string) bool {
	var missions []models.Mission
	switch tier {
	case "dailyMissions":
		missions = doc.DailyMissions
	case "weeklyMissions":
		missions = doc.WeeklyMissions
	default:
		return false
	}
	changed := false
	for i := range missions {
		if missions[i].Completed && !missions[i].ManuallyCompleted {
			missions[i].Completed = false
			changed = true
		}
	}
	return changed
}
