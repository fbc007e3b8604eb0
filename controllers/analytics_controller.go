package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"vitalitygo/db"
	"vitalitygo/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAnalytics returns current analytics snapshot
func GetAnalytics(ctx *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot := buildSnapshot(dbCtx, time.Now())

	// Save snapshot to database (optional, for historical tracking)
	snapshotsCollection := db.MongoDatabase.Collection("analytics_snapshots")
	snapshotsCollection.InsertOne(dbCtx, snapshot)

	ctx.JSON(http.StatusOK, gin.H{
		"totalUsers":    snapshot.TotalUsers,
		"activeUsers":   snapshot.ActiveUsers,
		"newUsersToday": snapshot.NewUsersToday,
		"appLogins":     snapshot.AppLogins,
		"stepsAverage":  snapshot.StepsAverage,
		"waterAverage":  snapshot.WaterAverage,
		"weightEntries": snapshot.WeightEntries,
		"timestamp":     snapshot.Timestamp.Format(time.RFC3339),
	})
}

// buildSnapshot computes the aggregate picture of the user base at a
// point in time. Count errors degrade to zero rather than failing the
// whole snapshot.
func buildSnapshot(dbCtx context.Context, now time.Time) models.AnalyticsSnapshot {
	thirtyDaysAgo := now.AddDate(0, 0, -30)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	usersCollection := db.MongoDatabase.Collection("users")

	totalUsers, _ := usersCollection.CountDocuments(dbCtx, bson.M{})

	// Active users (active in last 30 days)
	activeUsers, _ := usersCollection.CountDocuments(dbCtx, bson.M{
		"lastLoginAt": bson.M{"$gte": thirtyDaysAgo},
	})

	newUsersToday, _ := usersCollection.CountDocuments(dbCtx, bson.M{
		"createdAt": bson.M{"$gte": todayStart},
	})

	// Aggregate login totals and today's metric averages in one pass.
	var appLogins int64
	var stepsAverage, waterAverage float64
	var weightEntries int64

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "appLogins", Value: bson.D{{Key: "$sum", Value: "$loginCount"}}},
			{Key: "stepsAverage", Value: bson.D{{Key: "$avg", Value: "$steps"}}},
			{Key: "waterAverage", Value: bson.D{{Key: "$avg", Value: "$waterIntake"}}},
			{Key: "weightEntries", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$weightData", bson.A{}}}}},
			}}}},
		}}},
	}

	if cursor, err := usersCollection.Aggregate(dbCtx, pipeline); err == nil {
		var results []struct {
			AppLogins     int64   `bson:"appLogins"`
			StepsAverage  float64 `bson:"stepsAverage"`
			WaterAverage  float64 `bson:"waterAverage"`
			WeightEntries int64   `bson:"weightEntries"`
		}
		if err := cursor.All(dbCtx, &results); err == nil && len(results) > 0 {
			appLogins = results[0].AppLogins
			stepsAverage = results[0].StepsAverage
			waterAverage = results[0].WaterAverage
			weightEntries = results[0].WeightEntries
		}
		cursor.Close(dbCtx)
	}

	return models.AnalyticsSnapshot{
		ID:            primitive.NewObjectID(),
		Timestamp:     now,
		TotalUsers:    totalUsers,
		ActiveUsers:   activeUsers,
		NewUsersToday: newUsersToday,
		AppLogins:     appLogins,
		StepsAverage:  stepsAverage,
		WaterAverage:  waterAverage,
		WeightEntries: weightEntries,
	}
}

// GetAnalyticsHistory returns analytics data over time
func GetAnalyticsHistory(ctx *gin.Context) {
	days := 7 // default to 7 days
	if daysStr := ctx.Query("days"); daysStr != "" {
		if parsedDays, err := strconv.Atoi(daysStr); err == nil && parsedDays > 0 {
			days = parsedDays
		}
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	startDate := now.AddDate(0, 0, -days)

	snapshotsCollection := db.MongoDatabase.Collection("analytics_snapshots")

	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cursor, err := snapshotsCollection.Find(dbCtx, bson.M{
		"timestamp": bson.M{"$gte": startDate},
	}, opts)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics history", "message": err.Error()})
		return
	}
	defer cursor.Close(dbCtx)

	var existingSnapshots []models.AnalyticsSnapshot
	if err := cursor.All(dbCtx, &existingSnapshots); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode snapshots", "message": err.Error()})
		return
	}

	// Keep only the latest snapshot per day
	snapshotMap := make(map[string]models.AnalyticsSnapshot)
	for _, snapshot := range existingSnapshots {
		dayKey := snapshot.Timestamp.Format("2006-01-02")
		snapshotMap[dayKey] = snapshot
	}

	// Fill every day in the requested window; days with no stored
	// snapshot get whatever can still be reconstructed from user data.
	var snapshots []models.AnalyticsSnapshot
	for i := 0; i < days; i++ {
		date := startDate.AddDate(0, 0, i)
		dateStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		dateEnd := dateStart.AddDate(0, 0, 1)
		dayKey := dateStart.Format("2006-01-02")

		snapshot, exists := snapshotMap[dayKey]
		if !exists {
			usersCollection := db.MongoDatabase.Collection("users")
			newUsersCount, _ := usersCollection.CountDocuments(dbCtx, bson.M{
				"createdAt": bson.M{"$gte": dateStart, "$lt": dateEnd},
			})
			activeCount, _ := usersCollection.CountDocuments(dbCtx, bson.M{
				"lastLoginAt": bson.M{"$gte": dateStart, "$lt": dateEnd},
			})
			snapshot = models.AnalyticsSnapshot{
				ID:            primitive.NewObjectID(),
				Timestamp:     dateStart,
				NewUsersToday: newUsersCount,
				ActiveUsers:   activeCount,
			}
		}
		snapshots = append(snapshots, snapshot)
	}

	ctx.JSON(http.StatusOK, gin.H{"snapshots": snapshots, "days": days})
}
