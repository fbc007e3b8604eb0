package utils

import (
	"context"
	"time"

	"vitalitygo/db"
	"vitalitygo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PopulateTestUsers inserts sample users into the database. Upserts by
// id so repeated startups do not duplicate them.
func PopulateTestUsers() {
	collection := db.MongoDatabase.Collection("users")

	users := []models.User{
		{
			UID:         "test-alice",
			Email:       "alice@example.com",
			Name:        "Alice Johnson",
			Age:         29,
			HeightCm:    168,
			WeightData:  []float64{62.5, 62.1},
			Steps:       8400,
			WaterIntake: 1.5,
			Settings:    models.UserSettings{Notifications: true, Language: "en", Units: "metric"},
			CreatedAt:   time.Now(),
		},
		{
			UID:         "test-bob",
			Email:       "bob@example.com",
			Name:        "Bob Smith",
			Age:         41,
			HeightCm:    181,
			WeightData:  []float64{95.0, 94.2, 93.8},
			Steps:       3100,
			WaterIntake: 0.8,
			Settings:    models.UserSettings{Notifications: false, Language: "en", Units: "metric"},
			CreatedAt:   time.Now(),
		},
		{
			UID:         "test-carol",
			Email:       "carol@example.com",
			Name:        "Carol Davis",
			Age:         23,
			HeightCm:    160,
			WeightData:  []float64{46.0},
			Steps:       12800,
			WaterIntake: 2.1,
			Settings:    models.UserSettings{Notifications: true, Language: "es", Units: "metric"},
			CreatedAt:   time.Now(),
		},
	}

	for _, user := range users {
		collection.ReplaceOne(
			context.Background(),
			bson.M{"_id": user.UID},
			user,
			options.Replace().SetUpsert(true),
		)
	}
}
