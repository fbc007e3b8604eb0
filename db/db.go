package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"vitalitygo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = mongo.ErrNoDocuments

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "vitalitygo"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "vitalitygo"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "vitalitygo"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	return nil
}

// MissionDocID builds the composite key for a user's mission document.
// One document exists per (user, BMI category) pair.
func MissionDocID(userID, category string) string {
	return userID + "_" + category
}

// GetMissions loads the mission group stored for a user and category.
// Returns ErrNotFound when no document exists yet; the caller seeds
// from the catalog defaults in that case.
func GetMissions(ctx context.Context, userID, category string) (*models.MissionDocument, error) {
	var doc models.MissionDocument
	err := MongoDatabase.Collection("missions").
		FindOne(ctx, bson.M{"_id": MissionDocID(userID, category)}).
		Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveMissions writes the mission group for a user and category.
// Whole-document replace with upsert: last write wins, matching the
// storage layer's ordering guarantee.
func SaveMissions(ctx context.Context, userID, category string, group models.MissionGroup) error {
	doc := models.MissionDocument{
		ID:           MissionDocID(userID, category),
		UserID:       userID,
		BmiCategory:  category,
		MissionGroup: group,
		UpdatedAt:    time.Now(),
	}
	_, err := MongoDatabase.Collection("missions").ReplaceOne(
		ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		log.Printf("Error saving missions for %s: %v", doc.ID, err)
		return err
	}
	return nil
}

// GetUser loads a user profile document by Cognito user id.
func GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := MongoDatabase.Collection("users").
		FindOne(ctx, bson.M{"_id": userID}).
		Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUser creates or merges a user profile document.
func UpsertUser(ctx context.Context, userID string, fields bson.M) error {
	now := time.Now()
	fields["updatedAt"] = now
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"createdAt": now},
	}
	_, err := MongoDatabase.Collection("users").UpdateOne(
		ctx,
		bson.M{"_id": userID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

// DeleteUserData removes the profile document and cascades over every
// mission document the user owns, across all BMI categories.
func DeleteUserData(ctx context.Context, userID string) error {
	if _, err := MongoDatabase.Collection("users").DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("failed to delete user document: %w", err)
	}
	if _, err := MongoDatabase.Collection("missions").DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to delete mission documents: %w", err)
	}
	return nil
}
