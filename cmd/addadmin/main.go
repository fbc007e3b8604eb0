package main

import (
	"context"
	"flag"
	"log"
	"time"

	"vitalitygo/config"
	"vitalitygo/db"
	"vitalitygo/models"
	"vitalitygo/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Admin signup is intentionally disabled on the API; dashboard
// accounts are created with this tool.
func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "", "display name")
	role := flag.String("role", "admin", "role: admin or moderator")
	configPath := flag.String("config", "./config/config.prod.yml", "path to config file")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}
	if *role != "admin" && *role != "moderator" {
		log.Fatalf("invalid role %q, must be admin or moderator", *role)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admins := db.MongoDatabase.Collection("admins")
	err = admins.FindOne(ctx, bson.M{"email": *email}).Err()
	if err == nil {
		log.Fatalf("Admin with email %s already exists", *email)
	}
	if err != mongo.ErrNoDocuments {
		log.Fatalf("Failed to check existing admin: %v", err)
	}

	now := time.Now()
	admin := models.Admin{
		ID:        primitive.NewObjectID(),
		Email:     *email,
		Password:  hash,
		Role:      *role,
		Name:      *name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := admins.InsertOne(ctx, admin); err != nil {
		log.Fatalf("Failed to insert admin: %v", err)
	}

	log.Printf("Created %s account for %s", *role, *email)
}
