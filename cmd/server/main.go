package main

import (
	"log"
	"os"
	"strconv"

	"vitalitygo/config"
	"vitalitygo/db"
	"vitalitygo/internal/live"
	"vitalitygo/middlewares"
	"vitalitygo/routes"
	"vitalitygo/services"
	"vitalitygo/utils"
	"vitalitygo/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.prod.yml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)
	services.InitCoachService(cfg.Gemini.ApiKey)

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	if err := middlewares.InitCasbin(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	// Redis powers the leaderboard and rate limiting; the server still
	// works without it.
	if err := live.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("Redis unavailable, leaderboard and rate limiting disabled: %v", err)
	}

	if os.Getenv("POPULATE_TEST_USERS") == "true" {
		utils.PopulateTestUsers()
	}

	// Midnight and weekly resets
	resetCron := services.StartResetScheduler()
	defer resetCron.Stop()

	notifier := services.NewBMINotifier()

	router := setupRouter(cfg, notifier)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config, notifier *services.BMINotifier) *gin.Engine {
	router := gin.Default()

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Configure CORS for the app frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8100", "http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for authentication
	routes.SetupAuthRoutes(router, cfg)

	// Admin dashboard routes (own JWT, separate from Cognito)
	routes.SetupAdminRoutes(router, cfg)

	// Protected routes (Cognito access token)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware(cfg))
	{
		routes.SetupAccountRoutes(auth, cfg)
		routes.SetupProfileRoutes(auth, notifier)
		routes.SetupTrackerRoutes(auth, cfg, notifier)
	}

	// WebSocket position tracking; authenticates via token query param
	// because browsers cannot set headers on websocket upgrades.
	router.GET("/ws/track", websocket.TrackHandler(cfg, notifier))

	return router
}
