package websocket

import (
	"context"
	"log"
	"net/http"
	"time"

	"vitalitygo/bmi"
	"vitalitygo/config"
	"vitalitygo/db"
	"vitalitygo/models"
	"vitalitygo/services"
	"vitalitygo/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PositionMessage is a single location update from the client's
// geolocation watch stream.
type PositionMessage struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TrackHandler upgrades the connection and consumes the client's
// position stream. Each update runs the geofence rule in the same
// tick; arriving at the target completes the special mission once and
// pushes a one-time notification back over the socket.
func TrackHandler(cfg *config.Config, notifier *services.BMINotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			log.Println("WebSocket connection failed: missing token")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		userID, _, err := utils.ValidateAccessToken(c.Request.Context(), cfg.Cognito.Region, token)
		if err != nil || userID == "" {
			log.Printf("WebSocket connection failed: invalid token - %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}

		client := &EventClient{Conn: conn, UserID: userID}
		RegisterEventClient(client)
		defer UnregisterEventClient(client)

		// Seed the notifier from the stored profile so the category is
		// right even when this is the first request after a restart.
		seedCategory(c.Request.Context(), notifier, userID)

		categories := notifier.Subscribe(userID)
		defer notifier.Unsubscribe(userID, categories)
		go pumpCategoryEvents(client, userID, categories)

		target := services.LatLng{Lat: cfg.Geofence.TargetLat, Lng: cfg.Geofence.TargetLng}

		for {
			var pos PositionMessage
			if err := conn.ReadJSON(&pos); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("Track stream error for %s: %v", userID, err)
				}
				return
			}
			handlePositionUpdate(client, userID, services.LatLng{Lat: pos.Lat, Lng: pos.Lng}, target, cfg.Geofence.RadiusM, notifier)
		}
	}
}

// seedCategory publishes the profile-derived BMI category so the
// in-memory notifier state matches storage.
func seedCategory(ctx context.Context, notifier *services.BMINotifier, userID string) {
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		log.Printf("Failed to load profile for %s: %v", userID, err)
		return
	}
	notifier.Publish(userID, services.CategoryForUser(user))
}

// pumpCategoryEvents forwards BMI category changes from the notifier
// subscription to the client. The first value arrives immediately on
// subscribe; the loop ends when Unsubscribe closes the channel.
func pumpCategoryEvents(client *EventClient, userID string, categories <-chan bmi.Category) {
	for category := range categories {
		event := models.TrackerEvent{
			Type:        "bmi_changed",
			UserID:      userID,
			BmiCategory: string(category),
			Timestamp:   time.Now(),
		}
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Failed to push category event to %s: %v", userID, err)
			return
		}
	}
}

func handlePositionUpdate(client *EventClient, userID string, current, target services.LatLng, radiusM float64, notifier *services.BMINotifier) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	category := notifier.Current(userID)
	group, err := services.LoadMissionGroup(ctx, userID, category)
	if err != nil {
		log.Printf("Failed to load missions for %s: %v", userID, err)
		return
	}

	result := services.CheckGeofence(&group, current, target, radiusM)
	if !result.Completed {
		return
	}

	if err := db.SaveMissions(ctx, userID, string(category), group); err != nil {
		log.Printf("Failed to save geofence completion for %s: %v", userID, err)
	}

	event := models.TrackerEvent{
		Type:         "mission_completed",
		UserID:       userID,
		BmiCategory:  string(category),
		MissionTitle: result.MissionTitle,
		Tier:         "special",
		DistanceM:    result.DistanceM,
		Timestamp:    time.Now(),
	}
	if err := client.SafeWriteJSON(event); err != nil {
		log.Printf("Failed to push completion event to %s: %v", userID, err)
	}
}
