package websocket

import (
	"log"
	"sync"

	"vitalitygo/models"

	"github.com/gorilla/websocket"
)

// EventClient represents a client connected for tracker event updates
type EventClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (ec *EventClient) SafeWriteJSON(v interface{}) error {
	ec.writeMu.Lock()
	defer ec.writeMu.Unlock()
	return ec.Conn.WriteJSON(v)
}

// Global event hub for broadcasting tracker events to connected clients
var (
	eventClients = make(map[*EventClient]bool)
	eventsMutex  sync.RWMutex
)

// RegisterEventClient registers a client for tracker event updates
func RegisterEventClient(client *EventClient) {
	eventsMutex.Lock()
	defer eventsMutex.Unlock()
	eventClients[client] = true
	log.Printf("Event client registered. Total clients: %d", len(eventClients))
}

// UnregisterEventClient removes a client from tracker event updates
func UnregisterEventClient(client *EventClient) {
	eventsMutex.Lock()
	defer eventsMutex.Unlock()
	delete(eventClients, client)
	client.Conn.Close()
	log.Printf("Event client unregistered. Total clients: %d", len(eventClients))
}

// BroadcastTrackerEvent pushes a tracker event to the user's connected
// clients: mission completions, BMI category changes, group updates.
func BroadcastTrackerEvent(event models.TrackerEvent) {
	eventsMutex.RLock()
	defer eventsMutex.RUnlock()

	for client := range eventClients {
		if client.UserID != event.UserID {
			continue
		}
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting tracker event to client: %v", err)
			// Remove client if write fails
			go UnregisterEventClient(client)
		}
	}
}
