package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/labrinth/backend/internal/cache"
	"github.com/labrinth/backend/internal/models"
)

// Hub maintains the set of connected feed subscribers and broadcasts forum
// events to them. Events travel through Redis pub/sub so every server
// instance sees mutations made by the others.
type Hub struct {
	// Registered clients
	clients map[string]*Client

	// Outbound events for all clients
	broadcast chan []byte

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Redis client for pub/sub
	redis *cache.RedisClient

	// Mutex for thread-safe operations
	mu sync.RWMutex
}

// NewHub creates a new Hub
func NewHub(redis *cache.RedisClient) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		redis:      redis,
	}
}

// Run starts the hub
func (h *Hub) Run() {
	go h.subscribeToRedis()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = client
			h.mu.Unlock()

			h.redis.SetUserOnline(client.userID)
			h.publishPresence(client.userID, "online")

			log.Printf("Feed client registered: %s", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()

			h.redis.SetUserOffline(client.userID)
			h.publishPresence(client.userID, "offline")

			log.Printf("Feed client unregistered: %s", client.userID)

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client.userID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// subscribeToRedis forwards every published forum event to the local clients
func (h *Hub) subscribeToRedis() {
	pubsub := h.redis.SubscribeToEvents()
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.broadcast <- []byte(msg.Payload)
	}
}

func (h *Hub) publishPresence(userID, status string) {
	event := models.WSMessage{
		Event: models.EventPresenceUpdate,
		Payload: models.UserPresence{
			UserID: userID,
			Status: status,
		},
	}
	if err := h.redis.PublishEvent(event); err != nil {
		log.Printf("Failed to publish presence update: %v", err)
	}
}

// SendToUser sends an event to a specific connected user
func (h *Hub) SendToUser(userID string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if ok {
		select {
		case client.send <- data:
		default:
			// Client's send channel is full, skip
		}
	}

	return nil
}

// GetOnlineUsers returns the list of online user IDs
func (h *Hub) GetOnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userIDs := make([]string, 0, len(h.clients))
	for userID := range h.clients {
		userIDs = append(userIDs, userID)
	}

	return userIDs
}

// IsUserOnline checks if a user is online
func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.clients[userID]
	return ok
}
