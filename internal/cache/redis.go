package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/labrinth/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// Pub/sub channel for the forum event feed.
const eventsChannel = "forum.events"

type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client
func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		ctx:    ctx,
	}, nil
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Presence Management

// SetUserOnline sets a user as online
func (r *RedisClient) SetUserOnline(userID string) error {
	key := fmt.Sprintf("presence:user:%s", userID)
	presence := models.UserPresence{
		UserID:   userID,
		Status:   "online",
		LastSeen: time.Now(),
	}

	data, err := json.Marshal(presence)
	if err != nil {
		return err
	}

	return r.client.Set(r.ctx, key, data, 5*time.Minute).Err()
}

// SetUserOffline sets a user as offline
func (r *RedisClient) SetUserOffline(userID string) error {
	key := fmt.Sprintf("presence:user:%s", userID)
	presence := models.UserPresence{
		UserID:   userID,
		Status:   "offline",
		LastSeen: time.Now(),
	}

	data, err := json.Marshal(presence)
	if err != nil {
		return err
	}

	return r.client.Set(r.ctx, key, data, 24*time.Hour).Err()
}

// GetUserPresence gets a user's presence
func (r *RedisClient) GetUserPresence(userID string) (*models.UserPresence, error) {
	key := fmt.Sprintf("presence:user:%s", userID)
	data, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return &models.UserPresence{
			UserID:   userID,
			Status:   "offline",
			LastSeen: time.Now(),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	var presence models.UserPresence
	if err := json.Unmarshal([]byte(data), &presence); err != nil {
		return nil, err
	}

	return &presence, nil
}

// Pub/Sub

// PublishEvent publishes a forum event (new post, new reply, deletion) to
// the feed channel.
func (r *RedisClient) PublishEvent(event models.WSMessage) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.client.Publish(r.ctx, eventsChannel, data).Err()
}

// SubscribeToEvents subscribes to the forum event feed
func (r *RedisClient) SubscribeToEvents() *redis.PubSub {
	return r.client.Subscribe(r.ctx, eventsChannel)
}
