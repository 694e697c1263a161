// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup; nil disables publishing.
var Rdb *redis.Client

// ChannelPrefix prefixes the per-game pub/sub channel.
var ChannelPrefix = "memoria:events"

// GameEventRecord is one entry of a game's live event feed.
type GameEventRecord struct {
	GameID     uuid.UUID              `json:"game_id"`
	SessionID  uuid.UUID              `json:"session_id"`
	EventIndex int                    `json:"event_index"`
	EventType  string                 `json:"event_type"`
	Payload    map[string]interface{} `json:"payload"`
	Timestamp  int64                  `json:"timestamp"`
}

// ConnectRedis initializes the global Redis client. On failure Rdb stays nil.
func ConnectRedis(addr string, dbIdx int) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		Rdb = nil
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// ChannelFor returns the pub/sub channel carrying gameID's events.
func ChannelFor(gameID uuid.UUID) string {
	return ChannelPrefix + ":" + gameID.String()
}

// PublishGameEvent serializes the record and publishes it on the game's channel.
// Nothing is stored; subscribers that are not listening miss the event.
func PublishGameEvent(ctx context.Context, record GameEventRecord) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal GameEventRecord: %w", err)
	}
	channel := ChannelFor(record.GameID)
	if err := Rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel '%s': %w", channel, err)
	}
	return nil
}

// SubscribeGameEvents subscribes client to gameID's channel. The caller closes the returned PubSub.
func SubscribeGameEvents(ctx context.Context, client *redis.Client, gameID uuid.UUID) (*redis.PubSub, error) {
	sub := client.Subscribe(ctx, ChannelFor(gameID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", ChannelFor(gameID), err)
	}
	return sub, nil
}

// SubscribeAllGameEvents pattern-subscribes client to every game channel under ChannelPrefix.
func SubscribeAllGameEvents(ctx context.Context, client *redis.Client) (*redis.PubSub, error) {
	pattern := ChannelPrefix + ":*"
	sub := client.PSubscribe(ctx, pattern)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("psubscribe to %s: %w", pattern, err)
	}
	return sub, nil
}

// DecodeGameEvent parses a payload received from a game channel.
func DecodeGameEvent(payload string) (GameEventRecord, error) {
	var rec GameEventRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return rec, fmt.Errorf("invalid game event record: %w", err)
	}
	return rec, nil
}
