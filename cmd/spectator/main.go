// cmd/spectator/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/cache"
	"github.com/jason-s-yu/memoria/internal/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// spectator tails one game's live event feed from Redis and logs each event.
func main() {
	gameFlag := flag.String("game", "", "id of the game to follow")
	flag.Parse()

	logger := logrus.New()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	gameID, err := uuid.Parse(*gameFlag)
	if err != nil {
		logger.Fatalf("-game must be a game id: %v", err)
	}
	cache.ChannelPrefix = cfg.EventChannelPrefix

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer client.Close()

	sub, err := cache.SubscribeGameEvents(ctx, client, gameID)
	if err != nil {
		logger.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()
	logger.Infof("following %s", cache.ChannelFor(gameID))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				logger.Warn("subscription closed")
				return
			}
			rec, err := cache.DecodeGameEvent(msg.Payload)
			if err != nil {
				logger.WithError(err).Warn("skipping undecodable event")
				continue
			}
			logger.WithFields(logrus.Fields{
				"session": rec.SessionID,
				"index":   rec.EventIndex,
				"payload": rec.Payload,
			}).Info(rec.EventType)
		}
	}
}
