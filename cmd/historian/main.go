// cmd/historian/main.go archives every game's live event feed into PostgreSQL.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/memoria/internal/cache"
	"github.com/jason-s-yu/memoria/internal/config"
	"github.com/jason-s-yu/memoria/internal/database"
	"github.com/jason-s-yu/memoria/internal/historian"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)
	cache.ChannelPrefix = cfg.EventChannelPrefix

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.DatabaseConfigured() {
		logger.Fatal("historian needs PG_HOST and PG_DATABASE")
	}
	if err := database.ConnectDB(ctx, cfg.PostgresUser, cfg.PostgresPassword, cfg.PGHost, cfg.PGPort, cfg.PGDatabase); err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}
	defer database.Close()

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer client.Close()

	sub, err := cache.SubscribeAllGameEvents(ctx, client)
	if err != nil {
		logger.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	opts := historian.DefaultOptions()
	opts.BatchSize = cfg.HistorianBatchSize
	opts.FlushDelay = cfg.HistorianFlushDelay
	opts.Inactivity = cfg.GameInactivity

	svc := historian.NewService(database.EventStore{}, logger, opts)
	logger.Infof("memoria-historian archiving %s:*", cfg.EventChannelPrefix)
	svc.Run(ctx, sub.Channel())
	logger.Info("memoria-historian shutting down")
}
