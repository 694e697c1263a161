// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jason-s-yu/memoria/internal/auth"
	"github.com/jason-s-yu/memoria/internal/cache"
	"github.com/jason-s-yu/memoria/internal/config"
	"github.com/jason-s-yu/memoria/internal/database"
	"github.com/jason-s-yu/memoria/internal/handlers"
	"github.com/jason-s-yu/memoria/internal/middleware"
	"github.com/jason-s-yu/memoria/internal/oracle"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	if err := auth.Init(); err != nil {
		logger.Fatalf("auth init: %v", err)
	}

	cache.ChannelPrefix = cfg.EventChannelPrefix
	if err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisDB); err != nil {
		logger.WithError(err).Warn("redis unavailable, live event feed disabled")
	} else {
		logger.Infof("publishing game events to %s:*", cfg.EventChannelPrefix)
	}

	if cfg.DatabaseConfigured() {
		if err := database.ConnectDB(context.Background(), cfg.PostgresUser, cfg.PostgresPassword, cfg.PGHost, cfg.PGPort, cfg.PGDatabase); err != nil {
			logger.WithError(err).Warn("postgres unavailable, preferences disabled")
		}
	}
	defer database.Close()

	var oc *oracle.Client
	if cfg.OracleEnabled && cfg.OracleURL != "" {
		oc = oracle.NewClient(cfg.OracleURL, true, cfg.OracleTimeout)
		logger.Infof("remote opponent moves from %s", cfg.OracleURL)
	}

	srv := handlers.NewGameServer(logger, oc)
	if cfg.Production() {
		srv.OriginPatterns = cfg.AllowedOrigins
	}

	r := newRouter(cfg, logger, srv)

	reapCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	go srv.RunReaper(reapCtx, time.Minute, cfg.GameInactivity)

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Running on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server exited: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("graceful shutdown failed")
	}
	logger.Info("server stopped")
}

func newRouter(cfg *config.Config, logger *logrus.Logger, srv *handlers.GameServer) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Heartbeat("/ping"))
	r.Use(middleware.LogMiddleware(logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Post("/game/create", handlers.CreateGameHandler(srv))
	r.Get("/game/ws/{id}", handlers.GameWSHandler(logger, srv))

	r.Post("/api/ai-move", handlers.AIMoveHandler(logger, oracle.NewReference(0)))

	r.Get("/preferences", handlers.GetPreferencesHandler(logger, handlers.PostgresPreferences))
	r.Put("/preferences", handlers.PutPreferencesHandler(logger, handlers.PostgresPreferences))

	return r
}
