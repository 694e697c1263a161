// internal/handlers/game_server.go
package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/game"
	"github.com/jason-s-yu/memoria/internal/models"
	"github.com/jason-s-yu/memoria/internal/oracle"
	"github.com/sirupsen/logrus"
)

// GameServer is a high-level struct that holds a reference to a GameStore
// and creates new tables on request.
type GameServer struct {
	GameStore *game.GameStore
	Logger    *logrus.Logger

	// Oracle backs Remote-AI opponents. Nil means they always play the local forced-smart strategy.
	Oracle *oracle.Client

	// OriginPatterns are passed to websocket.Accept.
	OriginPatterns []string

	// NewScheduler lets tests drive game timers. Nil uses real timers.
	NewScheduler func() game.Scheduler
}

func NewGameServer(logger *logrus.Logger, oc *oracle.Client) *GameServer {
	return &GameServer{
		GameStore:      game.NewGameStore(),
		Logger:         logger,
		Oracle:         oc,
		OriginPatterns: []string{"*"},
	}
}

// CreateGame builds a table owned by ownerID, deals it and registers it in the store.
// Any table the owner already had is stopped and removed: a guest plays one table at a time.
func (gs *GameServer) CreateGame(ownerID uuid.UUID, mode models.Mode, cardCount int, rules map[string]interface{}) (*game.MemoryGame, error) {
	g := game.NewMemoryGame(mode)
	g.OwnerID = ownerID
	g.Log = gs.Logger

	if rules != nil {
		parsed, err := game.ParseRules(rules, g.Rules)
		if err != nil {
			return nil, err
		}
		g.Rules = parsed
	}
	if gs.NewScheduler != nil {
		g.Scheduler = gs.NewScheduler()
	}
	if mode == models.ModeRemoteAI && gs.Oracle != nil {
		g.Oracle = gs.Oracle
	}
	g.OnGameEnd = func(gameID uuid.UUID, summary game.Summary) {
		gs.Logger.WithFields(logrus.Fields{
			"game":   gameID,
			"winner": summary.Winner,
			"rank":   summary.Rank.Tier,
		}).Info(summary.Title)
	}
	g.OnStop = func(gameID uuid.UUID) {
		gs.GameStore.DeleteGame(gameID)
		gs.Logger.WithField("game", gameID).Info("game removed")
	}

	if err := g.Start(cardCount); err != nil {
		return nil, err
	}
	for _, prev := range gs.GameStore.GamesOwnedBy(ownerID) {
		prev.Stop()
	}
	gs.GameStore.AddGame(g)
	return g, nil
}

// releaseIfFinished removes a finished table once no client is attached to it.
func (gs *GameServer) releaseIfFinished(g *game.MemoryGame) {
	if g.StopIfFinished() {
		gs.Logger.WithField("game", g.ID).Debug("finished game released")
	}
}

// ReapIdle stops and removes every table that has had no client for at least idle.
// It returns how many tables were removed.
func (gs *GameServer) ReapIdle(now time.Time, idle time.Duration) int {
	removed := 0
	cutoff := now.Add(-idle)
	for _, g := range gs.GameStore.Games() {
		if g.StopIfIdle(cutoff) {
			gs.Logger.WithField("game", g.ID).Info("reaped idle game")
			removed++
		}
	}
	return removed
}

// RunReaper calls ReapIdle every interval until ctx is cancelled.
func (gs *GameServer) RunReaper(ctx context.Context, every, idle time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := gs.ReapIdle(now, idle); n > 0 {
				gs.Logger.Infof("reaped %d idle games, %d remain", n, gs.GameStore.Len())
			}
		}
	}
}
