// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/game"
	"github.com/jason-s-yu/memoria/internal/middleware"
	"github.com/jason-s-yu/memoria/internal/models"
	"github.com/sirupsen/logrus"
)

// GameMessage represents the structure for incoming WebSocket messages during a game.
type GameMessage struct {
	Type string `json:"type"`

	// Index is the board position for action_flip.
	Index *int `json:"index,omitempty"`
}

// outboundBuffer is how many events may queue for a slow client before new ones are dropped.
const outboundBuffer = 64

// GameWSHandler upgrades the HTTP connection to WebSocket for a specific game instance.
// Only the guest who created the game may attach; a newer connection replaces an older one.
func GameWSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid game_id format", http.StatusBadRequest)
			return
		}

		g, ok := gs.GameStore.GetGame(gameID)
		if !ok {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}

		// The cookie must already exist: it was issued when the game was created.
		userID, err := authenticatedUser(r)
		if err != nil {
			logger.WithError(err).WithField("game", gameID).Warn("rejecting unauthenticated game connection")
			http.Error(w, "Authentication failed", http.StatusUnauthorized)
			return
		}
		if userID != g.OwnerID {
			logger.WithFields(logrus.Fields{"game": gameID, "user": userID}).Warn("user does not own game")
			http.Error(w, "You are not a player in this game", http.StatusForbidden)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"game"},
			OriginPatterns: gs.OriginPatterns,
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for game %s: %v", gameID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "game" {
			logger.Warnf("Client for game %s connected with invalid subprotocol: %s", gameID, c.Subprotocol())
			c.Close(websocket.StatusCode(BadSubprotocolError), "Client must use the 'game' subprotocol.")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		out := newConnWriter(c, gameID, logger)
		go out.run(ctx)

		player := &models.Player{ID: userID, Conn: c}
		g.HandleReconnect(player, out.send)

		err = readGameMessages(ctx, c, g, userID, logger)

		g.HandleDisconnect(player)
		gs.releaseIfFinished(g)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, err)
		c.Close(websocket.StatusNormalClosure, "")
	}
}

// connWriter serializes events onto one connection in the order the game emitted them.
type connWriter struct {
	conn   *websocket.Conn
	gameID uuid.UUID
	logger *logrus.Logger
	out    chan []byte
}

func newConnWriter(c *websocket.Conn, gameID uuid.UUID, logger *logrus.Logger) *connWriter {
	return &connWriter{conn: c, gameID: gameID, logger: logger, out: make(chan []byte, outboundBuffer)}
}

// send is installed as the game's BroadcastFn and runs with the game lock held, so it never blocks.
func (w *connWriter) send(ev game.GameEvent) {
	data := game.EventToBytes(ev)
	select {
	case w.out <- data:
	default:
		w.logger.WithFields(logrus.Fields{"game": w.gameID, "type": ev.Type}).Warn("client too slow, dropping event")
	}
}

func (w *connWriter) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-w.out:
			writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := w.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				w.logger.Warnf("Failed to write event to game %s client: %v", w.gameID, err)
				return
			}
		}
	}
}

// readGameMessages continuously reads client messages and routes them to the game.
// It returns when the connection closes or ctx is cancelled; a normal closure returns nil.
func readGameMessages(ctx context.Context, c *websocket.Conn, g *game.MemoryGame, userID uuid.UUID, logger *logrus.Logger) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if msgType != websocket.MessageText {
			logger.Warnf("Received non-text message type %d from user %s in game %s. Ignoring.", msgType, userID, g.ID)
			continue
		}

		var msg GameMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Invalid JSON received from user %s in game %s: %v", userID, g.ID, err)
			sendWsError(ctx, c, logger, "Invalid JSON format.")
			continue
		}

		logger.Debugf("Received action '%s' from user %s in game %s.", msg.Type, userID, g.ID)

		switch msg.Type {
		case "ping":
			sendWsMessage(ctx, c, logger, map[string]string{"type": "pong"})
			continue
		case game.ActionFlip:
			if msg.Index == nil {
				sendWsError(ctx, c, logger, "action_flip requires an index.")
				continue
			}
		}

		action := models.GameAction{ActionType: msg.Type}
		if msg.Index != nil {
			action.Index = *msg.Index
		}
		if _, err := g.HandlePlayerAction(action); err != nil {
			logger.Warnf("Action '%s' from user %s in game %s failed: %v", msg.Type, userID, g.ID, err)
			sendWsError(ctx, c, logger, fmt.Sprintf("Action failed: %v", err))
			continue
		}
		if msg.Type == game.ActionStop {
			// the table is gone; nothing more to read
			return nil
		}
	}
}

// sendWsMessage marshals a message and sends it to the WebSocket client with a write timeout.
func sendWsMessage(ctx context.Context, c *websocket.Conn, logger *logrus.Logger, message interface{}) {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		logger.Errorf("Error marshaling WebSocket message: %v", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Write(writeCtx, websocket.MessageText, msgBytes); err != nil {
		status := websocket.CloseStatus(err)
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			logger.Warnf("Error writing WebSocket message: %v (Status: %d)", err, status)
		}
	}
}

// sendWsError sends a structured error message to the client.
func sendWsError(ctx context.Context, c *websocket.Conn, logger *logrus.Logger, errorMsg string) {
	sendWsMessage(ctx, c, logger, map[string]interface{}{
		"type":    "error",
		"message": errorMsg,
	})
}
