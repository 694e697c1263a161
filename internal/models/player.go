package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Player is the client attached to a game. Hotseat games share one client for both seats.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	Connected bool            `json:"connected"`
	Conn      *websocket.Conn `json:"-"`
}
