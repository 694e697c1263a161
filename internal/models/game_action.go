package models

// GameAction captures a client's in-game request.
type GameAction struct {
	ActionType string `json:"action_type"`
	Index      int    `json:"index"`
}
