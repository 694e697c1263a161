package models

// BoardCard is a board slot as seen from outside. Icon is nil unless the card is flipped or matched.
type BoardCard struct {
	Index  int        `json:"index" validate:"gte=0,lt=256"`
	Status CardStatus `json:"status"`
	Icon   *string    `json:"icon"`
}

// Scores holds the per-seat score from player one's perspective.
type Scores struct {
	Player   int `json:"player"`
	Opponent int `json:"opponent"`
}

// Snapshot is the state sent to the remote move service. It never carries hidden icons.
type Snapshot struct {
	Difficulty Difficulty       `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	TotalPairs int              `json:"totalPairs" validate:"gte=0"`
	Scores     Scores           `json:"scores"`
	Board      []BoardCard      `json:"board" validate:"required,min=2,max=256,dive"`
	Memory     map[string][]int `json:"memory"`
}

// MoveRequest wraps a snapshot the way the browser client posts it.
type MoveRequest struct {
	State Snapshot `json:"state"`
}

// MoveResponse names the two positions to flip.
type MoveResponse struct {
	Cards []int `json:"cards" validate:"len=2,dive,gte=0"`
}
