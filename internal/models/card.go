package models

import "fmt"

// CardStatus is the visible state of a board position.
type CardStatus int

const (
	StatusHidden CardStatus = iota
	StatusFlipped
	StatusMatched
)

// String returns the wire name of the status.
func (s CardStatus) String() string {
	switch s {
	case StatusHidden:
		return "hidden"
	case StatusFlipped:
		return "flipped"
	case StatusMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name so JSON payloads read "hidden", "flipped", "matched".
func (s CardStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name.
func (s *CardStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "hidden":
		*s = StatusHidden
	case "flipped":
		*s = StatusFlipped
	case "matched":
		*s = StatusMatched
	default:
		return fmt.Errorf("unknown card status %q", string(b))
	}
	return nil
}

// Card is one slot of the board. Index is the board position and never changes during a game.
type Card struct {
	Index  int        `json:"index"`
	Icon   string     `json:"icon"`
	Status CardStatus `json:"status"`
}
