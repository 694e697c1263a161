// internal/game/board.go
package game

import "github.com/jason-s-yu/memoria/internal/models"

// BoardView is the read-only surface the opponent strategy works from.
type BoardView interface {
	Len() int
	StatusOf(index int) (models.CardStatus, bool)
	IconOf(index int) (string, bool)
}

// Board owns the cards of the current game. It only bounds-checks; game rules live in MemoryGame.
type Board struct {
	cards []models.Card

	// onChange is invoked after every status transition.
	onChange func(card models.Card, prev models.CardStatus)
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Reset installs a fresh deck with every card hidden.
func (b *Board) Reset(deck []string) {
	b.cards = make([]models.Card, len(deck))
	for i, icon := range deck {
		b.cards[i] = models.Card{Index: i, Icon: icon, Status: models.StatusHidden}
	}
}

func (b *Board) Len() int {
	return len(b.cards)
}

func (b *Board) inBounds(index int) bool {
	return index >= 0 && index < len(b.cards)
}

// Card returns a copy of the card at index.
func (b *Board) Card(index int) (models.Card, bool) {
	if !b.inBounds(index) {
		return models.Card{}, false
	}
	return b.cards[index], true
}

func (b *Board) StatusOf(index int) (models.CardStatus, bool) {
	if !b.inBounds(index) {
		return models.StatusHidden, false
	}
	return b.cards[index].Status, true
}

func (b *Board) IconOf(index int) (string, bool) {
	if !b.inBounds(index) {
		return "", false
	}
	return b.cards[index].Icon, true
}

// SetStatus changes the status of a card and notifies the change hook. Out of range indexes are ignored.
func (b *Board) SetStatus(index int, status models.CardStatus) bool {
	if !b.inBounds(index) {
		return false
	}
	prev := b.cards[index].Status
	b.cards[index].Status = status
	if b.onChange != nil {
		b.onChange(b.cards[index], prev)
	}
	return true
}

// MatchedPairs counts pairs already cleared from the board.
func (b *Board) MatchedPairs() int {
	n := 0
	for _, c := range b.cards {
		if c.Status == models.StatusMatched {
			n++
		}
	}
	return n / 2
}

func (b *Board) TotalPairs() int {
	return len(b.cards) / 2
}

// Cards returns a copy of all cards in board order.
func (b *Board) Cards() []models.Card {
	out := make([]models.Card, len(b.cards))
	copy(out, b.cards)
	return out
}

// eligiblePositions lists hidden positions of view, skipping exclude.
func eligiblePositions(view BoardView, exclude int) []int {
	var out []int
	for i := 0; i < view.Len(); i++ {
		if i == exclude {
			continue
		}
		if st, ok := view.StatusOf(i); ok && st == models.StatusHidden {
			out = append(out, i)
		}
	}
	return out
}

func isEligible(view BoardView, index int) bool {
	st, ok := view.StatusOf(index)
	return ok && st == models.StatusHidden
}
