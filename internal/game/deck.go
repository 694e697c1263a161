// internal/game/deck.go
package game

import (
	"fmt"
	"math/rand"
)

// Icons is the ordered alphabet pairs are drawn from. A deck of n cards uses the first n/2.
var Icons = []string{
	"🍎", "🍌", "🍇", "🍉", "🍓", "🍒",
	"🍍", "🥝", "🥑", "🍆", "🥕", "🌽",
}

// SupportedCardCounts lists the deck sizes a game can be started with.
var SupportedCardCounts = []int{12, 18, 24}

// ConfigError reports a game that cannot be set up. The game does not start.
type ConfigError struct {
	CardCount int
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid game configuration (%d cards): %s", e.CardCount, e.Reason)
}

func supportedCount(cardCount int) bool {
	for _, n := range SupportedCardCounts {
		if n == cardCount {
			return true
		}
	}
	return false
}

// NewDeck builds a shuffled deck of cardCount icons where every icon appears exactly twice.
func NewDeck(cardCount int, r *rand.Rand) ([]string, error) {
	return newDeckFromAlphabet(Icons, cardCount, r)
}

func newDeckFromAlphabet(alphabet []string, cardCount int, r *rand.Rand) ([]string, error) {
	if !supportedCount(cardCount) {
		return nil, &ConfigError{CardCount: cardCount, Reason: "deck size must be 12, 18 or 24"}
	}
	pairs := cardCount / 2
	if pairs > len(alphabet) {
		return nil, &ConfigError{CardCount: cardCount, Reason: fmt.Sprintf("alphabet has only %d icons", len(alphabet))}
	}

	deck := make([]string, 0, cardCount)
	deck = append(deck, alphabet[:pairs]...)
	deck = append(deck, alphabet[:pairs]...)

	r.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck, nil
}

// ValidateDeck checks that deck has a supported size and is made of disjoint pairs.
func ValidateDeck(deck []string) error {
	if !supportedCount(len(deck)) {
		return &ConfigError{CardCount: len(deck), Reason: "deck size must be 12, 18 or 24"}
	}
	counts := make(map[string]int, len(deck)/2)
	for _, icon := range deck {
		counts[icon]++
	}
	if len(counts) != len(deck)/2 {
		return &ConfigError{CardCount: len(deck), Reason: fmt.Sprintf("expected %d distinct icons, got %d", len(deck)/2, len(counts))}
	}
	for icon, n := range counts {
		if n != 2 {
			return &ConfigError{CardCount: len(deck), Reason: fmt.Sprintf("icon %s appears %d times", icon, n)}
		}
	}
	return nil
}
