// internal/game/strategy.go
package game

import (
	"math/rand"

	"github.com/jason-s-yu/memoria/internal/models"
)

// ForcedSmart is the knowledge chance used when the opponent must play from memory every time.
const ForcedSmart = 1.0

// KnowledgeChance is the probability the opponent acts on what it remembers.
func KnowledgeChance(d models.Difficulty) float64 {
	switch d {
	case models.DifficultyEasy:
		return 0.4
	case models.DifficultyMedium:
		return 0.7
	default:
		return 1.0
	}
}

// PickPair chooses two hidden positions for the opponent to flip.
//
// Known pairs are exploited first, then a remembered single is tried as the first card,
// otherwise a random hidden card. The second card is the remembered mate of the first
// card's icon when one exists, else a random hidden card. Each use of memory succeeds
// with probability k. Both cards are chosen before either is flipped.
func PickPair(view BoardView, mem *Memory, k float64, r *rand.Rand) (int, int, bool) {
	var knownPairs [][2]int
	var knownSingles []int
	for _, icon := range mem.Icons() {
		positions := eligibleOf(view, mem.Positions(icon), -1)
		switch {
		case len(positions) >= 2:
			knownPairs = append(knownPairs, [2]int{positions[0], positions[1]})
		case len(positions) == 1:
			knownSingles = append(knownSingles, positions[0])
		}
	}

	if len(knownPairs) > 0 && r.Float64() <= k {
		pair := knownPairs[r.Intn(len(knownPairs))]
		return pair[0], pair[1], true
	}

	first := -1
	if len(knownSingles) > 0 && r.Float64() <= k {
		first = knownSingles[r.Intn(len(knownSingles))]
	}
	if first < 0 {
		hidden := eligiblePositions(view, -1)
		if len(hidden) == 0 {
			return 0, 0, false
		}
		first = hidden[r.Intn(len(hidden))]
	}

	second := -1
	if icon, ok := view.IconOf(first); ok && icon != "" {
		if mates := eligibleOf(view, mem.Positions(icon), first); len(mates) > 0 && r.Float64() <= k {
			second = mates[r.Intn(len(mates))]
		}
	}
	if second < 0 {
		rest := eligiblePositions(view, first)
		if len(rest) == 0 {
			return 0, 0, false
		}
		second = rest[r.Intn(len(rest))]
	}
	return first, second, true
}

func eligibleOf(view BoardView, positions []int, exclude int) []int {
	out := positions[:0:0]
	for _, idx := range positions {
		if idx != exclude && isEligible(view, idx) {
			out = append(out, idx)
		}
	}
	return out
}
