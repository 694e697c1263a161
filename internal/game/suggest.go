// internal/game/suggest.go
package game

import (
	"errors"
	"math/rand"

	"github.com/jason-s-yu/memoria/internal/models"
)

var errIneligibleSuggestion = errors.New("suggested cards are not both hidden and distinct")

// snapshotView adapts a serialized board to BoardView. Hidden icons are only known through memory.
type snapshotView struct {
	board  []models.BoardCard
	byPos  map[int]int // board position -> slice offset
	recall map[int]string
	span   int // highest position + 1; gaps are never eligible
}

func newSnapshotView(snap models.Snapshot) *snapshotView {
	v := &snapshotView{
		board:  snap.Board,
		byPos:  make(map[int]int, len(snap.Board)),
		recall: make(map[int]string),
	}
	for off, c := range snap.Board {
		v.byPos[c.Index] = off
		if c.Index >= v.span {
			v.span = c.Index + 1
		}
	}
	for icon, positions := range snap.Memory {
		for _, idx := range positions {
			v.recall[idx] = icon
		}
	}
	return v
}

// Len spans the positions the snapshot names, which need not start at zero or be contiguous.
func (v *snapshotView) Len() int {
	return v.span
}

func (v *snapshotView) StatusOf(index int) (models.CardStatus, bool) {
	off, ok := v.byPos[index]
	if !ok {
		return models.StatusHidden, false
	}
	return v.board[off].Status, true
}

func (v *snapshotView) IconOf(index int) (string, bool) {
	off, ok := v.byPos[index]
	if !ok {
		return "", false
	}
	if icon := v.board[off].Icon; icon != nil {
		return *icon, true
	}
	icon, known := v.recall[index]
	return icon, known
}

// SuggestFromSnapshot plays the forced-smart strategy against a serialized board.
// It backs the reference move endpoint, which only sees what a client would send.
func SuggestFromSnapshot(snap models.Snapshot, r *rand.Rand) (int, int, bool) {
	return PickPair(newSnapshotView(snap), MemoryFromSnapshot(snap.Memory), ForcedSmart, r)
}

// ValidateSuggestion checks that a and b are two distinct hidden positions of snap.
func ValidateSuggestion(snap models.Snapshot, a, b int) error {
	if a == b {
		return errIneligibleSuggestion
	}
	v := newSnapshotView(snap)
	if !isEligible(v, a) || !isEligible(v, b) {
		return errIneligibleSuggestion
	}
	return nil
}
