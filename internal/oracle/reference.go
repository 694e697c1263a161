// internal/oracle/reference.go
package oracle

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jason-s-yu/memoria/internal/game"
	"github.com/jason-s-yu/memoria/internal/models"
)

// ErrNoMove is returned when the snapshot has fewer than two hidden cards.
var ErrNoMove = errors.New("no two hidden cards to suggest")

// Reference answers move requests locally with the forced-smart strategy.
// It sees only the snapshot, so hidden icons are known to it only through the sent memory.
type Reference struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewReference seeds a reference oracle. A zero seed uses the clock.
func NewReference(seed int64) *Reference {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Reference{rand: rand.New(rand.NewSource(seed))}
}

// Suggest validates snap and picks two hidden positions.
func (o *Reference) Suggest(snap models.Snapshot) (models.MoveResponse, error) {
	if err := validate.Struct(snap); err != nil {
		return models.MoveResponse{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	o.mu.Lock()
	a, b, ok := game.SuggestFromSnapshot(snap, o.rand)
	o.mu.Unlock()
	if !ok {
		return models.MoveResponse{}, ErrNoMove
	}
	return models.MoveResponse{Cards: []int{a, b}}, nil
}
