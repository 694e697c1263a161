package game

import (
	"sync"

	"github.com/google/uuid"
)

type GameStore struct {
	mu    sync.Mutex
	games map[uuid.UUID]*MemoryGame
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[uuid.UUID]*MemoryGame),
	}
}

func (s *GameStore) AddGame(game *MemoryGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
}

func (s *GameStore) GetGame(id uuid.UUID) (*MemoryGame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, exists := s.games[id]
	return g, exists
}

func (s *GameStore) DeleteGame(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// GamesOwnedBy returns every table created by ownerID.
func (s *GameStore) GamesOwnedBy(ownerID uuid.UUID) []*MemoryGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*MemoryGame
	for _, g := range s.games {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out
}

// Len reports how many tables are live.
func (s *GameStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// Games returns a snapshot of every live table.
func (s *GameStore) Games() []*MemoryGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*MemoryGame, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	return out
}
