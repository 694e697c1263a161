// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/models"
)

// SyncState is the full client view of a table. Icons of hidden cards are never included.
type SyncState struct {
	GameID        uuid.UUID          `json:"game_id"`
	SessionID     uuid.UUID          `json:"session_id"`
	Mode          string             `json:"mode"`
	Difficulty    models.Difficulty  `json:"difficulty"`
	Labels        [2]string          `json:"labels"`
	Started       bool               `json:"started"`
	GameOver      bool               `json:"gameOver"`
	Locked        bool               `json:"locked"`
	Paused        bool               `json:"paused"`
	CurrentPlayer int                `json:"currentPlayer"`
	Scores        [2]int             `json:"scores"`
	Elapsed       int                `json:"elapsed"`
	Clock         string             `json:"clock,omitempty"`
	Board         []models.BoardCard `json:"board"`
	Summary       *Summary           `json:"summary,omitempty"`
}

// SyncState returns a snapshot of the table for the connected client.
func (g *MemoryGame) SyncState() SyncState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.syncStateLocked()
}

// syncStateLocked assumes lock is held.
func (g *MemoryGame) syncStateLocked() SyncState {
	st := SyncState{
		GameID:        g.ID,
		SessionID:     g.SessionID,
		Mode:          g.Mode.String(),
		Difficulty:    g.Difficulty,
		Labels:        g.Policy.Labels,
		Started:       g.Started,
		GameOver:      g.GameOver,
		Locked:        g.lockedLocked(),
		CurrentPlayer: g.CurrentPlayer,
		Scores:        g.Scores,
		Board:         boardCards(g.Board),
		Summary:       g.Summary,
	}
	if g.Policy.Timed {
		st.Paused = g.Started && !g.GameOver && !g.Timer.Running()
		st.Elapsed = g.Timer.ElapsedSeconds(g.Scheduler.Now())
		st.Clock = FormatClock(st.Elapsed)
	}
	return st
}

// Snapshot returns the board state as the remote move service expects it.
func (g *MemoryGame) Snapshot() models.Snapshot {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.snapshotLocked()
}

// snapshotLocked assumes lock is held.
func (g *MemoryGame) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		Difficulty: g.Difficulty,
		TotalPairs: g.Board.TotalPairs(),
		Scores:     models.Scores{Player: g.Scores[0], Opponent: g.Scores[1]},
		Board:      boardCards(g.Board),
		Memory:     g.Memory.Snapshot(),
	}
}

func boardCards(b *Board) []models.BoardCard {
	cards := b.Cards()
	out := make([]models.BoardCard, len(cards))
	for i, c := range cards {
		out[i] = models.BoardCard{Index: c.Index, Status: c.Status}
		if c.Status != models.StatusHidden {
			icon := c.Icon
			out[i].Icon = &icon
		}
	}
	return out
}
